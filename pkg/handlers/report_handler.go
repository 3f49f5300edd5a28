package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListAnalysisReports 登録済みの分析レポート一覧を返す
func (fh *ForecastHandler) ListAnalysisReports(c *gin.Context) {
	reports := fh.reportService.ListReports()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(reports),
		"reports": reports,
	})
}

// GetAnalysisReport IDで分析レポートの詳細を返す
func (fh *ForecastHandler) GetAnalysisReport(c *gin.Context) {
	report, ok := fh.reportService.GetReport(c.Param("reportID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "レポートが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// DeleteAnalysisReport IDで分析レポートを削除する
func (fh *ForecastHandler) DeleteAnalysisReport(c *gin.Context) {
	if !fh.reportService.DeleteReport(c.Param("reportID")) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "レポートが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAllAnalysisReports 全分析レポートを削除する
func (fh *ForecastHandler) DeleteAllAnalysisReports(c *gin.Context) {
	deleted := fh.reportService.DeleteAllReports()
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}
