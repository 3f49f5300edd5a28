package handlers

import (
	"net/http"

	"adoption-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// dashboardPeriods GetLogsが受け付ける集計期間と対応する時間数
var dashboardPeriods = map[string]int{
	"1h":  1,
	"24h": 24,
	"7d":  24 * 7,
}

// MonitoringHandler リクエストモニタリングのハンドラ
type MonitoringHandler struct {
	service *services.MonitoringService
}

// NewMonitoringHandler 新しいMonitoringHandlerを生成
func NewMonitoringHandler(service *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{service: service}
}

// GetLogs 指定期間のリクエストログを集計して返す。
// 未知のperiodは黙ってデフォルトに置き換えず、エラーとして返す。
func (h *MonitoringHandler) GetLogs(c *gin.Context) {
	period := c.DefaultQuery("period", "24h")
	hours, ok := dashboardPeriods[period]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "periodは1h、24h、7dのいずれかを指定してください",
		})
		return
	}

	data := h.service.GetDashboardData(hours)
	c.JSON(http.StatusOK, gin.H{"success": true, "period": period, "dashboard": data})
}
