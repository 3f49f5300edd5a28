package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	config "adoption-forecast-api/configs"
	"adoption-forecast-api/pkg/models"
	"adoption-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ForecastHandler 譲渡需要予測APIのハンドラ
type ForecastHandler struct {
	datasetService  *services.DatasetService
	forecastService *services.ForecastService
	reportService   *services.ReportService
	cfg             *config.Config
}

// NewForecastHandler 新しいForecastHandlerを生成
func NewForecastHandler(
	datasetService *services.DatasetService,
	forecastService *services.ForecastService,
	reportService *services.ReportService,
	cfg *config.Config,
) *ForecastHandler {
	return &ForecastHandler{
		datasetService:  datasetService,
		forecastService: forecastService,
		reportService:   reportService,
		cfg:             cfg,
	}
}

// defaultConfig 設定ファイルのデフォルトから予測パラメータを組み立てる
func (fh *ForecastHandler) defaultConfig() models.ForecastConfig {
	return models.ForecastConfig{
		MinutesPerInteraction: fh.cfg.DefaultMinutesPerInteraction,
		NonAdopterFraction:    fh.cfg.DefaultNonAdopterFraction,
		CounselorCount:        fh.cfg.DefaultCounselorCount,
		WorkdayHours:          fh.cfg.WorkdayHours,
	}
}

// configFromForm フォーム値で上書きした予測パラメータを返す。
// non_adopter_percent は0〜100の百分率で受け取り、コアへ渡す前に0〜1へ正規化する。
func (fh *ForecastHandler) configFromForm(c *gin.Context) (models.ForecastConfig, error) {
	forecastConfig := fh.defaultConfig()

	if v, ok := parseFloatOrDefault(c.PostForm("minutes_per_interaction"), forecastConfig.MinutesPerInteraction); ok {
		forecastConfig.MinutesPerInteraction = v
	} else {
		return forecastConfig, fmt.Errorf("minutes_per_interaction の値が不正です: '%s'", c.PostForm("minutes_per_interaction"))
	}

	if raw := c.PostForm("non_adopter_percent"); raw != "" {
		percent, ok := parseFloatOrDefault(raw, 0)
		if !ok {
			return forecastConfig, fmt.Errorf("non_adopter_percent の値が不正です: '%s'", raw)
		}
		forecastConfig.NonAdopterFraction = percentToFraction(percent)
	}

	if v, ok := parseIntOrDefault(c.PostForm("counselor_count"), forecastConfig.CounselorCount); ok {
		forecastConfig.CounselorCount = v
	} else {
		return forecastConfig, fmt.Errorf("counselor_count の値が不正です: '%s'", c.PostForm("counselor_count"))
	}

	// 明示的に指定された場合のみ上書きする。0は未指定扱いにせず却下する。
	if raw := c.PostForm("workday_hours"); raw != "" {
		v, ok := parseFloatOrDefault(raw, 0)
		if !ok || v <= 0 {
			return forecastConfig, fmt.Errorf("workday_hours は正の数値が必要です: '%s'", raw)
		}
		forecastConfig.WorkdayHours = v
	}

	return forecastConfig, nil
}

// AnalyzeFile アップロードされた譲渡データ（.csv / .xlsx）を検証・集計して
// 分析レポートを生成する。却下された行は件数として返し、処理は継続する。
func (fh *ForecastHandler) AnalyzeFile(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(fh.cfg.MaxUploadMB << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("マルチパートフォームの解析に失敗しました（上限%dMB）: %v", fh.cfg.MaxUploadMB, err),
		})
		return
	}

	forecastConfig, err := fh.configFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	file, fileHeader, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ファイルの取得に失敗しました。"})
		return
	}
	defer file.Close()

	var rows [][]string
	fileName := fileHeader.Filename

	if strings.HasSuffix(strings.ToLower(fileName), ".xlsx") {
		f, err := excelize.OpenReader(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Excelファイルの読み込みに失敗しました。"})
			return
		}
		rows, err = f.GetRows(f.GetSheetName(0))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Excelシートの行取得に失敗しました。"})
			return
		}
	} else if strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1 // 列数不足はローダー側で行単位に却下する
		rows, err = r.ReadAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "CSVファイルの解析に失敗しました。"})
			return
		}
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "サポートされていないファイル形式です。.xlsxまたは.csvをアップロードしてください。"})
		return
	}

	if len(rows) < 2 { // Header + at least one data row
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ファイルにはヘッダー行と少なくとも1行のデータが必要です。"})
		return
	}

	dataset, err := fh.datasetService.LoadEvents(rows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	dataset.FileName = fileName

	log.Printf("📂 ファイル分析: %s, 有効=%d件, 却下=%d件", fileName, len(dataset.Events), dataset.RejectedRows)

	report, err := fh.reportService.BuildReport(dataset, forecastConfig)
	if err != nil {
		var cfgErr *services.ConfigError
		if errors.As(err, &cfgErr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": cfgErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	response := gin.H{
		"success":         true,
		"analysis_report": report,
		"rejected_rows":   dataset.RejectedRows,
		"debug": gin.H{
			"file_name":  fileName,
			"total_rows": len(rows) - 1,
			"valid_rows": len(dataset.Events),
		},
	}
	if dataset.RejectedRows > 0 {
		response["warning"] = fmt.Sprintf("%d行をスキップしました", dataset.RejectedRows)
		response["reject_samples"] = dataset.RejectSamples
	}

	c.JSON(http.StatusOK, response)
}

// ComputeWorkload 既存レポートのデータセットに対して、設定を変えて業務量を再計算する。
// データの再パースは行わない（設定とデータは分離されている）。
func (fh *ForecastHandler) ComputeWorkload(c *gin.Context) {
	var req models.WorkloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "report_id を含むリクエストボディが必要です。"})
		return
	}

	report, ok := fh.reportService.GetReport(req.ReportID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": fmt.Sprintf("レポートが見つかりません: %s", req.ReportID)})
		return
	}

	forecastConfig := fh.defaultConfig()
	if req.MinutesPerInteraction != 0 {
		forecastConfig.MinutesPerInteraction = req.MinutesPerInteraction
	}
	if req.NonAdopterPercent != nil {
		forecastConfig.NonAdopterFraction = percentToFraction(*req.NonAdopterPercent)
	}
	if req.CounselorCount != 0 {
		forecastConfig.CounselorCount = req.CounselorCount
	}
	if req.WorkdayHours != nil {
		if *req.WorkdayHours <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "workday_hours は正の値が必要です"})
			return
		}
		forecastConfig.WorkdayHours = *req.WorkdayHours
	}

	events := fh.eventsForReport(report)
	workload, err := fh.forecastService.ComputeWorkload(events, forecastConfig)
	if err != nil {
		var cfgErr *services.ConfigError
		switch {
		case errors.As(err, &cfgErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": cfgErr.Error()})
		case errors.Is(err, services.ErrEmptyDataset):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "workload": workload})
}

// GetMetrics レポートの集計結果を返す
func (fh *ForecastHandler) GetMetrics(c *gin.Context) {
	report, ok := fh.reportService.GetReport(c.Param("reportID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "レポートが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "metrics": report.Metrics})
}

// GetDensity 時間帯分布の正規分布フィットカーブを返す（チャート表示用）
func (fh *ForecastHandler) GetDensity(c *gin.Context) {
	report, ok := fh.reportService.GetReport(c.Param("reportID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "レポートが見つかりません"})
		return
	}

	points, ok := parseIntOrDefault(c.Query("points"), 100)
	if !ok || points < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "points は2以上の整数が必要です"})
		return
	}

	events := fh.eventsForReport(report)
	curve := fh.forecastService.HourlyDensityCurve(events, points)
	c.JSON(http.StatusOK, gin.H{"success": true, "density": curve, "hourly": report.Metrics.Hourly})
}

// eventsForReport レポートに紐づくイベント列を復元する。
// レポートは集計済みの値のみ保持するため、再計算用のイベントは登録時の
// データセットから引く。
func (fh *ForecastHandler) eventsForReport(report *models.AnalysisReport) []models.AdoptionEvent {
	return fh.reportService.EventsFor(report.ReportID)
}
