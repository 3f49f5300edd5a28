package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"adoption-forecast-api/pkg/models"

	"github.com/google/uuid"
)

// ReportService 分析レポートの生成とインメモリ登録を担当する。
// レポートはセッション中のみ保持され、プロセス終了で破棄される。
type ReportService struct {
	forecastService *ForecastService

	mu       sync.RWMutex
	reports  map[string]*models.AnalysisReport
	datasets map[string]*models.Dataset // 設定変更時の再計算用に保持する
}

// NewReportService 新しいレポートサービスを作成
func NewReportService(forecastService *ForecastService) *ReportService {
	return &ReportService{
		forecastService: forecastService,
		reports:         make(map[string]*models.AnalysisReport),
		datasets:        make(map[string]*models.Dataset),
	}
}

// BuildReport データセットと設定から分析レポートを組み立てて登録する。
// 業務量計算が設定エラーで拒否された場合はレポートも作らずエラーを返す。
// 空データセットの場合は集計のみのレポートを返す（Workloadはnil）。
func (rs *ReportService) BuildReport(dataset *models.Dataset, cfg models.ForecastConfig) (*models.AnalysisReport, error) {
	metrics := rs.forecastService.Aggregate(dataset.Events)
	datasetSummary := rs.forecastService.DatasetSummary(dataset.Events)

	report := &models.AnalysisReport{
		ReportID:       uuid.New().String(),
		FileName:       dataset.FileName,
		AnalysisDate:   time.Now().Format(time.RFC3339),
		DataPoints:     len(dataset.Events),
		RejectedRows:   dataset.RejectedRows,
		DatasetSummary: datasetSummary,
		Metrics:        metrics,
	}

	workload, err := rs.forecastService.ComputeWorkload(dataset.Events, cfg)
	if err != nil {
		if err == ErrEmptyDataset {
			// データ品質の問題ではプロセスを落とさない。集計のみで続行する。
			report.Summary = rs.GenerateSummary(datasetSummary, nil)
			report.Recommendations = []string{
				"有効な譲渡イベントが0件でした。ファイルの形式（Outcome列とDateTime列）を確認してください。",
			}
			rs.register(report, dataset)
			return report, nil
		}
		return nil, err
	}

	report.Workload = workload
	report.Summary = rs.GenerateSummary(datasetSummary, workload)
	report.Recommendations = rs.generateRecommendations(metrics, workload)
	rs.register(report, dataset)
	return report, nil
}

// GenerateSummary レポートのテキストサマリーを生成する。
func (rs *ReportService) GenerateSummary(ds models.DatasetSummary, workload *models.WorkloadSummary) string {
	var b strings.Builder
	b.WriteString("データ概要:\n")
	b.WriteString(fmt.Sprintf("- 譲渡件数: %d\n", ds.TotalEvents))
	if ds.StartDate != "" {
		b.WriteString(fmt.Sprintf("- 期間: %s 〜 %s\n", ds.StartDate, ds.EndDate))
	}
	if len(ds.Species) > 0 {
		b.WriteString(fmt.Sprintf("- 動物種: %s\n", strings.Join(ds.Species, ", ")))
	}

	if workload != nil {
		b.WriteString("\nカウンセラー業務量:\n")
		b.WriteString(fmt.Sprintf("- 1日平均の譲渡件数: %.1f\n", workload.AvgDailyAdoptions))
		b.WriteString(fmt.Sprintf("- 1日に必要な対応時間: %.1f時間\n", workload.CounselorHoursNeeded))
		b.WriteString(fmt.Sprintf("- カウンセラー1人あたり: %.1f時間\n", workload.HoursPerCounselor))
		b.WriteString(fmt.Sprintf("- ピーク時間帯: %d時 (1人あたり%.1f分)\n", workload.PeakHour, workload.PeakHourCounselorMinutes))
		b.WriteString(fmt.Sprintf("- 稼働率: %.1f%% (%s)\n", workload.UtilizationPercent, workload.CapacityStatus))
	}
	return b.String()
}

// generateRecommendations 集計結果と業務量に基づいてレコメンデーションを生成
func (rs *ReportService) generateRecommendations(metrics models.AggregatedMetrics, workload *models.WorkloadSummary) []string {
	var recommendations []string

	switch workload.CapacityStatus {
	case models.CapacityOverCapacity:
		recommendations = append(recommendations, fmt.Sprintf(
			"稼働率が%.1f%%で超過しています。1人あたり%.1f時間の超過分に対して、約%.1f人の増員を推奨します。",
			workload.UtilizationPercent, workload.AdditionalHoursNeeded, workload.RecommendedExtraCounselors))
	case models.CapacityUnderUtilized:
		recommendations = append(recommendations, fmt.Sprintf(
			"稼働率は%.1f%%で余裕があります。現在の人数で追加の来訪者対応が可能です。",
			workload.UtilizationPercent))
	default:
		recommendations = append(recommendations, fmt.Sprintf(
			"稼働率は%.1f%%で適正範囲です。", workload.UtilizationPercent))
	}

	recommendations = append(recommendations, fmt.Sprintf(
		"譲渡のピークは%d時台です。この時間帯にカウンセラーの配置を厚くすることを推奨します。",
		workload.PeakHour))

	// 週末と平日の偏りを確認（Weekdayは月曜始まりの固定順）
	if len(metrics.Weekday) == 7 {
		var weekdayTotal, weekendTotal int
		for i, wc := range metrics.Weekday {
			if i >= 5 { // Saturday, Sunday
				weekendTotal += wc.Count
			} else {
				weekdayTotal += wc.Count
			}
		}
		if weekdayTotal > 0 {
			// 1日あたりで比較（平日5日・週末2日）
			weekendAvg := float64(weekendTotal) / 2
			weekdayAvg := float64(weekdayTotal) / 5
			if weekendAvg > weekdayAvg*1.5 {
				recommendations = append(recommendations,
					"週末の譲渡が平日を大きく上回っています。週末のシフトを強化してください。")
			}
		}
	}

	// 種の偏りがあれば担当の専門化を提案
	if len(metrics.Species) >= 2 && metrics.Species[0].Count > metrics.Species[1].Count*2 {
		recommendations = append(recommendations, fmt.Sprintf(
			"譲渡の大半が%sです。%s担当のカウンセラーを優先的に配置できます。",
			metrics.Species[0].Species, metrics.Species[0].Species))
	}

	return recommendations
}

// register レポートと元データセットを登録する
func (rs *ReportService) register(report *models.AnalysisReport, dataset *models.Dataset) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.reports[report.ReportID] = report
	rs.datasets[report.ReportID] = dataset
}

// EventsFor レポートに紐づくイベント列を返す。未登録なら空。
func (rs *ReportService) EventsFor(reportID string) []models.AdoptionEvent {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if ds, ok := rs.datasets[reportID]; ok {
		return ds.Events
	}
	return nil
}

// GetReport IDでレポートを取得する
func (rs *ReportService) GetReport(reportID string) (*models.AnalysisReport, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	report, ok := rs.reports[reportID]
	return report, ok
}

// ListReports 登録済みレポートを分析日時の降順で返す
func (rs *ReportService) ListReports() []*models.AnalysisReport {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	reports := make([]*models.AnalysisReport, 0, len(rs.reports))
	for _, r := range rs.reports {
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].AnalysisDate != reports[j].AnalysisDate {
			return reports[i].AnalysisDate > reports[j].AnalysisDate
		}
		return reports[i].ReportID < reports[j].ReportID
	})
	return reports
}

// DeleteReport IDでレポートを削除する。存在しなければfalseを返す。
func (rs *ReportService) DeleteReport(reportID string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if _, ok := rs.reports[reportID]; !ok {
		return false
	}
	delete(rs.reports, reportID)
	delete(rs.datasets, reportID)
	return true
}

// DeleteAllReports すべてのレポートを削除して件数を返す
func (rs *ReportService) DeleteAllReports() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	n := len(rs.reports)
	rs.reports = make(map[string]*models.AnalysisReport)
	rs.datasets = make(map[string]*models.Dataset)
	return n
}
