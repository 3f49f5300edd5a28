package services

import (
	"testing"

	"adoption-forecast-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func newTestReportService() *ReportService {
	return NewReportService(NewForecastService())
}

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		FileName: "adoptions.csv",
		Events:   sampleEvents(),
	}
}

func TestBuildReport(t *testing.T) {
	rs := newTestReportService()

	report, err := rs.BuildReport(sampleDataset(), defaultTestConfig())
	assert.NoError(t, err)
	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, "adoptions.csv", report.FileName)
	assert.Equal(t, 3, report.DataPoints)
	assert.NotNil(t, report.Workload)
	assert.NotEmpty(t, report.Summary)
	assert.NotEmpty(t, report.Recommendations)

	// 登録済みでIDから取得できる
	got, ok := rs.GetReport(report.ReportID)
	assert.True(t, ok)
	assert.Equal(t, report, got)

	// イベント列も再計算用に保持される
	assert.Len(t, rs.EventsFor(report.ReportID), 3)
}

func TestBuildReportRejectsBadConfig(t *testing.T) {
	rs := newTestReportService()

	cfg := defaultTestConfig()
	cfg.CounselorCount = 0

	_, err := rs.BuildReport(sampleDataset(), cfg)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	// 設定エラー時はレポートを登録しない
	assert.Empty(t, rs.ListReports())
}

func TestBuildReportEmptyDataset(t *testing.T) {
	rs := newTestReportService()

	dataset := &models.Dataset{FileName: "empty.csv", RejectedRows: 4}
	report, err := rs.BuildReport(dataset, defaultTestConfig())
	assert.NoError(t, err, "empty dataset should degrade, not fail")

	// 集計のみのレポートになる（Workloadはnil）
	assert.Nil(t, report.Workload)
	assert.Equal(t, 0, report.DataPoints)
	assert.Equal(t, 4, report.RejectedRows)
	assert.NotEmpty(t, report.Recommendations)
}

func TestDeleteReport(t *testing.T) {
	rs := newTestReportService()
	report, err := rs.BuildReport(sampleDataset(), defaultTestConfig())
	assert.NoError(t, err)

	assert.True(t, rs.DeleteReport(report.ReportID))
	assert.False(t, rs.DeleteReport(report.ReportID), "second delete should report missing")

	_, ok := rs.GetReport(report.ReportID)
	assert.False(t, ok)
	assert.Empty(t, rs.EventsFor(report.ReportID))
}

func TestDeleteAllReports(t *testing.T) {
	rs := newTestReportService()
	for i := 0; i < 3; i++ {
		_, err := rs.BuildReport(sampleDataset(), defaultTestConfig())
		assert.NoError(t, err)
	}

	assert.Equal(t, 3, rs.DeleteAllReports())
	assert.Empty(t, rs.ListReports())
}

func TestGenerateRecommendationsOverCapacity(t *testing.T) {
	rs := newTestReportService()

	cfg := models.ForecastConfig{
		MinutesPerInteraction: 60,
		NonAdopterFraction:    0,
		CounselorCount:        1,
		WorkdayHours:          3,
	}
	report, err := rs.BuildReport(&models.Dataset{FileName: "busy.csv", Events: singleDayEvents(4)}, cfg)
	assert.NoError(t, err)
	assert.Equal(t, models.CapacityOverCapacity, report.Workload.CapacityStatus)
	assert.Contains(t, report.Recommendations[0], "増員")
}
