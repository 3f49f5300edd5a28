package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitoringServiceDashboard(t *testing.T) {
	s := NewMonitoringService()
	now := time.Now()

	s.LogRequest(RequestLog{Timestamp: now, Path: "/api/v1/forecast/analyze-file", Method: "POST", StatusCode: 200, ResponseTime: 20 * time.Millisecond})
	s.LogRequest(RequestLog{Timestamp: now, Path: "/api/v1/forecast/analyze-file", Method: "POST", StatusCode: 400, ResponseTime: 10 * time.Millisecond})
	s.LogRequest(RequestLog{Timestamp: now, Path: "/api/v1/forecast/workload", Method: "POST", StatusCode: 500, ResponseTime: 5 * time.Millisecond})

	// 期間外のログは集計に含まれない
	s.LogRequest(RequestLog{Timestamp: now.Add(-48 * time.Hour), Path: "/old", Method: "GET", StatusCode: 200})

	data := s.GetDashboardData(24)

	assert.Len(t, data.RequestsOverTime, 24)
	assert.Equal(t, 2, data.Endpoints["/api/v1/forecast/analyze-file"])
	assert.Equal(t, 1, data.StatusClasses["2xx"])
	assert.Equal(t, 1, data.StatusClasses["4xx"])
	assert.Equal(t, 1, data.StatusClasses["5xx"])
	assert.NotContains(t, data.Endpoints, "/old")

	assert.Equal(t, int64(15), data.AvgResponseMs["/api/v1/forecast/analyze-file"])
	assert.Len(t, data.RecentErrors, 1)
	assert.Equal(t, "/api/v1/forecast/workload", data.RecentErrors[0].Path)
}

func TestMonitoringServiceLogCap(t *testing.T) {
	s := NewMonitoringService()
	for i := 0; i < maxLogEntries+50; i++ {
		s.LogRequest(RequestLog{Timestamp: time.Now(), Path: "/x", StatusCode: 200})
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Len(t, s.logs, maxLogEntries)
}
