package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxLogEntries 保持するリクエストログの上限。超えた分は古い順に捨てる。
const maxLogEntries = 10000

// RequestLog は単一のリクエストログを表します。
type RequestLog struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
}

// MonitoringService はAPIのモニタリング機能を提供します。
type MonitoringService struct {
	logs []RequestLog
	mu   sync.RWMutex
}

// NewMonitoringService は新しいMonitoringServiceを生成します。
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs: make([]RequestLog, 0),
	}
}

// LogRequest はリクエストを記録します。
func (s *MonitoringService) LogRequest(entry RequestLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[len(s.logs)-maxLogEntries:]
	}
}

// LoggingMiddleware はリクエスト情報を記録するGinミドルウェアです。
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// 管理系・モニタリング系のパスは集計に含めない
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/admin") || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(RequestLog{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		})
	}
}

// DashboardData はダッシュボードに表示するための集計済みデータです。
type DashboardData struct {
	RequestsOverTime []HourlyRequests `json:"requests_over_time"`
	Endpoints        map[string]int   `json:"endpoints"`
	StatusClasses    map[string]int   `json:"status_classes"`
	AvgResponseMs    map[string]int64 `json:"avg_response_ms"`
	RecentErrors     []RequestLog     `json:"recent_errors"`
}

// HourlyRequests 1時間バケットあたりのリクエスト数
type HourlyRequests struct {
	Hour     string `json:"hour"`
	Requests int    `json:"requests"`
}

// GetDashboardData は指定された期間のログを集計してダッシュボード用データを返します。
func (s *MonitoringService) GetDashboardData(periodHours int) DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	since := now.Add(-time.Duration(periodHours) * time.Hour)

	filtered := make([]RequestLog, 0)
	for _, entry := range s.logs {
		if entry.Timestamp.After(since) {
			filtered = append(filtered, entry)
		}
	}

	// 1時間単位のバケットを過去から現在へ向かう順序で初期化する
	buckets := make(map[string]int, periodHours)
	overTime := make([]HourlyRequests, periodHours)
	for i := 0; i < periodHours; i++ {
		target := now.Add(-time.Duration(periodHours-1-i) * time.Hour).Truncate(time.Hour)
		key := target.Format(time.RFC3339)
		buckets[key] = 0
		overTime[i] = HourlyRequests{Hour: target.Format("15:00")}
	}
	for _, entry := range filtered {
		buckets[entry.Timestamp.Truncate(time.Hour).Format(time.RFC3339)]++
	}
	for i := 0; i < periodHours; i++ {
		target := now.Add(-time.Duration(periodHours-1-i) * time.Hour).Truncate(time.Hour)
		overTime[i].Requests = buckets[target.Format(time.RFC3339)]
	}

	endpoints := make(map[string]int)
	statusClasses := map[string]int{"2xx": 0, "4xx": 0, "5xx": 0}
	responseSum := make(map[string]time.Duration)
	for _, entry := range filtered {
		endpoints[entry.Path]++
		switch {
		case entry.StatusCode >= 200 && entry.StatusCode < 300:
			statusClasses["2xx"]++
		case entry.StatusCode >= 400 && entry.StatusCode < 500:
			statusClasses["4xx"]++
		case entry.StatusCode >= 500:
			statusClasses["5xx"]++
		}
		responseSum[entry.Path] += entry.ResponseTime
	}

	avgResponse := make(map[string]int64)
	for path, total := range responseSum {
		avgResponse[path] = total.Milliseconds() / int64(endpoints[path])
	}

	// 直近のサーバーエラーを新しい順に最大10件
	recentErrors := make([]RequestLog, 0)
	for i := len(filtered) - 1; i >= 0 && len(recentErrors) < 10; i-- {
		if filtered[i].StatusCode >= 500 {
			recentErrors = append(recentErrors, filtered[i])
		}
	}

	return DashboardData{
		RequestsOverTime: overTime,
		Endpoints:        endpoints,
		StatusClasses:    statusClasses,
		AvgResponseMs:    avgResponse,
		RecentErrors:     recentErrors,
	}
}
