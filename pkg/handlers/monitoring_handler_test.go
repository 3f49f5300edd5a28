package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"adoption-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newMonitoringRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMonitoringHandler(services.NewMonitoringService())

	r := gin.New()
	r.GET("/monitoring/logs", h.GetLogs)
	return r
}

func TestGetLogs(t *testing.T) {
	r := newMonitoringRouter()

	for _, period := range []string{"1h", "24h", "7d"} {
		req, _ := http.NewRequest("GET", "/monitoring/logs?period="+period, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, period, resp["period"])
		assert.Contains(t, resp, "dashboard")
	}

	// period未指定は24hとして扱う
	req, _ := http.NewRequest("GET", "/monitoring/logs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetLogsRejectsUnknownPeriod(t *testing.T) {
	r := newMonitoringRouter()

	req, _ := http.NewRequest("GET", "/monitoring/logs?period=30d", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}
