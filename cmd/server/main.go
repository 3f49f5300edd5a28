package main

import (
	"log"
	"net/http"

	config "adoption-forecast-api/configs"
	"adoption-forecast-api/pkg/handlers"
	"adoption-forecast-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()

	// Ginルーターの初期化
	r := gin.Default()

	// サービスの初期化
	monitoringService := services.NewMonitoringService()
	datasetService := services.NewDatasetService()
	forecastService := services.NewForecastService()
	reportService := services.NewReportService(forecastService)

	// ハンドラーの初期化
	forecastHandler := handlers.NewForecastHandler(datasetService, forecastService, reportService, cfg)
	adminHandler := handlers.NewAdminHandler(cfg)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// ミドルウェアの登録
	r.Use(monitoringService.LoggingMiddleware()) // ロギングミドルウェアをグローバルに適用
	r.Use(cors.Default())

	// 認証ミドルウェア
	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" || apiKey == "default_secret_key" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	// ヘルスチェックエンドポイント
	r.GET("/health", handlers.HealthCheck)

	// APIバージョン1のルートグループ
	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		// 管理者向けAPI
		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		// モニタリングAPI
		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}

		// 譲渡データ分析API
		forecast := v1.Group("/forecast")
		{
			forecast.POST("/analyze-file", forecastHandler.AnalyzeFile)           // 譲渡履歴ファイル分析API
			forecast.POST("/workload", forecastHandler.ComputeWorkload)           // 業務負荷再計算API
			forecast.GET("/metrics/:reportID", forecastHandler.GetMetrics)        // 集計メトリクス取得API
			forecast.GET("/density/:reportID", forecastHandler.GetDensity)        // 時間帯密度カーブAPI
			forecast.GET("/analysis-reports", forecastHandler.ListAnalysisReports)
			forecast.DELETE("/analysis-reports", forecastHandler.DeleteAllAnalysisReports)
			forecast.GET("/analysis-report/:reportID", forecastHandler.GetAnalysisReport)
			forecast.DELETE("/analysis-report/:reportID", forecastHandler.DeleteAnalysisReport)
		}
	}

	addr := ":" + cfg.Port
	log.Printf("Starting Adoption Forecast API server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
