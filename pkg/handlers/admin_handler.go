package handlers

import (
	"net/http"
	"sync/atomic"

	config "adoption-forecast-api/configs"

	"github.com/gin-gonic/gin"
)

// isMaintenanceMode はサーバーがメンテナンスモードかどうかを示します。
// atomic.Boolを使用して、スレッドセーフな読み書きを保証します。
var isMaintenanceMode atomic.Bool

// AdminHandler 管理者向け操作（メンテナンスモードの切替）のハンドラ
type AdminHandler struct {
	adminUsername string
	adminPassword string
}

// NewAdminHandler 新しいAdminHandlerを生成
func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		adminUsername: cfg.AdminUsername,
		adminPassword: cfg.AdminPassword,
	}
}

// adminCredentials 管理者認証のリクエストボディ
type adminCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authorize リクエストボディの認証情報を検証する。
// 失敗時はエラーレスポンスを書き込んでfalseを返す。
func (h *AdminHandler) authorize(c *gin.Context) bool {
	var input adminCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "usernameとpasswordが必要です"})
		return false
	}
	if input.Username != h.adminUsername || input.Password != h.adminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "認証情報が正しくありません"})
		return false
	}
	return true
}

// StartMaintenance メンテナンスモードを開始する
func (h *AdminHandler) StartMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	isMaintenanceMode.Store(true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "メンテナンスモードを開始しました"})
}

// StopMaintenance メンテナンスモードを停止する
func (h *AdminHandler) StopMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	isMaintenanceMode.Store(false)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "メンテナンスモードを停止しました"})
}

// GetHealthStatus 現在のサーバー状態を返す
func (h *AdminHandler) GetHealthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "maintenance_mode": isMaintenanceMode.Load()})
}

// HealthCheck 外部のヘルスチェッカー（ロードバランサーなど）向けのエンドポイント。
// メンテナンス中は503を返す。
func HealthCheck(c *gin.Context) {
	if isMaintenanceMode.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "status": "unavailable", "error": "メンテナンス中です"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}
