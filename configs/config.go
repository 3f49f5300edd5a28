package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port        string
	Environment string
	APIKey      string

	AdminUsername string
	AdminPassword string

	// 需要予測のデフォルトパラメータ
	DefaultMinutesPerInteraction float64
	DefaultNonAdopterFraction    float64
	DefaultCounselorCount        int

	// カウンセラーの標準勤務時間（時間）。稼働率計算の分母になる。
	WorkdayHours float64

	// アップロードファイルの上限サイズ（MB）
	MaxUploadMB int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:                         getEnv("PORT", "8080"),
		Environment:                  getEnv("ENVIRONMENT", "development"),
		APIKey:                       getEnv("API_KEY", ""),
		AdminUsername:                getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:                getEnv("ADMIN_PASSWORD", ""),
		DefaultMinutesPerInteraction: getEnvFloat("DEFAULT_MINUTES_PER_INTERACTION", 30),
		DefaultNonAdopterFraction:    getEnvFloat("DEFAULT_NON_ADOPTER_FRACTION", 0.30),
		DefaultCounselorCount:        getEnvInt("DEFAULT_COUNSELOR_COUNT", 3),
		WorkdayHours:                 getEnvFloat("WORKDAY_HOURS", 8),
		MaxUploadMB:                  int64(getEnvInt("MAX_UPLOAD_MB", 10)),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
