package handlers

import (
	"strconv"
	"strings"
)

// parseFloatOrDefault フォーム値をfloatとして解析する。空ならデフォルト値を返す。
func parseFloatOrDefault(value string, defaultValue float64) (float64, bool) {
	if strings.TrimSpace(value) == "" {
		return defaultValue, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseIntOrDefault フォーム値をintとして解析する。空ならデフォルト値を返す。
func parseIntOrDefault(value string, defaultValue int) (int, bool) {
	if strings.TrimSpace(value) == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}

// percentToFraction 外部レイヤーの百分率（0〜100）をコア用の割合（0〜1）へ正規化する
func percentToFraction(percent float64) float64 {
	return percent / 100
}
