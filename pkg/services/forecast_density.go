package services

import (
	"math"

	"adoption-forecast-api/pkg/models"
)

// HourlyDensityCurve fits a normal distribution to the hour-of-day sample and
// returns a smooth curve over [0,23], scaled by len(events)/24 so the curve
// overlays the hourly bar counts.
// 表示専用であり、コアの契約には含まれない。
func (s *ForecastService) HourlyDensityCurve(events []models.AdoptionEvent, points int) []models.DensityPoint {
	if len(events) == 0 || points < 2 {
		return []models.DensityPoint{}
	}

	hours := make([]float64, len(events))
	for i, e := range events {
		hours[i] = float64(e.Hour())
	}

	mean := calculateMean(hours)
	std := calculateStandardDeviation(hours)
	if std == 0 {
		// 分散ゼロでは密度が定義できないため空カーブを返す
		return []models.DensityPoint{}
	}

	scale := float64(len(events)) / 24.0
	step := 23.0 / float64(points-1)

	curve := make([]models.DensityPoint, points)
	for i := 0; i < points; i++ {
		x := float64(i) * step
		curve[i] = models.DensityPoint{
			Hour:  x,
			Value: normalPDF(x, mean, std) * scale,
		}
	}
	return curve
}

// normalPDF evaluates the normal probability density function.
func normalPDF(x, mean, std float64) float64 {
	z := (x - mean) / std
	return math.Exp(-0.5*z*z) / (std * math.Sqrt(2*math.Pi))
}

// calculateMean パッケージ内部用のヘルパー関数：平均値を計算
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// calculateStandardDeviation パッケージ内部用のヘルパー関数：標準偏差を計算
func calculateStandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := calculateMean(values)
	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	return math.Sqrt(sumSquaredDiff / float64(len(values)))
}
