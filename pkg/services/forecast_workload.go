package services

import (
	"errors"
	"fmt"

	"adoption-forecast-api/pkg/models"
)

// DefaultWorkdayHours 稼働率計算に使う標準勤務時間（時間）。
// 設定で上書き可能で、ForecastConfig.WorkdayHoursが未指定（0）の場合に使う。
const DefaultWorkdayHours = 8.0

// ErrEmptyDataset 有効なイベントが0件で、日次平均が定義できない場合のエラー。
// NaNを返す代わりにこのエラーで区別して報告する。
var ErrEmptyDataset = errors.New("有効な譲渡イベントが0件のため、業務量を計算できません")

// ConfigError 設定値の制約違反。違反した制約を明示し、計算は拒否される。
// 値の丸め込みやデフォルトへの置き換えは行わない。
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("設定エラー: %s（%s）", e.Reason, e.Field)
}

// ValidateConfig 設定値の制約を検証する。
func (s *ForecastService) ValidateConfig(cfg models.ForecastConfig) error {
	if cfg.MinutesPerInteraction <= 0 {
		return &ConfigError{Field: "minutes_per_interaction", Reason: "1件あたりの対応時間は正の値が必要です"}
	}
	if cfg.NonAdopterFraction < 0 || cfg.NonAdopterFraction > 1 {
		return &ConfigError{Field: "non_adopter_fraction", Reason: "非譲渡来訪者の割合は0〜1の範囲が必要です"}
	}
	if cfg.CounselorCount < 1 {
		return &ConfigError{Field: "counselor_count", Reason: "カウンセラー人数は1以上が必要です"}
	}
	if cfg.WorkdayHours < 0 {
		return &ConfigError{Field: "workday_hours", Reason: "勤務時間は正の値が必要です"}
	}
	return nil
}

// ComputeWorkload カウンセラー業務量とキャパシティ状況を計算する。
// (events, cfg) に対して決定的な純粋関数。設定エラー時は計算を拒否する。
func (s *ForecastService) ComputeWorkload(events []models.AdoptionEvent, cfg models.ForecastConfig) (*models.WorkloadSummary, error) {
	if err := s.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.WorkdayHours == 0 {
		cfg.WorkdayHours = DefaultWorkdayHours
	}

	daily := s.CountByDay(events)
	if len(daily) == 0 {
		return nil, ErrEmptyDataset
	}

	// 日次平均は譲渡のあった日のみで計算する（疎な日別集計と整合）。
	total := 0
	for _, d := range daily {
		total += d.Count
	}
	avgDaily := float64(total) / float64(len(daily))

	// 非譲渡来訪者を含めた1日あたりの総対応件数と所要時間
	multiplier := 1 + cfg.NonAdopterFraction
	minutesPerDay := avgDaily * multiplier * cfg.MinutesPerInteraction
	hoursNeeded := minutesPerDay / 60
	hoursPerCounselor := hoursNeeded / float64(cfg.CounselorCount)
	utilization := hoursPerCounselor / cfg.WorkdayHours * 100

	// ピーク時間帯は観測日あたりの平均件数で評価する
	peakHour, peakCount := s.PeakHour(events)
	peakAvgPerDay := float64(peakCount) / float64(len(daily))
	peakMinutes := peakAvgPerDay * multiplier * cfg.MinutesPerInteraction
	peakPerCounselor := peakMinutes / float64(cfg.CounselorCount)

	busiestDay, busiestCount := s.BusiestDay(events)

	summary := &models.WorkloadSummary{
		AvgDailyAdoptions:        avgDaily,
		BusiestDay:               busiestDay,
		BusiestDayAdoptions:      busiestCount,
		InteractionMinutesPerDay: minutesPerDay,
		CounselorHoursNeeded:     hoursNeeded,
		HoursPerCounselor:        hoursPerCounselor,
		UtilizationPercent:       utilization,
		PeakHour:                 peakHour,
		PeakHourAdoptions:        peakCount,
		PeakHourCounselorMinutes: peakPerCounselor,
		CapacityStatus:           classifyCapacity(utilization),
		Config:                   cfg,
	}

	if summary.CapacityStatus == models.CapacityOverCapacity {
		summary.AdditionalHoursNeeded = hoursPerCounselor - cfg.WorkdayHours
		summary.RecommendedExtraCounselors = summary.AdditionalHoursNeeded / cfg.WorkdayHours
	}

	return summary, nil
}

// classifyCapacity 稼働率をキャパシティ状況に分類する。
// 境界値の80.0と100.0はOPTIMALに含める。
func classifyCapacity(utilizationPercent float64) models.CapacityStatus {
	switch {
	case utilizationPercent < 80:
		return models.CapacityUnderUtilized
	case utilizationPercent <= 100:
		return models.CapacityOptimal
	default:
		return models.CapacityOverCapacity
	}
}
