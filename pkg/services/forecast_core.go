package services

import (
	"sort"
	"time"

	"adoption-forecast-api/pkg/models"
)

// ForecastService 譲渡需要の集計・予測エンジン
type ForecastService struct{}

// NewForecastService 新しい予測エンジンを作成
func NewForecastService() *ForecastService {
	return &ForecastService{}
}

// weekdayLabels 月曜始まりの固定順。データの順序に関わらずこの並びで返す。
var weekdayLabels = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// mondayFirstIndex time.Weekday（日曜=0）を月曜始まりのインデックス（0〜6）へ変換
func mondayFirstIndex(w time.Weekday) int {
	if w == time.Sunday {
		return 6
	}
	return int(w) - 1
}

// CountByDay 日別の譲渡件数を日付昇順で返す。
// ゼロ件の日は合成しない（疎な集計）。トレンド表示の方針であり、
// 欠けた日を補完したい場合は FillDayGaps を使う。
func (s *ForecastService) CountByDay(events []models.AdoptionEvent) []models.DailyCount {
	byDay := make(map[string]int)
	for _, e := range events {
		byDay[e.DateKey()]++
	}

	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	counts := make([]models.DailyCount, 0, len(dates))
	for _, d := range dates {
		counts = append(counts, models.DailyCount{Date: d, Count: byDay[d]})
	}
	return counts
}

// FillDayGaps CountByDayの結果の内側の欠け日をゼロ件で補完する（任意のバリアント）。
func (s *ForecastService) FillDayGaps(daily []models.DailyCount) []models.DailyCount {
	if len(daily) < 2 {
		return daily
	}
	start, err := time.Parse("2006-01-02", daily[0].Date)
	if err != nil {
		return daily
	}
	end, err := time.Parse("2006-01-02", daily[len(daily)-1].Date)
	if err != nil {
		return daily
	}

	byDay := make(map[string]int, len(daily))
	for _, d := range daily {
		byDay[d.Date] = d.Count
	}

	var filled []models.DailyCount
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		filled = append(filled, models.DailyCount{Date: key, Count: byDay[key]})
	}
	return filled
}

// CountByHour 時間帯別の譲渡件数。0〜23時の24要素をゼロ埋めで必ず返す
// （時間帯は有界な巡回ドメインなので密な集計にする）。
func (s *ForecastService) CountByHour(events []models.AdoptionEvent) []models.HourlyCount {
	var byHour [24]int
	for _, e := range events {
		byHour[e.Hour()]++
	}

	counts := make([]models.HourlyCount, 24)
	for h := 0; h < 24; h++ {
		counts[h] = models.HourlyCount{Hour: h, Count: byHour[h]}
	}
	return counts
}

// CountByWeekday 曜日別の譲渡件数。月曜始まりの7要素をゼロ埋めで必ず返す。
func (s *ForecastService) CountByWeekday(events []models.AdoptionEvent) []models.WeekdayCount {
	var byWeekday [7]int
	for _, e := range events {
		byWeekday[mondayFirstIndex(e.Timestamp.Weekday())]++
	}

	counts := make([]models.WeekdayCount, 7)
	for i, label := range weekdayLabels {
		counts[i] = models.WeekdayCount{Weekday: label, Count: byWeekday[i]}
	}
	return counts
}

// CountBySpecies 動物種別の譲渡件数。観測された種のみ（疎）。
// 種は自由記述の開いた集合なのでゼロ埋めは行わない。
// 表示用に件数降順、同数なら名前昇順で並べる。
func (s *ForecastService) CountBySpecies(events []models.AdoptionEvent) []models.SpeciesCount {
	bySpecies := make(map[string]int)
	for _, e := range events {
		bySpecies[e.Species]++
	}

	counts := make([]models.SpeciesCount, 0, len(bySpecies))
	for sp, n := range bySpecies {
		counts = append(counts, models.SpeciesCount{Species: sp, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Species < counts[j].Species
	})
	return counts
}

// CountByMonth 月別の譲渡件数をYYYY-MMラベル昇順で返す（疎）。
func (s *ForecastService) CountByMonth(events []models.AdoptionEvent) []models.MonthlyCount {
	byMonth := make(map[string]int)
	for _, e := range events {
		byMonth[e.MonthKey()]++
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	counts := make([]models.MonthlyCount, 0, len(months))
	for _, m := range months {
		counts = append(counts, models.MonthlyCount{Month: m, Count: byMonth[m]})
	}
	return counts
}

// Aggregate すべての集計をまとめて返す。各集計は独立した純粋関数。
func (s *ForecastService) Aggregate(events []models.AdoptionEvent) models.AggregatedMetrics {
	return models.AggregatedMetrics{
		Daily:   s.CountByDay(events),
		Hourly:  s.CountByHour(events),
		Weekday: s.CountByWeekday(events),
		Species: s.CountBySpecies(events),
		Monthly: s.CountByMonth(events),
	}
}

// DatasetSummary データ概要（総件数・期間・観測された種）を返す。
func (s *ForecastService) DatasetSummary(events []models.AdoptionEvent) models.DatasetSummary {
	summary := models.DatasetSummary{TotalEvents: len(events)}
	if len(events) == 0 {
		summary.Species = []string{}
		return summary
	}

	minTS := events[0].Timestamp
	maxTS := events[0].Timestamp
	for _, e := range events[1:] {
		if e.Timestamp.Before(minTS) {
			minTS = e.Timestamp
		}
		if e.Timestamp.After(maxTS) {
			maxTS = e.Timestamp
		}
	}
	summary.StartDate = minTS.Format("2006-01-02")
	summary.EndDate = maxTS.Format("2006-01-02")

	for _, sc := range s.CountBySpecies(events) {
		summary.Species = append(summary.Species, sc.Species)
	}
	return summary
}

// PeakHour 最も件数の多い時間帯を返す。同数の場合は早い時間を優先（決定的）。
func (s *ForecastService) PeakHour(events []models.AdoptionEvent) (hour int, count int) {
	for _, hc := range s.CountByHour(events) {
		if hc.Count > count {
			hour = hc.Hour
			count = hc.Count
		}
	}
	return hour, count
}

// BusiestDay 最も件数の多い日を返す。同数の場合は早い日付を優先（決定的）。
func (s *ForecastService) BusiestDay(events []models.AdoptionEvent) (date string, count int) {
	for _, dc := range s.CountByDay(events) {
		if dc.Count > count {
			date = dc.Date
			count = dc.Count
		}
	}
	return date, count
}
