package services

import (
	"testing"
	"time"

	"adoption-forecast-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func event(species string, year int, month time.Month, day, hour, minute int) models.AdoptionEvent {
	return models.AdoptionEvent{
		AnimalID:  "A000",
		Species:   species,
		Timestamp: time.Date(year, month, day, hour, minute, 0, 0, time.UTC),
	}
}

// sampleEvents 2024/6/26〜27の3件（Dog×2, Cat×1）
func sampleEvents() []models.AdoptionEvent {
	return []models.AdoptionEvent{
		event("Dog", 2024, 6, 26, 8, 34),
		event("Cat", 2024, 6, 26, 14, 22),
		event("Dog", 2024, 6, 27, 10, 15),
	}
}

func TestCountByDay(t *testing.T) {
	s := NewForecastService()
	daily := s.CountByDay(sampleEvents())

	assert.Len(t, daily, 2)
	assert.Equal(t, models.DailyCount{Date: "2024-06-26", Count: 2}, daily[0])
	assert.Equal(t, models.DailyCount{Date: "2024-06-27", Count: 1}, daily[1])

	// ゼロ件の日は含まれない（疎な集計）
	for _, d := range daily {
		assert.Greater(t, d.Count, 0)
	}
}

func TestCountByDaySumInvariant(t *testing.T) {
	s := NewForecastService()
	events := sampleEvents()

	checkSum := func(total int) {
		daily := s.CountByDay(events)
		sum := 0
		for _, d := range daily {
			sum += d.Count
		}
		assert.Equal(t, total, sum, "daily counts should sum to total events")
	}
	checkSum(len(events))

	// 各集計軸で合計はイベント総数に一致する
	hourSum := 0
	for _, h := range s.CountByHour(events) {
		hourSum += h.Count
	}
	assert.Equal(t, len(events), hourSum)

	weekdaySum := 0
	for _, w := range s.CountByWeekday(events) {
		weekdaySum += w.Count
	}
	assert.Equal(t, len(events), weekdaySum)

	speciesSum := 0
	for _, sp := range s.CountBySpecies(events) {
		speciesSum += sp.Count
	}
	assert.Equal(t, len(events), speciesSum)
}

func TestCountByDayMonotonic(t *testing.T) {
	s := NewForecastService()
	events := sampleEvents()

	countFor := func(daily []models.DailyCount, date string) int {
		for _, d := range daily {
			if d.Date == date {
				return d.Count
			}
		}
		return 0
	}

	before := countFor(s.CountByDay(events), "2024-06-27")

	// 既存の日付へイベントを追加すると、その日の件数は必ず増える
	events = append(events, event("Rabbit", 2024, 6, 27, 16, 45))
	after := countFor(s.CountByDay(events), "2024-06-27")
	assert.Greater(t, after, before)

	// 他の日の件数は変わらない
	assert.Equal(t, 2, countFor(s.CountByDay(events), "2024-06-26"))
}

func TestCountByHourDense(t *testing.T) {
	s := NewForecastService()
	hourly := s.CountByHour(sampleEvents())

	// 件数ゼロの時間帯も含めて必ず24要素
	assert.Len(t, hourly, 24)
	for h, hc := range hourly {
		assert.Equal(t, h, hc.Hour)
	}
	assert.Equal(t, 1, hourly[8].Count)
	assert.Equal(t, 1, hourly[10].Count)
	assert.Equal(t, 1, hourly[14].Count)
	assert.Equal(t, 0, hourly[0].Count)
}

func TestCountByWeekdayDense(t *testing.T) {
	s := NewForecastService()
	weekday := s.CountByWeekday(sampleEvents())

	// 月曜始まりの固定順で必ず7要素
	assert.Len(t, weekday, 7)
	assert.Equal(t, "Monday", weekday[0].Weekday)
	assert.Equal(t, "Sunday", weekday[6].Weekday)

	// 2024-06-26は水曜、2024-06-27は木曜
	assert.Equal(t, 2, weekday[2].Count)
	assert.Equal(t, 1, weekday[3].Count)
}

func TestCountBySpeciesOrdering(t *testing.T) {
	s := NewForecastService()

	species := s.CountBySpecies(sampleEvents())
	assert.Equal(t, []models.SpeciesCount{
		{Species: "Dog", Count: 2},
		{Species: "Cat", Count: 1},
	}, species)

	// 同数なら名前の昇順
	tied := []models.AdoptionEvent{
		event("Cat", 2024, 6, 26, 10, 0),
		event("Dog", 2024, 6, 26, 11, 0),
	}
	species = s.CountBySpecies(tied)
	assert.Equal(t, "Cat", species[0].Species)
	assert.Equal(t, "Dog", species[1].Species)
}

func TestCountByMonth(t *testing.T) {
	s := NewForecastService()
	events := append(sampleEvents(), event("Dog", 2024, 7, 1, 9, 0))
	monthly := s.CountByMonth(events)

	assert.Equal(t, []models.MonthlyCount{
		{Month: "2024-06", Count: 3},
		{Month: "2024-07", Count: 1},
	}, monthly)
}

func TestAggregateIdempotent(t *testing.T) {
	s := NewForecastService()
	events := sampleEvents()

	first := s.Aggregate(events)
	second := s.Aggregate(events)
	assert.Equal(t, first, second, "aggregation should be deterministic")
}

func TestAggregateEmptyInput(t *testing.T) {
	s := NewForecastService()
	metrics := s.Aggregate(nil)

	assert.Empty(t, metrics.Daily)
	assert.Len(t, metrics.Hourly, 24)
	assert.Len(t, metrics.Weekday, 7)
	assert.Empty(t, metrics.Species)
	assert.Empty(t, metrics.Monthly)

	for _, h := range metrics.Hourly {
		assert.Equal(t, 0, h.Count)
	}
}

func TestPeakHourTieBreak(t *testing.T) {
	s := NewForecastService()

	// 8時と14時が同数の場合、早い時間を返す
	events := []models.AdoptionEvent{
		event("Dog", 2024, 6, 26, 14, 0),
		event("Cat", 2024, 6, 26, 8, 0),
	}
	hour, count := s.PeakHour(events)
	assert.Equal(t, 8, hour)
	assert.Equal(t, 1, count)
}

func TestBusiestDayTieBreak(t *testing.T) {
	s := NewForecastService()

	events := []models.AdoptionEvent{
		event("Dog", 2024, 6, 27, 10, 0),
		event("Cat", 2024, 6, 26, 10, 0),
	}
	date, count := s.BusiestDay(events)
	assert.Equal(t, "2024-06-26", date)
	assert.Equal(t, 1, count)
}

func TestFillDayGaps(t *testing.T) {
	s := NewForecastService()
	events := []models.AdoptionEvent{
		event("Dog", 2024, 6, 26, 10, 0),
		event("Cat", 2024, 6, 29, 10, 0),
	}
	filled := s.FillDayGaps(s.CountByDay(events))

	assert.Len(t, filled, 4)
	assert.Equal(t, models.DailyCount{Date: "2024-06-27", Count: 0}, filled[1])
	assert.Equal(t, models.DailyCount{Date: "2024-06-28", Count: 0}, filled[2])
}

func TestDatasetSummary(t *testing.T) {
	s := NewForecastService()
	summary := s.DatasetSummary(sampleEvents())

	assert.Equal(t, 3, summary.TotalEvents)
	assert.Equal(t, "2024-06-26", summary.StartDate)
	assert.Equal(t, "2024-06-27", summary.EndDate)
	assert.Equal(t, []string{"Dog", "Cat"}, summary.Species)
}
