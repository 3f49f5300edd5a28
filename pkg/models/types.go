package models

import "time"

// CapacityStatus カウンセラー稼働状況の分類
type CapacityStatus string

const (
	CapacityUnderUtilized CapacityStatus = "UNDER_UTILIZED"
	CapacityOptimal       CapacityStatus = "OPTIMAL"
	CapacityOverCapacity  CapacityStatus = "OVER_CAPACITY"
)

// AdoptionEvent represents one validated adoption record.
// 検証済みの譲渡1件。ロード時に生成され、以後は不変。
type AdoptionEvent struct {
	AnimalID  string    `json:"animal_id"`
	Species   string    `json:"species"`
	Timestamp time.Time `json:"timestamp"`
}

// DateKey 日付キー（YYYY-MM-DD）を返す。派生値は保持せず都度計算する。
func (e AdoptionEvent) DateKey() string {
	return e.Timestamp.Format("2006-01-02")
}

// MonthKey 月キー（YYYY-MM）を返す。
func (e AdoptionEvent) MonthKey() string {
	return e.Timestamp.Format("2006-01")
}

// Hour 時間帯（0-23）を返す。
func (e AdoptionEvent) Hour() int {
	return e.Timestamp.Hour()
}

// ForecastConfig 予測計算の設定値。1回の分析セッション中は不変。
type ForecastConfig struct {
	MinutesPerInteraction float64 `json:"minutes_per_interaction"` // 1件あたりの対応時間（分）
	NonAdopterFraction    float64 `json:"non_adopter_fraction"`    // 非譲渡来訪者の割合（0〜1）
	CounselorCount        int     `json:"counselor_count"`         // カウンセラー人数
	WorkdayHours          float64 `json:"workday_hours"`           // 標準勤務時間（時間）
}

// Dataset ローダーが生成する検証済みイベント集合。
type Dataset struct {
	FileName      string          `json:"file_name"`
	Events        []AdoptionEvent `json:"events"`
	RejectedRows  int             `json:"rejected_rows"`
	RejectSamples []string        `json:"reject_samples,omitempty"` // 却下理由の例（最大5件）
}

// DatasetSummary データ概要
type DatasetSummary struct {
	TotalEvents int      `json:"total_events"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Species     []string `json:"species"`
}

// DailyCount 日別の譲渡件数
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HourlyCount 時間帯別の譲渡件数
type HourlyCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// WeekdayCount 曜日別の譲渡件数（月曜始まり）
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// SpeciesCount 動物種別の譲渡件数
type SpeciesCount struct {
	Species string `json:"species"`
	Count   int    `json:"count"`
}

// MonthlyCount 月別の譲渡件数
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// AggregatedMetrics 集計結果。呼び出しごとに再計算される値オブジェクト。
type AggregatedMetrics struct {
	Daily   []DailyCount   `json:"daily"`   // 昇順・疎（ゼロ件の日は含めない）
	Hourly  []HourlyCount  `json:"hourly"`  // 0〜23時すべて（密・ゼロ埋め）
	Weekday []WeekdayCount `json:"weekday"` // 月〜日すべて（密・ゼロ埋め）
	Species []SpeciesCount `json:"species"` // 件数降順・疎
	Monthly []MonthlyCount `json:"monthly"` // 昇順・疎
}

// WorkloadSummary カウンセラー業務量と稼働状況のサマリー
type WorkloadSummary struct {
	AvgDailyAdoptions        float64        `json:"avg_daily_adoptions"`
	BusiestDay               string         `json:"busiest_day"`
	BusiestDayAdoptions      int            `json:"busiest_day_adoptions"`
	InteractionMinutesPerDay float64        `json:"interaction_minutes_per_day"`
	CounselorHoursNeeded     float64        `json:"counselor_hours_needed"`
	HoursPerCounselor        float64        `json:"hours_per_counselor"`
	UtilizationPercent       float64        `json:"utilization_percent"`
	PeakHour                 int            `json:"peak_hour"`
	PeakHourAdoptions        int            `json:"peak_hour_adoptions"`
	PeakHourCounselorMinutes float64        `json:"peak_hour_counselor_minutes"`
	CapacityStatus           CapacityStatus `json:"capacity_status"`

	// 超過時の追加人員の目安（OVER_CAPACITY のときのみ設定）
	AdditionalHoursNeeded      float64 `json:"additional_hours_needed,omitempty"`
	RecommendedExtraCounselors float64 `json:"recommended_extra_counselors,omitempty"`

	Config ForecastConfig `json:"config"`
}

// DensityPoint 時間帯密度カーブの1点（表示専用）
type DensityPoint struct {
	Hour  float64 `json:"hour"`
	Value float64 `json:"value"`
}

// AnalysisReport 1回の分析の完全な結果
type AnalysisReport struct {
	ReportID        string            `json:"report_id"`
	FileName        string            `json:"file_name"`
	AnalysisDate    string            `json:"analysis_date"`
	DataPoints      int               `json:"data_points"`
	RejectedRows    int               `json:"rejected_rows"`
	DatasetSummary  DatasetSummary    `json:"dataset_summary"`
	Metrics         AggregatedMetrics `json:"metrics"`
	Workload        *WorkloadSummary  `json:"workload,omitempty"`
	Summary         string            `json:"summary"`
	Recommendations []string          `json:"recommendations"`
}

// WorkloadRequest 既存レポートのデータセットに対する再計算リクエスト
type WorkloadRequest struct {
	ReportID              string   `json:"report_id" binding:"required"`
	MinutesPerInteraction float64  `json:"minutes_per_interaction"`
	NonAdopterPercent     *float64 `json:"non_adopter_percent"` // 0〜100。コアに渡す前に0〜1へ正規化する
	CounselorCount        int      `json:"counselor_count"`
	WorkdayHours          *float64 `json:"workday_hours"` // 明示指定された0は却下する（未指定との区別のためポインタ）
}
