// 譲渡履歴CSVを読み込み、集計と業務量の試算をコンソールに表示するツール。
// サーバーを立てずに単発の分析を行いたいときに使う。
//
// 使い方:
//
//	go run ./cmd/report -file data/adoptions.csv -counselors 3
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"adoption-forecast-api/pkg/models"
	"adoption-forecast-api/pkg/services"

	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	filePath := flag.String("file", "", "譲渡履歴CSVのパス（必須）")
	minutes := flag.Float64("minutes", 30, "1件あたりの対応時間（分）")
	nonAdopterPct := flag.Float64("non-adopter-pct", 30, "非譲渡来訪者の割合（0〜100）")
	counselors := flag.Int("counselors", 3, "カウンセラー人数")
	workday := flag.Float64("workday", services.DefaultWorkdayHours, "1日の標準勤務時間")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("❌ ファイルを開けません: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		log.Fatalf("❌ CSVの解析に失敗しました: %v", err)
	}

	datasetService := services.NewDatasetService()
	dataset, err := datasetService.LoadEvents(rows)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	dataset.FileName = *filePath

	if dataset.RejectedRows > 0 {
		log.Printf("⚠️ %d行をスキップしました", dataset.RejectedRows)
		for _, sample := range dataset.RejectSamples {
			log.Printf("   - %s", sample)
		}
	}

	forecastConfig := models.ForecastConfig{
		MinutesPerInteraction: *minutes,
		NonAdopterFraction:    *nonAdopterPct / 100.0,
		CounselorCount:        *counselors,
		WorkdayHours:          *workday,
	}

	forecastService := services.NewForecastService()
	metrics := forecastService.Aggregate(dataset.Events)
	summary := forecastService.DatasetSummary(dataset.Events)

	printOverview(dataset, summary)
	printWeekdayTable(metrics)
	printSpeciesTable(metrics)

	workload, err := forecastService.ComputeWorkload(dataset.Events, forecastConfig)
	if err != nil {
		var cfgErr *services.ConfigError
		if errors.As(err, &cfgErr) {
			log.Fatalf("❌ 設定エラー: %v", cfgErr)
		}
		if errors.Is(err, services.ErrEmptyDataset) {
			log.Fatalf("❌ %v", err)
		}
		log.Fatalf("❌ 業務量の計算に失敗しました: %v", err)
	}
	printWorkloadTable(workload)
}

func printOverview(dataset *models.Dataset, summary models.DatasetSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("データ概要")
	t.AppendRow(table.Row{"ファイル", dataset.FileName})
	t.AppendRow(table.Row{"有効件数", summary.TotalEvents})
	t.AppendRow(table.Row{"却下行数", dataset.RejectedRows})
	t.AppendRow(table.Row{"期間", fmt.Sprintf("%s 〜 %s", summary.StartDate, summary.EndDate)})
	t.Render()
}

func printWeekdayTable(metrics models.AggregatedMetrics) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("曜日別件数")
	t.AppendHeader(table.Row{"曜日", "件数"})
	for _, wc := range metrics.Weekday {
		t.AppendRow(table.Row{wc.Weekday, wc.Count})
	}
	t.Render()
}

func printSpeciesTable(metrics models.AggregatedMetrics) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("動物種別件数")
	t.AppendHeader(table.Row{"種別", "件数"})
	for _, sc := range metrics.Species {
		t.AppendRow(table.Row{sc.Species, sc.Count})
	}
	t.Render()
}

func printWorkloadTable(w *models.WorkloadSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("カウンセラー業務量")
	t.AppendRow(table.Row{"1日平均譲渡数", fmt.Sprintf("%.2f", w.AvgDailyAdoptions)})
	t.AppendRow(table.Row{"最繁忙日", fmt.Sprintf("%s (%d件)", w.BusiestDay, w.BusiestDayAdoptions)})
	t.AppendRow(table.Row{"1日の対応時間", fmt.Sprintf("%.1f分", w.InteractionMinutesPerDay)})
	t.AppendRow(table.Row{"必要時間（全体）", fmt.Sprintf("%.2f時間", w.CounselorHoursNeeded)})
	t.AppendRow(table.Row{"1人あたり", fmt.Sprintf("%.2f時間", w.HoursPerCounselor)})
	t.AppendRow(table.Row{"稼働率", fmt.Sprintf("%.1f%%", w.UtilizationPercent)})
	t.AppendRow(table.Row{"ピーク時間帯", fmt.Sprintf("%d時 (%d件)", w.PeakHour, w.PeakHourAdoptions)})
	t.AppendRow(table.Row{"状態", string(w.CapacityStatus)})
	if w.CapacityStatus == models.CapacityOverCapacity {
		t.AppendRow(table.Row{"不足時間", fmt.Sprintf("%.2f時間", w.AdditionalHoursNeeded)})
		t.AppendRow(table.Row{"推奨追加人数", fmt.Sprintf("%.1f人", w.RecommendedExtraCounselors)})
	}
	t.Render()
}
