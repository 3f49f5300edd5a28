// 動作確認用の譲渡履歴サンプルCSVを生成するツール。
// 週末と昼過ぎに件数が偏るよう重み付きでサンプリングする。
//
// 使い方:
//
//	go run ./cmd/generate-sample -out sample.csv -days 90 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
)

// weekdayWeights 曜日ごとの発生率（日曜始まり、time.Weekday準拠）
var weekdayWeights = []float64{1.8, 0.6, 0.7, 0.8, 0.9, 1.2, 2.0}

// hourWeights 開所時間（8〜18時）の発生率。昼過ぎがピーク。
var hourWeights = map[int]float64{
	8: 0.4, 9: 0.6, 10: 0.9, 11: 1.0, 12: 0.8,
	13: 1.2, 14: 1.4, 15: 1.3, 16: 1.0, 17: 0.7, 18: 0.3,
}

// speciesPool 生成対象の動物種と重み
var speciesPool = []struct {
	name   string
	weight float64
}{
	{"Dog", 0.45},
	{"Cat", 0.40},
	{"Rabbit", 0.10},
	{"Bird", 0.05},
}

func pickSpecies(r *rand.Rand) string {
	v := r.Float64()
	acc := 0.0
	for _, s := range speciesPool {
		acc += s.weight
		if v < acc {
			return s.name
		}
	}
	return speciesPool[len(speciesPool)-1].name
}

func pickHour(r *rand.Rand) int {
	total := 0.0
	for _, w := range hourWeights {
		total += w
	}
	v := r.Float64() * total
	for h := 8; h <= 18; h++ {
		v -= hourWeights[h]
		if v < 0 {
			return h
		}
	}
	return 18
}

func main() {
	out := flag.String("out", "sample_adoptions.csv", "出力先CSVのパス")
	days := flag.Int("days", 90, "生成する期間（日数）")
	perDay := flag.Float64("per-day", 3.0, "1日あたりの平均譲渡件数")
	seed := flag.Int64("seed", time.Now().UnixNano(), "乱数シード（再現用）")
	flag.Parse()

	r := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("❌ 出力ファイルを作成できません: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"Outcome", "AnimalNumber", "Species", "DateTime"})

	start := time.Now().AddDate(0, 0, -*days)
	total := 0
	for d := 0; d < *days; d++ {
		day := start.AddDate(0, 0, d)
		weight := weekdayWeights[int(day.Weekday())]

		// ポアソン近似の代わりに重み付き期待値の前後で揺らす
		count := int(*perDay*weight + r.Float64()*2 - 1)
		if count < 0 {
			count = 0
		}

		for i := 0; i < count; i++ {
			total++
			ts := time.Date(day.Year(), day.Month(), day.Day(), pickHour(r), r.Intn(60), 0, 0, time.UTC)
			w.Write([]string{
				"Adoption",
				fmt.Sprintf("A%06d", total),
				pickSpecies(r),
				ts.Format("1/2/06 15:04"),
			})
		}
	}

	log.Printf("✅ %d件の譲渡データを%sに書き出しました（シード: %d）", total, *out, *seed)
}
