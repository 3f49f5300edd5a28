package services

import (
	"fmt"
	"strings"
	"time"

	"adoption-forecast-api/pkg/models"
)

// datetimeLayout 入力ファイルの日時形式（M/D/YY H:MM、24時間制）。例: "6/26/24 8:34"
const datetimeLayout = "1/2/06 15:04"

// maxRejectSamples 却下理由のサンプルとして保持する最大件数
const maxRejectSamples = 5

// DatasetService 生の表データを検証してイベント集合へ変換するローダー
type DatasetService struct{}

// NewDatasetService 新しいローダーを作成
func NewDatasetService() *DatasetService {
	return &DatasetService{}
}

// findColumn ヘッダー行から候補名に一致する列のインデックスを探す（大文字小文字を無視）
func findColumn(header []string, candidates ...string) int {
	for _, candidate := range candidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), candidate) {
				return i
			}
		}
	}
	return -1
}

// LoadEvents ヘッダー行付きの生データをAdoptionEventの列へ変換する。
// 行の却下（日時の解析失敗、Outcome不一致、列数不足）は致命的ではなく件数として数え、
// 残りの行の処理を続行する。出力は入力順を保持し、時系列の並べ替えは行わない。
func (ds *DatasetService) LoadEvents(rows [][]string) (*models.Dataset, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("ヘッダー行がありません")
	}

	header := rows[0]
	outcomeIdx := findColumn(header, "Outcome", "outcome")
	animalIdx := findColumn(header, "AnimalNumber", "animal_number", "animal number")
	speciesIdx := findColumn(header, "Species", "species")
	datetimeIdx := findColumn(header, "DateTime", "datetime", "date_time")

	var missingCols []string
	if outcomeIdx == -1 {
		missingCols = append(missingCols, "Outcome")
	}
	if animalIdx == -1 {
		missingCols = append(missingCols, "AnimalNumber")
	}
	if speciesIdx == -1 {
		missingCols = append(missingCols, "Species")
	}
	if datetimeIdx == -1 {
		missingCols = append(missingCols, "DateTime")
	}
	if len(missingCols) > 0 {
		return nil, fmt.Errorf("必要な列が見つかりませんでした: %s。ファイルのヘッダー行を確認してください", strings.Join(missingCols, ", "))
	}

	dataset := &models.Dataset{Events: []models.AdoptionEvent{}}

	reject := func(rowNum int, reason string) {
		dataset.RejectedRows++
		if len(dataset.RejectSamples) < maxRejectSamples {
			dataset.RejectSamples = append(dataset.RejectSamples, fmt.Sprintf("行%d: %s", rowNum, reason))
		}
	}

	for i, row := range rows[1:] {
		rowNum := i + 2 // ヘッダー行を1行目として数える

		if len(row) <= outcomeIdx || len(row) <= animalIdx || len(row) <= speciesIdx || len(row) <= datetimeIdx {
			reject(rowNum, fmt.Sprintf("列数不足 (len=%d)", len(row)))
			continue
		}

		// Outcomeは大文字小文字を区別して完全一致のみ受け付ける
		outcome := strings.TrimSpace(row[outcomeIdx])
		if outcome != "Adoption" {
			reject(rowNum, fmt.Sprintf("Outcomeが'Adoption'ではありません ('%s')", outcome))
			continue
		}

		dateStr := strings.TrimSpace(row[datetimeIdx])
		ts, err := time.Parse(datetimeLayout, dateStr)
		if err != nil {
			reject(rowNum, fmt.Sprintf("日時の解析に失敗しました ('%s')", dateStr))
			continue
		}

		dataset.Events = append(dataset.Events, models.AdoptionEvent{
			AnimalID:  strings.TrimSpace(row[animalIdx]),
			Species:   strings.TrimSpace(row[speciesIdx]),
			Timestamp: ts,
		})
	}

	return dataset, nil
}
