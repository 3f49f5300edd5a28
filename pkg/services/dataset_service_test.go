package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var sampleRows = [][]string{
	{"Outcome", "AnimalNumber", "Species", "DateTime"},
	{"Adoption", "A001", "Dog", "6/26/24 8:34"},
	{"Adoption", "A002", "Cat", "6/26/24 14:22"},
	{"Adoption", "A003", "Dog", "6/27/24 10:15"},
}

func TestLoadEvents(t *testing.T) {
	ds := NewDatasetService()
	dataset, err := ds.LoadEvents(sampleRows)
	assert.NoError(t, err)

	assert.Len(t, dataset.Events, 3)
	assert.Equal(t, 0, dataset.RejectedRows)

	first := dataset.Events[0]
	assert.Equal(t, "A001", first.AnimalID)
	assert.Equal(t, "Dog", first.Species)
	assert.Equal(t, time.Date(2024, 6, 26, 8, 34, 0, 0, time.UTC), first.Timestamp)
}

func TestLoadEventsSkipsNonAdoptions(t *testing.T) {
	ds := NewDatasetService()
	rows := [][]string{
		{"Outcome", "AnimalNumber", "Species", "DateTime"},
		{"Adoption", "A001", "Dog", "6/26/24 8:34"},
		{"Surrender", "A002", "Cat", "6/26/24 14:22"},
		{"Adoption", "A003", "Dog", "6/27/24 10:15"},
	}

	dataset, err := ds.LoadEvents(rows)
	assert.NoError(t, err)
	assert.Len(t, dataset.Events, 2)
	assert.Equal(t, 1, dataset.RejectedRows)
	assert.Len(t, dataset.RejectSamples, 1)

	// Outcomeの照合は大文字小文字を区別する
	rows[1][0] = "adoption"
	dataset, err = ds.LoadEvents(rows)
	assert.NoError(t, err)
	assert.Len(t, dataset.Events, 1)
	assert.Equal(t, 2, dataset.RejectedRows)
}

func TestLoadEventsRejectsBadRows(t *testing.T) {
	ds := NewDatasetService()
	rows := [][]string{
		{"Outcome", "AnimalNumber", "Species", "DateTime"},
		{"Adoption", "A001", "Dog", "not-a-date"},
		{"Adoption", "A002"}, // 列数不足
		{"Adoption", "A003", "Cat", "13/45/24 99:99"},
	}

	dataset, err := ds.LoadEvents(rows)
	assert.NoError(t, err, "row-level rejects should not be fatal")
	assert.Empty(t, dataset.Events)
	assert.Equal(t, 3, dataset.RejectedRows)
}

func TestLoadEventsMissingColumn(t *testing.T) {
	ds := NewDatasetService()
	rows := [][]string{
		{"Outcome", "AnimalNumber", "Species"}, // DateTime列なし
		{"Adoption", "A001", "Dog"},
	}

	_, err := ds.LoadEvents(rows)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DateTime")
}

func TestLoadEventsPreservesOrder(t *testing.T) {
	ds := NewDatasetService()

	// 入力が時系列順でなくても並べ替えない
	rows := [][]string{
		{"Outcome", "AnimalNumber", "Species", "DateTime"},
		{"Adoption", "A003", "Dog", "6/27/24 10:15"},
		{"Adoption", "A001", "Dog", "6/26/24 8:34"},
	}
	dataset, err := ds.LoadEvents(rows)
	assert.NoError(t, err)
	assert.Equal(t, "A003", dataset.Events[0].AnimalID)
	assert.Equal(t, "A001", dataset.Events[1].AnimalID)
}

func TestLoadEventsCaseInsensitiveHeader(t *testing.T) {
	ds := NewDatasetService()
	rows := [][]string{
		{"outcome", "animalnumber", "species", "datetime"},
		{"Adoption", "A001", "Dog", "6/26/24 8:34"},
	}

	dataset, err := ds.LoadEvents(rows)
	assert.NoError(t, err)
	assert.Len(t, dataset.Events, 1)
}

func TestLoadEventsRejectSampleCap(t *testing.T) {
	ds := NewDatasetService()
	rows := [][]string{{"Outcome", "AnimalNumber", "Species", "DateTime"}}
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{"Surrender", "A001", "Dog", "6/26/24 8:34"})
	}

	dataset, err := ds.LoadEvents(rows)
	assert.NoError(t, err)
	assert.Equal(t, 10, dataset.RejectedRows)
	assert.Len(t, dataset.RejectSamples, maxRejectSamples)
}
