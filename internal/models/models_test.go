package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDataPointsRunningSum(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "2", Amount: -5, Type: "xp", CreatedAt: t0.Add(time.Hour)},
		{ID: "1", Amount: 10, Type: "xp", CreatedAt: t0},
	}

	points := BuildDataPoints(records)

	require.Len(t, points, 2)
	assert.Equal(t, []float64{10, 5}, CumulativeTotals(points))
	assert.Equal(t, t0, points[0].Timestamp)
	assert.Equal(t, -5.0, points[1].Amount)
	// input slice is left untouched
	assert.Equal(t, "2", records[0].ID)
}

func TestBuildDataPointsPrefixSumProperty(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	amounts := []float64{3, 7, 0, 12.5, 1, 40, 2}
	offsets := []int{5, 1, 3, 0, 6, 2, 4}

	var records []Record
	for i, a := range amounts {
		records = append(records, Record{Amount: a, CreatedAt: base.Add(time.Duration(offsets[i]) * time.Minute)})
	}

	points := BuildDataPoints(records)
	sorted := SortRecords(records)

	running := 0.0
	for i, p := range points {
		running += sorted[i].Amount
		assert.InDelta(t, running, p.CumulativeTotal, 1e-9)
		if i > 0 {
			assert.False(t, p.Timestamp.Before(points[i-1].Timestamp))
			assert.GreaterOrEqual(t, p.CumulativeTotal, points[i-1].CumulativeTotal)
		}
	}
}

func TestSortRecordsIsStable(t *testing.T) {
	ts := time.Date(2025, 3, 3, 3, 3, 3, 0, time.UTC)
	records := []Record{{ID: "a", CreatedAt: ts}, {ID: "b", CreatedAt: ts}, {ID: "c", CreatedAt: ts.Add(-time.Second)}}

	sorted := SortRecords(records)

	assert.Equal(t, "c", sorted[0].ID)
	assert.Equal(t, "a", sorted[1].ID)
	assert.Equal(t, "b", sorted[2].ID)
}

func TestBuildDataPointsEmpty(t *testing.T) {
	assert.Nil(t, BuildDataPoints(nil))
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 2, 10, 8, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   interface{}
	}{
		{"rfc3339", "2024-02-10T08:30:00Z"},
		{"offset", "2024-02-10T08:30:00+00:00"},
		{"fractional", "2024-02-10T08:30:00.000000+00:00"},
		{"no zone", "2024-02-10T08:30:00"},
		{"epoch seconds", float64(want.Unix())},
		{"epoch millis", float64(want.UnixMilli())},
		{"epoch string", "1707553800"},
		{"json number", json.Number("1707553800000")},
		{"int64", want.Unix()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseTimestampDateOnly(t *testing.T) {
	got, err := ParseTimestamp("2024-02-10")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Day())
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, in := range []interface{}{"", "yesterday", nil, true} {
		_, err := ParseTimestamp(in)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, "%v", in)
	}
}

func TestRawRecordNormalize(t *testing.T) {
	var raw []RawRecord
	payload := `[
		{"id": 17, "amount": 1200, "type": "xp", "createdAt": "2024-02-10T08:30:00Z", "path": "/bh/bh-module/go"},
		{"id": "x", "amount": "oops", "type": "xp", "createdAt": "2024-02-10T08:30:00Z"},
		{"id": 18, "amount": 300, "type": "xp", "createdAt": 1707553800000}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	records, skipped := NormalizeAll(raw)

	assert.Equal(t, 1, skipped)
	require.Len(t, records, 2)
	assert.Equal(t, "17", records[0].ID)
	assert.Equal(t, 1200.0, records[0].Amount)
	assert.Equal(t, records[0].CreatedAt.Unix(), records[1].CreatedAt.Unix())
}

func TestRawRecordAmountForms(t *testing.T) {
	at := "2024-02-10T08:30:00Z"
	tests := []struct {
		name    string
		amount  interface{}
		want    float64
		wantErr bool
	}{
		{"float", 12.5, 12.5, false},
		{"json number", json.Number("-40"), -40, false},
		{"numeric string", " 300 ", 300, false},
		{"word", "oops", 0, true},
		{"missing", nil, 0, true},
		{"bool", true, 0, true},
		{"nan string", "NaN", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := RawRecord{ID: 1, Amount: tt.amount, CreatedAt: at}.Normalize()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Amount)
		})
	}
}

func TestLabelFromType(t *testing.T) {
	assert.Equal(t, "go", LabelFromType("skill_go", DefaultCategoryPrefix))
	assert.Equal(t, "front end", LabelFromType("skill_front-end", DefaultCategoryPrefix))
	assert.Equal(t, "sys admin", LabelFromType("skill_sys_admin", DefaultCategoryPrefix))
	assert.Equal(t, "level", LabelFromType("level", DefaultCategoryPrefix))
}

func TestCategoriesFromRecordsPreservesOrder(t *testing.T) {
	records := []Record{
		{Type: "skill_js", Amount: 20},
		{Type: "skill_go", Amount: 35},
		{Type: "skill_js", Amount: 45},
		{Type: "skill_", Amount: 99},
		{Type: "skill_docker", Amount: 10},
	}

	cv := CategoriesFromRecords(records, DefaultCategoryPrefix)

	assert.Equal(t, []string{"js", "go", "docker"}, cv.Labels())
	assert.Equal(t, []float64{45, 35, 10}, cv.Values())
}
