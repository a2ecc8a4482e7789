package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Record represents one ledger entry fed into a chart
type Record struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// RawRecord is the loosely typed form delivered by the data layer.
// Amount may be a number or a numeric string; CreatedAt an ISO-8601 string or an epoch number.
// Both are validated by Normalize so one bad record does not fail a whole payload.
type RawRecord struct {
	ID        interface{} `json:"id"`
	Amount    interface{} `json:"amount"`
	Type      string      `json:"type"`
	CreatedAt interface{} `json:"createdAt"`
	Path      string      `json:"path,omitempty"`
}

// Normalize converts a raw record into a typed Record
func (r RawRecord) Normalize() (Record, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return Record{}, err
	}
	created, err := ParseTimestamp(r.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("invalid createdAt: %w", err)
	}
	id := ""
	if r.ID != nil {
		id = fmt.Sprint(r.ID)
	}
	return Record{ID: id, Amount: amount, Type: r.Type, CreatedAt: created}, nil
}

// ErrInvalidAmount is returned for amounts that are not finite numbers
var ErrInvalidAmount = errors.New("invalid amount")

func parseAmount(v interface{}) (float64, error) {
	var f float64
	switch a := v.(type) {
	case float64:
		f = a
	case int:
		f = float64(a)
	case int64:
		f = float64(a)
	case json.Number:
		n, err := a.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w %q", ErrInvalidAmount, a.String())
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return 0, fmt.Errorf("%w %q", ErrInvalidAmount, a)
		}
		f = n
	default:
		return 0, fmt.Errorf("%w %v", ErrInvalidAmount, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w %v", ErrInvalidAmount, v)
	}
	return f, nil
}

// NormalizeAll converts raw records, skipping the ones that cannot be parsed.
// The number of skipped records is returned alongside the result.
func NormalizeAll(raw []RawRecord) ([]Record, int) {
	out := make([]Record, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		rec, err := r.Normalize()
		if err != nil {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	return out, skipped
}

// DataPoint is a record annotated with its running cumulative total
type DataPoint struct {
	Timestamp       time.Time
	Amount          float64
	CumulativeTotal float64
}

// SortRecords returns a copy of records ordered ascending by CreatedAt.
// Records with equal timestamps keep their input order.
func SortRecords(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// BuildDataPoints sorts records chronologically and computes the running sum of amounts
func BuildDataPoints(records []Record) []DataPoint {
	if len(records) == 0 {
		return nil
	}
	sorted := SortRecords(records)

	amounts := make([]float64, len(sorted))
	for i, r := range sorted {
		amounts[i] = r.Amount
	}
	totals := floats.CumSum(make([]float64, len(amounts)), amounts)

	points := make([]DataPoint, len(sorted))
	for i, r := range sorted {
		points[i] = DataPoint{
			Timestamp:       r.CreatedAt,
			Amount:          r.Amount,
			CumulativeTotal: totals[i],
		}
	}
	return points
}

// CumulativeTotals extracts the running totals of a data point sequence
func CumulativeTotals(points []DataPoint) []float64 {
	totals := make([]float64, len(points))
	for i, p := range points {
		totals[i] = p.CumulativeTotal
	}
	return totals
}
