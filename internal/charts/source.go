package charts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"ledgerviz/internal/layout"
	"ledgerviz/internal/models"
	"ledgerviz/internal/scene"
)

// Source is the captured input of one chart, re-rendered on every resize
type Source interface {
	Kind() Kind
	Render(g *Generator, id string, geo layout.Geometry) (scene.Document, error)
}

// TimeSeriesSource plots the running total of records over time
type TimeSeriesSource struct {
	Records []models.Record
}

// Kind implements Source
func (TimeSeriesSource) Kind() Kind { return KindTimeSeries }

// Render implements Source
func (s TimeSeriesSource) Render(g *Generator, id string, geo layout.Geometry) (scene.Document, error) {
	return g.RenderTimeSeries(id, s.Records, geo)
}

// TimeSeriesFromRaw normalises loosely typed records, dropping the ones that cannot be read
func (g *Generator) TimeSeriesFromRaw(raw []models.RawRecord) TimeSeriesSource {
	records, skipped := models.NormalizeAll(raw)
	if skipped > 0 {
		g.log.Warn("skipped unreadable records", map[string]interface{}{
			"skipped": skipped,
			"total":   len(raw),
		})
	}
	return TimeSeriesSource{Records: records}
}

// DualBarSource compares two totals; values are coerced at render time
type DualBarSource struct {
	Received interface{}
	Done     interface{}
}

// Kind implements Source
func (DualBarSource) Kind() Kind { return KindDualBar }

// Render implements Source
func (s DualBarSource) Render(g *Generator, id string, geo layout.Geometry) (scene.Document, error) {
	return g.RenderDualBar(id, s.Received, s.Done, geo)
}

// RadialSource plots per-category amounts. Categories wins over Records when set.
type RadialSource struct {
	Records    []models.Record
	Categories models.CategoryVector
}

// Kind implements Source
func (RadialSource) Kind() Kind { return KindRadial }

// Render implements Source
func (s RadialSource) Render(g *Generator, id string, geo layout.Geometry) (scene.Document, error) {
	categories := s.Categories
	if categories == nil {
		categories = models.CategoriesFromRecords(s.Records, g.opts.CategoryPrefix)
	}
	return g.RenderRadial(id, categories, geo)
}

// Geometry computes the layout of a chart kind for a container size
func (g *Generator) Geometry(kind Kind, containerWidth, containerHeight float64) layout.Geometry {
	return g.opts.RulesFor(kind).Compute(containerWidth, containerHeight)
}

// Render lays out and renders src for a container of the given size
func (g *Generator) Render(src Source, id string, containerWidth, containerHeight float64) (scene.Document, error) {
	if src == nil {
		return scene.Document{}, fmt.Errorf("failed to render %s: %w", id, ErrEmptyInput)
	}
	doc, err := src.Render(g, id, g.Geometry(src.Kind(), containerWidth, containerHeight))
	if err != nil {
		return scene.Document{}, fmt.Errorf("failed to render %s chart %s: %w", src.Kind(), id, err)
	}
	return doc, nil
}

// TooltipLines returns the text shown for a marker, or nil when it carries no tooltip data
func (g *Generator) TooltipLines(marker scene.Element) []string {
	if date, ok := marker.DataValue(DataDate); ok {
		return g.pointTooltip(date, marker)
	}
	if label, ok := marker.DataValue(DataLabel); ok {
		value, _ := marker.DataValue(DataValue)
		return []string{label, "Value: " + humanizeNumber(value)}
	}
	return nil
}

func (g *Generator) pointTooltip(date string, marker scene.Element) []string {
	lines := make([]string, 0, 3)
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		lines = append(lines, t.Format(g.opts.DateFormat))
	} else {
		lines = append(lines, date)
	}
	if amount, ok := marker.DataValue(DataAmount); ok {
		sign := "+"
		if strings.HasPrefix(amount, "-") {
			sign = ""
		}
		lines = append(lines, "Amount: "+sign+humanizeNumber(amount))
	}
	if total, ok := marker.DataValue(DataTotal); ok {
		lines = append(lines, "Total: "+humanizeNumber(total))
	}
	return lines
}

// humanizeNumber adds thousands separators, passing unparseable text through
func humanizeNumber(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return humanize.Commaf(f)
}
