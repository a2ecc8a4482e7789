// Package export replays a scene.Document on a go-chart renderer to
// produce standalone SVG or PNG images.
package export

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ledgerviz/internal/logger"
	"ledgerviz/internal/scene"
)

// Exporter draws documents through a go-chart renderer provider
type Exporter struct {
	log *logger.Logger
}

// New creates an exporter; a nil logger falls back to the global logger
func New(log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Exporter{log: log.WithComponent("export")}
}

// SVG renders doc as an SVG image
func (e *Exporter) SVG(doc scene.Document) ([]byte, error) {
	return e.render(chart.SVG, doc)
}

// PNG renders doc as a PNG image
func (e *Exporter) PNG(doc scene.Document) ([]byte, error) {
	return e.render(chart.PNG, doc)
}

func (e *Exporter) render(provider chart.RendererProvider, doc scene.Document) ([]byte, error) {
	w, h := int(math.Round(doc.Width)), int(math.Round(doc.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("failed to export %s: invalid size %dx%d", doc.ID, w, h)
	}
	r, err := provider(w, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load default font: %w", err)
	}
	r.SetFont(font)

	if err := e.Draw(r, doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", doc.ID, err)
	}
	e.log.Debug("exported chart", map[string]interface{}{
		"chart": doc.ID,
		"bytes": buf.Len(),
	})
	return buf.Bytes(), nil
}

// Draw replays every element of doc on r. Placeholders draw their message centred.
func (e *Exporter) Draw(r chart.Renderer, doc scene.Document) error {
	if doc.IsPlaceholder() {
		r.SetFontColor(drawing.ColorWhite)
		r.SetFontSize(14)
		box := r.MeasureText(doc.Placeholder)
		r.Text(doc.Placeholder, int(doc.Width/2)-box.Width()/2, int(doc.Height/2))
		return nil
	}
	for _, el := range doc.Elements {
		e.drawElement(r, doc, el)
	}
	return nil
}

func (e *Exporter) drawElement(r chart.Renderer, doc scene.Document, el scene.Element) {
	r.ResetStyle()
	switch el.Kind {
	case scene.KindGroup:
		for _, c := range el.Children {
			e.drawElement(r, doc, c)
		}
	case scene.KindLine:
		e.applyStroke(r, el.Style)
		r.MoveTo(px(el.X1), px(el.Y1))
		r.LineTo(px(el.X2), px(el.Y2))
		r.Stroke()
		if el.Style.LineCap == "round" && el.Style.StrokeWidth > 0 && (el.X1 != el.X2 || el.Y1 != el.Y2) {
			e.roundCaps(r, el)
		}
	case scene.KindPath:
		e.drawPath(r, doc, el)
	case scene.KindCircle:
		hasFill := e.applyFill(r, doc, el.Style)
		hasStroke := e.applyStroke(r, el.Style)
		r.Circle(el.R, px(el.X1), px(el.Y1))
		paint(r, hasFill, hasStroke)
	case scene.KindRect:
		hasFill := e.applyFill(r, doc, el.Style)
		hasStroke := e.applyStroke(r, el.Style)
		x0, y0 := px(el.X1), px(el.Y1)
		x1, y1 := px(el.X1+el.X2), px(el.Y1+el.Y2)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y0)
		r.LineTo(x1, y1)
		r.LineTo(x0, y1)
		r.Close()
		paint(r, hasFill, hasStroke)
	case scene.KindText:
		e.drawText(r, el)
	}
}

func (e *Exporter) drawPath(r chart.Renderer, doc scene.Document, el scene.Element) {
	cmds := el.Path.Commands()
	if len(cmds) == 0 {
		return
	}
	hasFill := e.applyFill(r, doc, el.Style)
	hasStroke := e.applyStroke(r, el.Style)
	for _, c := range cmds {
		switch c.Op {
		case 'M':
			r.MoveTo(px(c.X), px(c.Y))
		case 'L':
			r.LineTo(px(c.X), px(c.Y))
		case 'Z':
			r.Close()
		}
	}
	paint(r, hasFill, hasStroke)
}

// roundCaps draws a filled disc at each end of a thick line
func (e *Exporter) roundCaps(r chart.Renderer, el scene.Element) {
	c, err := ParseColor(el.Style.Stroke)
	if err != nil {
		return
	}
	r.ResetStyle()
	r.SetFillColor(c)
	for _, p := range [][2]float64{{el.X1, el.Y1}, {el.X2, el.Y2}} {
		r.Circle(el.Style.StrokeWidth/2, px(p[0]), px(p[1]))
		r.Fill()
	}
}

func (e *Exporter) drawText(r chart.Renderer, el scene.Element) {
	if el.Text == "" {
		return
	}
	c, err := ParseColor(el.Style.Fill)
	if err != nil {
		c = drawing.ColorWhite
	}
	r.SetFontColor(withOpacity(c, el.Style.Opacity))
	size := el.Style.FontSize
	if size <= 0 {
		size = 12
	}
	r.SetFontSize(size)

	box := r.MeasureText(el.Text)
	x := px(el.X1)
	switch el.Style.Anchor {
	case "middle":
		x -= box.Width() / 2
	case "end":
		x -= box.Width()
	}
	y := px(el.Y1)
	if el.Style.Baseline == "middle" {
		y += box.Height() / 2
	}
	r.Text(el.Text, x, y)
}

// applyFill sets the fill colour, resolving url(#id) to the gradient's first stop
func (e *Exporter) applyFill(r chart.Renderer, doc scene.Document, s scene.Style) bool {
	fill := s.Fill
	opacity := s.Opacity
	if id, ok := urlRef(fill); ok {
		g, found := doc.GradientByID(id)
		if !found || len(g.Stops) == 0 {
			e.log.Debug("unknown gradient", map[string]interface{}{"chart": doc.ID, "gradient": id})
			return false
		}
		fill = g.Stops[0].Color
		if g.Stops[0].Opacity > 0 {
			opacity = combineOpacity(opacity, g.Stops[0].Opacity)
		}
	}
	if fill == "" || fill == "none" {
		return false
	}
	c, err := ParseColor(fill)
	if err != nil {
		e.log.Debug("skipping fill", map[string]interface{}{"chart": doc.ID, "fill": fill})
		return false
	}
	r.SetFillColor(withOpacity(c, opacity))
	return true
}

func (e *Exporter) applyStroke(r chart.Renderer, s scene.Style) bool {
	if s.Stroke == "" || s.Stroke == "none" {
		return false
	}
	c, err := ParseColor(s.Stroke)
	if err != nil {
		return false
	}
	r.SetStrokeColor(withOpacity(c, s.Opacity))
	width := s.StrokeWidth
	if width <= 0 {
		width = 1
	}
	r.SetStrokeWidth(width)
	if dash := parseDashArray(s.DashArray); len(dash) > 0 {
		r.SetStrokeDashArray(dash)
	}
	return true
}

func paint(r chart.Renderer, fill, stroke bool) {
	switch {
	case fill && stroke:
		r.FillStroke()
	case fill:
		r.Fill()
	case stroke:
		r.Stroke()
	}
}

func urlRef(s string) (string, bool) {
	if !strings.HasPrefix(s, "url(#") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	return s[5 : len(s)-1], true
}

func parseDashArray(s string) []float64 {
	if s == "" {
		return nil
	}
	var out []float64
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return nil
		}
		out = append(out, v)
	}
	return out
}

func combineOpacity(a, b float64) float64 {
	if a <= 0 {
		return b
	}
	return a * b
}

func px(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
