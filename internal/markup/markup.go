// Package markup writes a scene.Document as an embeddable HTML fragment
// holding an inline SVG and the tooltip overlay.
package markup

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"ledgerviz/internal/scene"
)

// PlaceholderClass is set on the paragraph shown instead of an empty chart
const PlaceholderClass = "chart-placeholder"

// TooltipClass is set on the overlay div
const TooltipClass = "chart-tooltip"

// Render returns the HTML fragment for doc
func Render(doc scene.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes the HTML fragment for doc to w
func Write(w io.Writer, doc scene.Document) error {
	var b strings.Builder
	writeDocument(&b, doc)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", doc.ID, err)
	}
	return nil
}

func writeDocument(b *strings.Builder, doc scene.Document) {
	fmt.Fprintf(b, `<div class="chart-root" id="%s" style="position:relative">`, esc(doc.ID))

	if doc.IsPlaceholder() {
		fmt.Fprintf(b, `<p class="%s" style="color:white;">%s</p></div>`, PlaceholderClass, esc(doc.Placeholder))
		return
	}

	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s"`,
		scene.Num(doc.Width), scene.Num(doc.Height), scene.Num(doc.Width), scene.Num(doc.Height))
	if doc.FontFamily != "" {
		fmt.Fprintf(b, ` font-family="%s"`, esc(doc.FontFamily))
	}
	b.WriteString(`>`)
	if doc.Title != "" {
		fmt.Fprintf(b, `<title>%s</title>`, esc(doc.Title))
	}

	writeDefs(b, doc)
	for _, e := range doc.Elements {
		writeElement(b, e)
	}
	b.WriteString(`</svg>`)

	if doc.Tooltip != nil {
		fmt.Fprintf(b, `<div class="%s" id="%s" style="position:absolute;display:none;pointer-events:none;"></div>`,
			TooltipClass, esc(doc.Tooltip.ID))
	}
	b.WriteString(`</div>`)
}

func writeDefs(b *strings.Builder, doc scene.Document) {
	if len(doc.Gradients) == 0 && len(doc.Shadows) == 0 {
		return
	}
	b.WriteString(`<defs>`)
	for _, g := range doc.Gradients {
		fmt.Fprintf(b, `<linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s">`,
			esc(g.ID), esc(g.X1), esc(g.Y1), esc(g.X2), esc(g.Y2))
		for _, s := range g.Stops {
			fmt.Fprintf(b, `<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`,
				esc(s.Offset), esc(s.Color), scene.Num(s.Opacity))
		}
		b.WriteString(`</linearGradient>`)
	}
	for _, s := range doc.Shadows {
		fmt.Fprintf(b, `<filter id="%s" x="-20%%" y="-20%%" width="140%%" height="140%%">`, esc(s.ID))
		fmt.Fprintf(b, `<feDropShadow dx="0" dy="0" stdDeviation="%s" flood-color="%s"/>`,
			scene.Num(s.Blur/2), esc(s.Color))
		b.WriteString(`</filter>`)
	}
	b.WriteString(`</defs>`)
}

func writeElement(b *strings.Builder, e scene.Element) {
	tag := e.Kind.String()
	b.WriteString("<" + tag)
	attr(b, "id", e.ID)
	attr(b, "class", e.Class)

	switch e.Kind {
	case scene.KindLine:
		num(b, "x1", e.X1)
		num(b, "y1", e.Y1)
		num(b, "x2", e.X2)
		num(b, "y2", e.Y2)
	case scene.KindPath:
		attr(b, "d", e.Path.String())
	case scene.KindCircle:
		num(b, "cx", e.X1)
		num(b, "cy", e.Y1)
		num(b, "r", e.R)
	case scene.KindText:
		num(b, "x", e.X1)
		num(b, "y", e.Y1)
	case scene.KindRect:
		num(b, "x", e.X1)
		num(b, "y", e.Y1)
		num(b, "width", e.X2)
		num(b, "height", e.Y2)
	}

	writeStyle(b, e.Style)
	for _, d := range e.Data {
		attr(b, "data-"+d.Key, d.Value)
	}

	switch {
	case e.Kind == scene.KindText:
		b.WriteString(">" + esc(e.Text) + "</text>")
	case len(e.Children) > 0:
		b.WriteString(">")
		for _, c := range e.Children {
			writeElement(b, c)
		}
		b.WriteString("</" + tag + ">")
	case e.Kind == scene.KindGroup:
		b.WriteString("></g>")
	default:
		b.WriteString("/>")
	}
}

func writeStyle(b *strings.Builder, s scene.Style) {
	attr(b, "fill", s.Fill)
	attr(b, "stroke", s.Stroke)
	if s.StrokeWidth > 0 {
		num(b, "stroke-width", s.StrokeWidth)
	}
	attr(b, "stroke-dasharray", s.DashArray)
	attr(b, "stroke-linecap", s.LineCap)
	if s.Opacity > 0 {
		num(b, "opacity", s.Opacity)
	}
	attr(b, "filter", s.Filter)
	if s.FontSize > 0 {
		num(b, "font-size", s.FontSize)
	}
	attr(b, "font-weight", s.FontWeight)
	attr(b, "text-anchor", s.Anchor)
	attr(b, "dominant-baseline", s.Baseline)
}

// attr writes key="value", skipping empty values
func attr(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, ` %s="%s"`, key, esc(value))
}

func num(b *strings.Builder, key string, v float64) {
	fmt.Fprintf(b, ` %s="%s"`, key, scene.Num(v))
}

func esc(s string) string {
	return html.EscapeString(s)
}
