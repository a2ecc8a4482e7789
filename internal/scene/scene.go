// Package scene is a platform-independent description of a rendered chart:
// shapes, paths and text with literal style values. Adapters in
// internal/markup and internal/export turn a Document into output bytes.
package scene

import "strings"

// MarkerClass marks elements that carry tooltip metadata
const MarkerClass = "chart-marker"

// Kind identifies the primitive an Element draws
type Kind int

const (
	KindGroup Kind = iota
	KindLine
	KindPath
	KindCircle
	KindText
	KindRect
)

// String returns the SVG tag name of the kind
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindPath:
		return "path"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	case KindRect:
		return "rect"
	default:
		return "g"
	}
}

// Attr is an ordered key/value pair
type Attr struct {
	Key   string
	Value string
}

// Style holds literal presentation values; zero values are omitted on output
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	DashArray   string
	LineCap     string
	Opacity     float64
	Filter      string
	FontSize    float64
	FontWeight  string
	Anchor      string
	Baseline    string
}

// Element is one node of the scene.
// Line uses X1..Y2, Rect uses X1/Y1 as origin and X2/Y2 as size,
// Circle uses X1/Y1 as centre and R, Text uses X1/Y1 as anchor point.
type Element struct {
	Kind     Kind
	ID       string
	Class    string
	X1, Y1   float64
	X2, Y2   float64
	R        float64
	Text     string
	Path     Path
	Style    Style
	Data     []Attr
	Children []Element
}

// Line creates a straight line element
func Line(x1, y1, x2, y2 float64, style Style) Element {
	return Element{Kind: KindLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Style: style}
}

// PathElement creates an element drawing p
func PathElement(p Path, style Style) Element {
	return Element{Kind: KindPath, Path: p, Style: style}
}

// Circle creates a circle centred on (cx, cy)
func Circle(cx, cy, r float64, style Style) Element {
	return Element{Kind: KindCircle, X1: cx, Y1: cy, R: r, Style: style}
}

// Text creates a text node anchored at (x, y)
func Text(x, y float64, body string, style Style) Element {
	return Element{Kind: KindText, X1: x, Y1: y, Text: body, Style: style}
}

// Rect creates a rectangle with its top-left corner at (x, y)
func Rect(x, y, w, h float64, style Style) Element {
	return Element{Kind: KindRect, X1: x, Y1: y, X2: w, Y2: h, Style: style}
}

// Group wraps children in a group with the given class
func Group(class string, children ...Element) Element {
	return Element{Kind: KindGroup, Class: class, Children: children}
}

// Marker creates a point marker carrying tooltip metadata as data attributes
func Marker(id string, x, y, r float64, style Style, data ...Attr) Element {
	return Element{Kind: KindCircle, ID: id, Class: MarkerClass, X1: x, Y1: y, R: r, Style: style, Data: data}
}

// WithID returns a copy of e with the given id
func (e Element) WithID(id string) Element {
	e.ID = id
	return e
}

// WithClass returns a copy of e with the given class
func (e Element) WithClass(class string) Element {
	e.Class = class
	return e
}

// IsMarker reports whether e carries tooltip metadata
func (e Element) IsMarker() bool {
	for _, c := range strings.Fields(e.Class) {
		if c == MarkerClass {
			return true
		}
	}
	return false
}

// DataValue returns the metadata value stored under key
func (e Element) DataValue(key string) (string, bool) {
	for _, a := range e.Data {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Stop is one colour stop of a gradient
type Stop struct {
	Offset  string
	Color   string
	Opacity float64
}

// Gradient is a linear gradient definition referenced as url(#ID)
type Gradient struct {
	ID             string
	X1, Y1, X2, Y2 string
	Stops          []Stop
}

// Shadow is a drop-shadow filter definition referenced as url(#ID)
type Shadow struct {
	ID    string
	Blur  float64
	Color string
}

// Tooltip is the overlay scaffold the interaction layer fills in
type Tooltip struct {
	ID string
}

// Document is the complete output of one render pass
type Document struct {
	ID          string
	Title       string
	Width       float64
	Height      float64
	FontFamily  string
	Gradients   []Gradient
	Shadows     []Shadow
	Elements    []Element
	Tooltip     *Tooltip
	Placeholder string
}

// IsPlaceholder reports whether the document only carries a text message
func (d Document) IsPlaceholder() bool {
	return d.Placeholder != ""
}

// Markers returns every marker element in document order
func (d Document) Markers() []Element {
	var out []Element
	var walk func(els []Element)
	walk = func(els []Element) {
		for _, e := range els {
			if e.IsMarker() {
				out = append(out, e)
			}
			walk(e.Children)
		}
	}
	walk(d.Elements)
	return out
}

// Count returns how many elements of kind k the document holds
func (d Document) Count(k Kind) int {
	n := 0
	var walk func(els []Element)
	walk = func(els []Element) {
		for _, e := range els {
			if e.Kind == k {
				n++
			}
			walk(e.Children)
		}
	}
	walk(d.Elements)
	return n
}

// GradientByID looks up a gradient definition
func (d Document) GradientByID(id string) (Gradient, bool) {
	for _, g := range d.Gradients {
		if g.ID == id {
			return g, true
		}
	}
	return Gradient{}, false
}
