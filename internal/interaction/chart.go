package interaction

import (
	"sync"
	"time"

	"ledgerviz/internal/charts"
	"ledgerviz/internal/logger"
	"ledgerviz/internal/markup"
	"ledgerviz/internal/scene"
)

// Options configure mounted charts
type Options struct {
	// Debounce is the resize quiet period, DefaultDebounce when zero
	Debounce time.Duration
	// AfterFunc schedules debounced renders, StdAfterFunc when nil
	AfterFunc AfterFunc
	Logger    *logger.Logger
}

// Chart is one chart mounted on one container
type Chart struct {
	mu        sync.Mutex
	container Container
	gen       *charts.Generator
	src       charts.Source
	log       *logger.Logger

	doc     scene.Document
	markers map[string]scene.Element
	tooltip TooltipState

	delay    time.Duration
	after    AfterFunc
	debounce *Debouncer
	detach   func()
	// attachGen identifies the current attachment; debounced renders of older ones are dropped
	attachGen uint64
	disposed  bool
}

// NewChart binds src to container without rendering it
func NewChart(container Container, gen *charts.Generator, src charts.Source, opts Options) *Chart {
	log := opts.Logger
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Chart{
		container: container,
		gen:       gen,
		src:       src,
		log:       log.WithComponent("interaction"),
		markers:   map[string]scene.Element{},
		delay:     delay,
		after:     opts.AfterFunc,
	}
}

// ID returns the id of the container the chart is mounted on
func (c *Chart) ID() string {
	return c.container.ID()
}

// Render lays the chart out for the current container size and replaces its content.
// Failures are logged; the previous content stays in place.
func (c *Chart) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked()
}

// renderAttached is the debounced resize callback of attachment gen
func (c *Chart) renderAttached(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detach == nil || gen != c.attachGen {
		return
	}
	c.renderLocked()
}

func (c *Chart) renderLocked() {
	if c.disposed {
		return
	}

	id := c.container.ID()
	w, h := c.container.Size()
	doc, err := c.gen.Render(c.src, id, w, h)
	if err != nil {
		c.log.Warn("chart render failed", map[string]interface{}{"chart": id, "error": err.Error()})
		return
	}
	html, err := markup.Render(doc)
	if err != nil {
		c.log.Warn("chart markup failed", map[string]interface{}{"chart": id, "error": err.Error()})
		return
	}

	// bindings to the old markers go before the content they point at
	c.markers = map[string]scene.Element{}
	c.hideTooltip()

	if err := c.container.Replace(html); err != nil {
		c.log.Warn("failed to replace chart content", map[string]interface{}{"chart": id, "error": err.Error()})
		return
	}

	markers := make(map[string]scene.Element)
	if doc.Tooltip != nil {
		for _, m := range doc.Markers() {
			markers[m.ID] = m
		}
	}
	c.markers = markers
	c.doc = doc

	c.log.Debug("chart rendered", map[string]interface{}{
		"chart":   id,
		"kind":    string(c.src.Kind()),
		"width":   doc.Width,
		"height":  doc.Height,
		"markers": len(markers),
	})
}

// Update swaps the chart input and re-renders
func (c *Chart) Update(src charts.Source) {
	c.mu.Lock()
	c.src = src
	c.mu.Unlock()
	c.Render()
}

// Document returns the last rendered scene
func (c *Chart) Document() scene.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// Markers returns the number of markers bound to the tooltip
func (c *Chart) Markers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.markers)
}

// Tooltip returns the current tooltip state
func (c *Chart) Tooltip() TooltipState {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.tooltip
	t.Lines = append([]string(nil), c.tooltip.Lines...)
	return t
}

// HandlePointer updates the tooltip for a pointer event. Events on unknown targets are ignored.
func (c *Chart) HandlePointer(ev PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}

	switch ev.Kind {
	case PointerEnter:
		marker, ok := c.markers[ev.Target]
		if !ok {
			return
		}
		lines := c.gen.TooltipLines(marker)
		if len(lines) == 0 {
			return
		}
		c.tooltip = TooltipState{Visible: true, Target: ev.Target, Lines: lines}
		c.moveTooltip(ev.X, ev.Y)
	case PointerMove:
		if !c.tooltip.Visible || (ev.Target != "" && ev.Target != c.tooltip.Target) {
			return
		}
		c.moveTooltip(ev.X, ev.Y)
	case PointerLeave:
		if ev.Target != "" && ev.Target != c.tooltip.Target {
			return
		}
		c.hideTooltip()
	}
}

func (c *Chart) moveTooltip(px, py float64) {
	w, h := c.container.Size()
	c.tooltip.X, c.tooltip.Y = placeTooltip(px, py, c.tooltip.Lines, w, h)
	if v, ok := c.container.(TooltipView); ok {
		v.ShowTooltip(c.tooltip.X, c.tooltip.Y, c.tooltip.Lines)
	}
}

func (c *Chart) hideTooltip() {
	wasVisible := c.tooltip.Visible
	c.tooltip = TooltipState{}
	if !wasVisible {
		return
	}
	if v, ok := c.container.(TooltipView); ok {
		v.HideTooltip()
	}
}

// Attach re-renders the chart on debounced resize events from src,
// replacing any previous attachment
func (c *Chart) Attach(src EventSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || src == nil {
		return
	}
	c.detachLocked()
	gen := c.attachGen
	c.debounce = NewDebouncer(c.delay, func() { c.renderAttached(gen) }, c.after)
	c.detach = src.OnResize(c.debounce.Trigger)
}

// Detach stops listening for resizes and drops a pending re-render
func (c *Chart) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachLocked()
}

func (c *Chart) detachLocked() {
	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
	if c.debounce != nil {
		c.debounce.Cancel()
		c.debounce = nil
	}
	c.attachGen++
}

// Attached reports whether a resize listener is registered
func (c *Chart) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detach != nil
}

// Dispose detaches the chart and drops its state. Calling it again is a no-op.
func (c *Chart) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.detachLocked()
	c.hideTooltip()
	c.markers = nil
	c.doc = scene.Document{}
	c.disposed = true
}
