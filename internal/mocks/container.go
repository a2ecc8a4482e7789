package mocks

import (
	"errors"
	"sync"
	"time"

	"ledgerviz/internal/interaction"
)

// ErrReplaceFailed is returned by a Container configured to fail
var ErrReplaceFailed = errors.New("replace failed")

// Container is an in-memory chart container that records its content and tooltip calls
type Container struct {
	mu       sync.Mutex
	id       string
	width    float64
	height   float64
	content  []byte
	replaces int
	fail     bool

	TooltipShown   int
	TooltipHidden  int
	TooltipX       float64
	TooltipY       float64
	TooltipLines   []string
	TooltipVisible bool
}

// NewContainer creates a container of the given client size
func NewContainer(id string, width, height float64) *Container {
	return &Container{id: id, width: width, height: height}
}

// ID implements interaction.Container
func (c *Container) ID() string { return c.id }

// Size implements interaction.Container
func (c *Container) Size() (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Resize changes the reported client size
func (c *Container) Resize(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
}

// FailReplace makes subsequent Replace calls fail
func (c *Container) FailReplace(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = fail
}

// Replace implements interaction.Container
func (c *Container) Replace(content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return ErrReplaceFailed
	}
	c.content = append([]byte(nil), content...)
	c.replaces++
	return nil
}

// Content returns the last markup written
func (c *Container) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.content)
}

// Replaces returns how many times content was replaced
func (c *Container) Replaces() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.replaces
}

// ShowTooltip implements interaction.TooltipView
func (c *Container) ShowTooltip(x, y float64, lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TooltipShown++
	c.TooltipVisible = true
	c.TooltipX, c.TooltipY = x, y
	c.TooltipLines = append([]string(nil), lines...)
}

// HideTooltip implements interaction.TooltipView
func (c *Container) HideTooltip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TooltipHidden++
	c.TooltipVisible = false
}

// Page resolves containers by id
type Page struct {
	mu         sync.Mutex
	containers map[string]interaction.Container
}

// NewPage creates a page holding the given containers
func NewPage(containers ...interaction.Container) *Page {
	p := &Page{containers: make(map[string]interaction.Container)}
	for _, c := range containers {
		p.containers[c.ID()] = c
	}
	return p
}

// Add places a container on the page
func (p *Page) Add(c interaction.Container) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.containers[c.ID()] = c
}

// Remove takes a container off the page
func (p *Page) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.containers, id)
}

// Lookup implements interaction.Resolver
func (p *Page) Lookup(id string) (interaction.Container, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.containers[id]
	return c, ok
}

// Clock is a manual scheduler for debounced callbacks
type Clock struct {
	mu     sync.Mutex
	timers []*ManualTimer
}

// ManualTimer is a timer fired explicitly by its Clock
type ManualTimer struct {
	Delay   time.Duration
	clock   *Clock
	f       func()
	stopped bool
	fired   bool
}

// Stop implements interaction.Timer
func (t *ManualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc implements interaction.AfterFunc
func (c *Clock) AfterFunc(d time.Duration, f func()) interaction.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &ManualTimer{Delay: d, clock: c, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Scheduled returns how many timers were created
func (c *Clock) Scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Active returns how many timers are neither stopped nor fired
func (c *Clock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Fire runs every active timer and returns how many ran
func (c *Clock) Fire() int {
	c.mu.Lock()
	var due []*ManualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

// FireStopped runs a stopped timer's callback anyway, as a timer racing its Stop would
func (c *Clock) FireStopped() int {
	c.mu.Lock()
	var due []*ManualTimer
	for _, t := range c.timers {
		if t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}
