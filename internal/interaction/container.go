// Package interaction keeps mounted charts in sync with their containers:
// re-rendering on debounced resizes and driving the hover tooltip.
package interaction

import (
	"sync"

	"github.com/google/uuid"
)

// Container is the host element a chart renders into
type Container interface {
	ID() string
	// Size returns the measured client size, zero when unknown
	Size() (width, height float64)
	// Replace swaps the container content for the given markup
	Replace(content []byte) error
}

// TooltipView is implemented by containers that can show the tooltip overlay
type TooltipView interface {
	ShowTooltip(x, y float64, lines []string)
	HideTooltip()
}

// Resolver finds containers by id
type Resolver interface {
	Lookup(id string) (Container, bool)
}

// EventSource delivers viewport resize notifications
type EventSource interface {
	// OnResize registers fn and returns the function that removes it
	OnResize(fn func()) (remove func())
}

// ResizeHub is an in-process EventSource that fans a resize out to every listener
type ResizeHub struct {
	mu        sync.Mutex
	order     []uuid.UUID
	listeners map[uuid.UUID]func()
}

// NewResizeHub creates an empty hub
func NewResizeHub() *ResizeHub {
	return &ResizeHub{listeners: make(map[uuid.UUID]func())}
}

// OnResize implements EventSource
func (h *ResizeHub) OnResize(fn func()) func() {
	id := uuid.New()
	h.mu.Lock()
	h.listeners[id] = fn
	h.order = append(h.order, id)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *ResizeHub) remove(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.listeners, id)
	for i, v := range h.order {
		if v == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Resize notifies every listener in registration order
func (h *ResizeHub) Resize() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.order))
	for _, id := range h.order {
		fns = append(fns, h.listeners[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of registered listeners
func (h *ResizeHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}
