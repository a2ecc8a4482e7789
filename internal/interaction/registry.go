package interaction

import (
	"sort"
	"sync"

	"ledgerviz/internal/charts"
	"ledgerviz/internal/logger"
)

// Registry tracks the chart mounted on each container, keyed by container id
type Registry struct {
	mu       sync.Mutex
	gen      *charts.Generator
	resolver Resolver
	events   EventSource
	opts     Options
	log      *logger.Logger
	charts   map[string]*Chart
}

// NewRegistry creates a registry. A nil events source mounts charts without resize handling.
func NewRegistry(gen *charts.Generator, resolver Resolver, events EventSource, opts Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Registry{
		gen:      gen,
		resolver: resolver,
		events:   events,
		opts:     opts,
		log:      log.WithComponent("interaction"),
		charts:   make(map[string]*Chart),
	}
}

// Mount renders src into the container with the given id, disposing whatever chart
// was mounted there before. A missing container is logged and reported as false.
func (r *Registry) Mount(id string, src charts.Source) (*Chart, bool) {
	container, ok := r.resolver.Lookup(id)
	if !ok || container == nil {
		r.log.Warn("chart container not found", map[string]interface{}{
			"chart": id,
			"error": charts.ErrMissingContainer.Error(),
		})
		return nil, false
	}

	r.mu.Lock()
	prev := r.charts[id]
	c := NewChart(container, r.gen, src, r.opts)
	r.charts[id] = c
	r.mu.Unlock()

	if prev != nil {
		prev.Dispose()
	}
	c.Render()
	if r.events != nil {
		c.Attach(r.events)
	}
	return c, true
}

// Unmount disposes the chart on the container with the given id
func (r *Registry) Unmount(id string) bool {
	r.mu.Lock()
	c, ok := r.charts[id]
	delete(r.charts, id)
	r.mu.Unlock()
	if ok {
		c.Dispose()
	}
	return ok
}

// Get returns the chart mounted on the container with the given id
func (r *Registry) Get(id string) (*Chart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.charts[id]
	return c, ok
}

// IDs returns the ids of every mounted chart in sorted order
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.charts))
	for id := range r.charts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close disposes every mounted chart
func (r *Registry) Close() {
	r.mu.Lock()
	mounted := r.charts
	r.charts = make(map[string]*Chart)
	r.mu.Unlock()

	for _, c := range mounted {
		c.Dispose()
	}
}
