package charts

import (
	"errors"

	"ledgerviz/internal/logger"
)

var (
	// ErrEmptyInput is reported when a chart has nothing to plot
	ErrEmptyInput = errors.New("no data to render")
	// ErrMissingContainer is reported when the target container cannot be resolved
	ErrMissingContainer = errors.New("container not found")
	// ErrInvalidGeometry is reported when the computed plot area is empty
	ErrInvalidGeometry = errors.New("invalid chart geometry")
)

// Generator renders chart scenes from typed records
type Generator struct {
	opts Options
	log  *logger.Logger
}

// NewGenerator creates a new chart generator.
// A nil logger falls back to the global logger.
func NewGenerator(opts Options, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Generator{
		opts: opts.withDefaults(),
		log:  log.WithComponent("charts"),
	}
}

// Options returns the effective options of the generator
func (g *Generator) Options() Options {
	return g.opts
}
