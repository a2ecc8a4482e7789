package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"ledgerviz/internal/charts"
	"ledgerviz/internal/interaction"
	"ledgerviz/internal/layout"
	"ledgerviz/internal/logger"
)

// ErrInvalidConfig is returned when a loaded value is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the chart engine
type Config struct {
	// Interaction
	Debounce time.Duration `env:"CHART_DEBOUNCE,default=150ms"`
	Tooltips bool          `env:"CHART_TOOLTIPS,default=true"`

	// Rendering
	TickCount int `env:"CHART_TICK_COUNT,default=5"`
	// LabelCount of 0 follows the layout breakpoints
	LabelCount       int    `env:"CHART_LABEL_COUNT,default=0"`
	ResponsiveHeight bool   `env:"CHART_RESPONSIVE_HEIGHT,default=false"`
	DateFormat       string `env:"CHART_DATE_FORMAT,default=2006-01-02"`
	CategoryPrefix   string `env:"CHART_CATEGORY_PREFIX,default=skill_"`
	RadialLevels     int    `env:"CHART_RADIAL_LEVELS,default=5"`

	// RulesFile is an optional TOML file overriding layout rules per chart kind
	RulesFile string `env:"CHART_RULES_FILE"`

	// Service configuration
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`

	// Rules holds the overrides read from RulesFile
	Rules map[charts.Kind]layout.Rules
}

// Load loads configuration from environment variables.
// The given .env files are read first; variables already set in the environment win.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.RulesFile != "" {
		rules, err := LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		cfg.Rules = rules
	}
	return &cfg, nil
}

// Validate checks value ranges that envconfig cannot express
func (c *Config) Validate() error {
	switch {
	case c.Debounce < 0:
		return fmt.Errorf("%w: CHART_DEBOUNCE must not be negative", ErrInvalidConfig)
	case c.TickCount <= 0:
		return fmt.Errorf("%w: CHART_TICK_COUNT must be positive", ErrInvalidConfig)
	case c.LabelCount < 0:
		return fmt.Errorf("%w: CHART_LABEL_COUNT must not be negative", ErrInvalidConfig)
	case c.RadialLevels <= 0:
		return fmt.Errorf("%w: CHART_RADIAL_LEVELS must be positive", ErrInvalidConfig)
	case c.DateFormat == "":
		return fmt.Errorf("%w: CHART_DATE_FORMAT must not be empty", ErrInvalidConfig)
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: unknown LOG_LEVEL %q", ErrInvalidConfig, c.LogLevel)
	}
	if _, ok := logger.ParseFormat(c.LogFormat); !ok {
		return fmt.Errorf("%w: unknown LOG_FORMAT %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// ConfigureLogging applies the log settings to the global logger
func (c *Config) ConfigureLogging() {
	logger.Configure(c.LogLevel, c.LogFormat)
}

// Options maps the configuration onto renderer options
func (c *Config) Options() charts.Options {
	opts := charts.DefaultOptions()
	opts.TickCount = c.TickCount
	opts.LabelCount = c.LabelCount
	opts.Tooltips = c.Tooltips
	opts.ResponsiveHeight = c.ResponsiveHeight
	opts.DateFormat = c.DateFormat
	opts.CategoryPrefix = c.CategoryPrefix
	opts.RadialLevels = c.RadialLevels
	if len(c.Rules) > 0 {
		opts.Rules = make(map[charts.Kind]layout.Rules, len(c.Rules))
		for k, r := range c.Rules {
			opts.Rules[k] = r
		}
	}
	return opts
}

// InteractionOptions maps the configuration onto mounted chart options
func (c *Config) InteractionOptions(log *logger.Logger) interaction.Options {
	return interaction.Options{
		Debounce: c.Debounce,
		Logger:   log,
	}
}
