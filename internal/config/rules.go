package config

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"ledgerviz/internal/charts"
	"ledgerviz/internal/layout"
)

// defaultRules returns the built-in rules a file section is layered onto
func defaultRules(kind charts.Kind) (layout.Rules, bool) {
	switch kind {
	case charts.KindTimeSeries:
		return layout.TimeSeriesRules(), true
	case charts.KindDualBar:
		return layout.DualBarRules(), true
	case charts.KindRadial:
		return layout.RadialRules(), true
	}
	return layout.Rules{}, false
}

// LoadRules reads layout overrides from a TOML file with one table per chart kind:
//
//	[timeseries]
//	height = 300
//	[timeseries.margins]
//	left = 60
//
// Keys left out keep their built-in values.
func LoadRules(path string) (map[charts.Kind]layout.Rules, error) {
	var sections map[string]toml.Primitive
	md, err := toml.DecodeFile(path, &sections)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	return decodeRules(md, sections)
}

// ParseRules is LoadRules over an in-memory document
func ParseRules(data string) (map[charts.Kind]layout.Rules, error) {
	var sections map[string]toml.Primitive
	md, err := toml.Decode(data, &sections)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return decodeRules(md, sections)
}

func decodeRules(md toml.MetaData, sections map[string]toml.Primitive) (map[charts.Kind]layout.Rules, error) {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[charts.Kind]layout.Rules, len(sections))
	for _, name := range names {
		kind := charts.Kind(name)
		rules, ok := defaultRules(kind)
		if !ok {
			return nil, fmt.Errorf("%w: unknown chart kind %q in rules", ErrInvalidConfig, name)
		}
		if err := md.PrimitiveDecode(sections[name], &rules); err != nil {
			return nil, fmt.Errorf("failed to decode %s rules: %w", name, err)
		}
		if err := rules.Validate(); err != nil {
			return nil, fmt.Errorf("failed to validate %s rules: %w", name, err)
		}
		out[kind] = rules
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown rules key %s", ErrInvalidConfig, undecoded[0])
	}
	return out, nil
}
