package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type benchCase struct {
	Name           string
	Width          int
	Layers         int
	NSources       int
	StaticFraction float64
	ReadFraction   float64
	Iterations     int
}

// fileCase uses pointers for the fractions so an explicit 0.0 is
// distinguishable from an omitted key.
type fileCase struct {
	Name           string   `toml:"name"`
	Width          int      `toml:"width"`
	Layers         int      `toml:"layers"`
	NSources       int      `toml:"n_sources"`
	StaticFraction *float64 `toml:"static_fraction"`
	ReadFraction   *float64 `toml:"read_fraction"`
	Iterations     int      `toml:"iterations"`
}

type fileConfig struct {
	Cases []fileCase `toml:"case"`
}

func loadCases(path string) ([]benchCase, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load benchmark config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if len(raw.Cases) == 0 {
		return nil, fmt.Errorf("config %s defines no cases", path)
	}

	cases := make([]benchCase, 0, len(raw.Cases))
	for i, rc := range raw.Cases {
		c := benchCase{
			Name:           strings.TrimSpace(rc.Name),
			Width:          rc.Width,
			Layers:         rc.Layers,
			NSources:       rc.NSources,
			StaticFraction: 1,
			ReadFraction:   1,
			Iterations:     rc.Iterations,
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("case %d", i+1)
		}
		if rc.StaticFraction != nil {
			c.StaticFraction = *rc.StaticFraction
		}
		if rc.ReadFraction != nil {
			c.ReadFraction = *rc.ReadFraction
		}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (c benchCase) validate() error {
	switch {
	case c.Width < 1:
		return fmt.Errorf("width must be at least 1, got %d", c.Width)
	case c.Layers < 1:
		return fmt.Errorf("layers must be at least 1, got %d", c.Layers)
	case c.NSources < 1:
		return fmt.Errorf("n_sources must be at least 1, got %d", c.NSources)
	case c.NSources > c.Width:
		return fmt.Errorf("n_sources %d exceeds width %d", c.NSources, c.Width)
	case c.StaticFraction < 0 || c.StaticFraction > 1:
		return fmt.Errorf("static_fraction must be within [0, 1], got %v", c.StaticFraction)
	case c.ReadFraction < 0 || c.ReadFraction > 1:
		return fmt.Errorf("read_fraction must be within [0, 1], got %v", c.ReadFraction)
	case c.Iterations < 1:
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	return nil
}

func defaultCases() []benchCase {
	return []benchCase{
		{
			Name:           "simple component",
			Width:          10,
			Layers:         5,
			NSources:       2,
			StaticFraction: 1,
			ReadFraction:   0.2,
			Iterations:     60000,
		},
		{
			Name:           "dynamic component",
			Width:          10,
			Layers:         10,
			NSources:       6,
			StaticFraction: 0.75,
			ReadFraction:   0.2,
			Iterations:     15000,
		},
		{
			Name:           "large web app",
			Width:          1000,
			Layers:         12,
			NSources:       4,
			StaticFraction: 0.95,
			ReadFraction:   1,
			Iterations:     7000,
		},
		{
			Name:           "wide dense",
			Width:          1000,
			Layers:         5,
			NSources:       25,
			StaticFraction: 1,
			ReadFraction:   1,
			Iterations:     3000,
		},
		{
			Name:           "deep",
			Width:          5,
			Layers:         500,
			NSources:       3,
			StaticFraction: 1,
			ReadFraction:   1,
			Iterations:     500,
		},
		{
			Name:           "very dynamic",
			Width:          100,
			Layers:         15,
			NSources:       6,
			StaticFraction: 0.5,
			ReadFraction:   1,
			Iterations:     2000,
		},
	}
}
