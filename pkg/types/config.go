package types

import "time"

// SearchConfig holds settings for single-point searches.
type SearchConfig struct {
	// MaxIterations bounds the number of b values tried (default 10000).
	MaxIterations int `json:"max_iterations" yaml:"max_iterations" mapstructure:"max_iterations"`

	// MaxFactor is the largest family scaling factor (default 5).
	MaxFactor int `json:"max_factor" yaml:"max_factor" mapstructure:"max_factor"`
}

// RangeConfig holds settings for grid searches over (a, n).
type RangeConfig struct {
	// MaxIterationsPerCombo bounds each (a, n) search (default 5000).
	MaxIterationsPerCombo int `json:"max_iterations_per_combo" yaml:"max_iterations_per_combo" mapstructure:"max_iterations_per_combo"`

	// MaxFactor is the largest family scaling factor (default 3).
	MaxFactor int `json:"max_factor" yaml:"max_factor" mapstructure:"max_factor"`

	// FocusOnPrimitives selects the two-phase primitive-first mode (default true).
	FocusOnPrimitives bool `json:"focus_on_primitives" yaml:"focus_on_primitives" mapstructure:"focus_on_primitives"`

	// Workers is the number of combinations searched concurrently (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// ProgressEvery logs progress after this many combinations (default 10).
	ProgressEvery int `json:"progress_every" yaml:"progress_every" mapstructure:"progress_every"`

	// Timeout aborts a sweep after this duration; zero means no limit.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// CatalogConfig holds settings for the results catalog.
type CatalogConfig struct {
	// Dir is the directory holding the catalog database and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// Config groups all settings read from cubequad.yaml.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Range   RangeConfig   `json:"range" yaml:"range" mapstructure:"range"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}

// WithDefaults returns c with every zero numeric field taken from d.
// FocusOnPrimitives is kept as written since false is a valid choice.
func (c RangeConfig) WithDefaults(d RangeConfig) RangeConfig {
	if c.MaxIterationsPerCombo == 0 {
		c.MaxIterationsPerCombo = d.MaxIterationsPerCombo
	}
	if c.MaxFactor == 0 {
		c.MaxFactor = d.MaxFactor
	}
	if c.Workers == 0 {
		c.Workers = d.Workers
	}
	if c.ProgressEvery == 0 {
		c.ProgressEvery = d.ProgressEvery
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	return c
}
