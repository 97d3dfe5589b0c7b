// Package config provides configuration parsing and validation for
// complexity suites.
package config

import (
	"time"
)

// Output formats understood by the report writer.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// SuiteConfig is the root configuration for a complexity run.
//
// Example YAML:
//
//	name: "nightly"
//	seed: 144
//	sweep:
//	  start: 1
//	  stop: 100000
//	  factor: 10
//	warmup: 1
//	repetitions: 5
//	exclude:
//	  - "matrix-analyzer/*-multiplication"
//	fit: true
//	output:
//	  format: json
//	  path: nightly.json
type SuiteConfig struct {
	// Name of the run (for reporting)
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Description of the run (optional)
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Seed initialises every analyzer's random generator
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Sizes lists the sizes to measure, in order. Mutually exclusive with Sweep.
	Sizes []int `json:"sizes,omitempty" yaml:"sizes,omitempty"`

	// Sweep generates the sizes to measure. Mutually exclusive with Sizes.
	Sweep *SweepConfig `json:"sweep,omitempty" yaml:"sweep,omitempty"`

	// Warmup is the number of untimed calls per size
	Warmup *int `json:"warmup,omitempty" yaml:"warmup,omitempty"`

	// Repetitions is the number of timed calls per size
	Repetitions int `json:"repetitions,omitempty" yaml:"repetitions,omitempty"`

	// Include and Exclude filter benchmarks by qualified name (path.Match patterns)
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Fit enables fitting each benchmark to a complexity class
	Fit bool `json:"fit,omitempty" yaml:"fit,omitempty"`

	// Output controls where and how the report is written
	Output OutputConfig `json:"output,omitempty" yaml:"output,omitempty"`

	// Timeout bounds the whole run. Zero means no limit.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// SweepConfig describes a generated sequence of sizes from Start to Stop
// inclusive. Step produces a linear sweep, Factor a geometric one.
type SweepConfig struct {
	Start  int     `json:"start" yaml:"start"`
	Stop   int     `json:"stop" yaml:"stop"`
	Step   int     `json:"step,omitempty" yaml:"step,omitempty"`
	Factor float64 `json:"factor,omitempty" yaml:"factor,omitempty"`
}

// OutputConfig defines report output.
type OutputConfig struct {
	// Format is one of "text", "json", "yaml"
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Path is the file to write; empty means stdout
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// WarmupOrDefault returns the configured warm-up count or def when unset.
func (c *SuiteConfig) WarmupOrDefault(def int) int {
	if c.Warmup == nil {
		return def
	}
	return *c.Warmup
}

// Duration is a time.Duration that can be unmarshaled from JSON/YAML strings.
type Duration time.Duration

// GetDuration returns the duration or a default if empty.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
