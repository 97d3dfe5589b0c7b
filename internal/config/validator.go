package config

import (
	"fmt"
	"path"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

var validFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatYAML: true,
}

// Validate validates the suite configuration.
//
// Returns nil if valid, or a *ValidationErrors containing all validation errors.
func (c *SuiteConfig) Validate() error {
	errs := &ValidationErrors{}

	if len(c.Sizes) > 0 && c.Sweep != nil {
		errs.Add("sizes", "sizes and sweep are mutually exclusive")
	}
	if len(c.Sizes) == 0 && c.Sweep == nil {
		errs.Add("sizes", "either sizes or sweep is required")
	}

	for i, n := range c.Sizes {
		if n < 0 {
			errs.Add(fmt.Sprintf("sizes[%d]", i), fmt.Sprintf("size must not be negative, got %d", n))
		}
	}

	if c.Sweep != nil {
		validateSweep(c.Sweep, errs)
	}

	if c.Warmup != nil && *c.Warmup < 0 {
		errs.Add("warmup", "warmup cannot be negative")
	}
	if c.Repetitions < 1 {
		errs.Add("repetitions", "repetitions must be at least 1")
	}

	validatePatterns("include", c.Include, errs)
	validatePatterns("exclude", c.Exclude, errs)

	if c.Output.Format != "" && !validFormats[c.Output.Format] {
		errs.Add("output.format", fmt.Sprintf("unknown format: %s (must be text, json or yaml)", c.Output.Format))
	}

	if c.Timeout < 0 {
		errs.Add("timeout", "timeout cannot be negative")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateSweep validates the sweep parameters.
func validateSweep(s *SweepConfig, errs *ValidationErrors) {
	if s.Start < 0 {
		errs.Add("sweep.start", "start cannot be negative")
	}
	if s.Stop < s.Start {
		errs.Add("sweep.stop", "stop must not be below start")
	}

	switch {
	case s.Step > 0 && s.Factor != 0:
		errs.Add("sweep", "step and factor are mutually exclusive")
	case s.Step < 0:
		errs.Add("sweep.step", "step must be positive")
	case s.Step == 0 && s.Factor == 0:
		errs.Add("sweep", "either step or factor is required")
	case s.Factor != 0 && s.Factor <= 1:
		errs.Add("sweep.factor", "factor must be greater than 1")
	case s.Factor > 1 && s.Start < 1:
		errs.Add("sweep.start", "geometric sweep must start at 1 or more")
	}
}

// validatePatterns checks that every filter pattern is well formed.
func validatePatterns(field string, patterns []string, errs *ValidationErrors) {
	for i, p := range patterns {
		if p == "" {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), "pattern cannot be empty")
			continue
		}
		if _, err := path.Match(p, ""); err != nil {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("invalid pattern %q: %v", p, err))
		}
	}
}
