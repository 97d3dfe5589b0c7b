package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JelsikJozef/DataStructures/pkg/jsonschema"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultName        = "complexity-suite"
	DefaultSeed        = 144
	DefaultWarmup      = 1
	DefaultRepetitions = 5
	DefaultFormat      = FormatText
)

// DefaultSizes is used when neither sizes nor a sweep is configured.
var DefaultSizes = []int{1, 10, 100, 1000, 10000}

//go:embed schema.json
var schemaJSON string

var suiteSchema = jsonschema.MustCompile("suite-config.schema.json", schemaJSON)

// LoadConfig loads a suite configuration from a file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// The document is checked against the embedded JSON Schema before decoding.
func LoadConfig(path string) (*SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ValidateSchema(data, path); err != nil {
		return nil, err
	}

	return ParseConfig(data, path)
}

// ParseConfig parses configuration data.
//
// The format is determined by the file extension in path, or defaults to YAML
// if the path is empty or has an unknown extension.
func ParseConfig(data []byte, path string) (*SuiteConfig, error) {
	var config SuiteConfig

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		// Try YAML by default
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config (unknown format %s): %w", ext, err)
		}
	}

	return &config, nil
}

// ValidateSchema checks the structure of raw configuration data against the
// embedded JSON Schema. YAML documents are converted to their JSON form first.
func ValidateSchema(data []byte, path string) error {
	var doc interface{}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	} else {
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
		if raw == nil {
			raw = map[string]interface{}{}
		}
		// Round-trip through encoding/json so numbers and maps take the
		// shapes the schema validator expects.
		b, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("failed to convert YAML config: %w", err)
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return fmt.Errorf("failed to convert YAML config: %w", err)
		}
	}

	if errs := suiteSchema.Validate(doc); errs != nil {
		return fmt.Errorf("config does not match schema: %w", errs)
	}
	return nil
}

// ParseDurationString parses a duration string with support for common formats.
//
// Supported formats:
//   - Standard Go duration: "30s", "2m", "1h30m", "500ms"
//   - Seconds as integer: "30" (treated as 30 seconds)
func ParseDurationString(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	if seconds, err := strconv.Atoi(s); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, fmt.Errorf("invalid duration format: %s", s)
}

// ParseSizes parses a comma-separated list of sizes such as "1,10,100".
// Blank entries are ignored.
func ParseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", field, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid size %d: must not be negative", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// ApplyDefaults fills unset fields with default values.
func ApplyDefaults(config *SuiteConfig) {
	if config.Name == "" {
		config.Name = DefaultName
	}
	if config.Seed == 0 {
		config.Seed = DefaultSeed
	}
	if config.Warmup == nil {
		w := DefaultWarmup
		config.Warmup = &w
	}
	if config.Repetitions == 0 {
		config.Repetitions = DefaultRepetitions
	}
	if config.Output.Format == "" {
		config.Output.Format = DefaultFormat
	}
	if len(config.Sizes) == 0 && config.Sweep == nil {
		config.Sizes = append([]int(nil), DefaultSizes...)
	}
}

// ResolveSizes returns the sizes to measure: the explicit list in the order
// given, or the expanded sweep in ascending order.
func (c *SuiteConfig) ResolveSizes() ([]int, error) {
	if len(c.Sizes) > 0 && c.Sweep != nil {
		return nil, fmt.Errorf("sizes and sweep are mutually exclusive")
	}
	if c.Sweep == nil {
		return append([]int(nil), c.Sizes...), nil
	}
	return c.Sweep.Expand()
}

// Expand generates the sizes described by the sweep.
func (s *SweepConfig) Expand() ([]int, error) {
	switch {
	case s.Start < 0:
		return nil, fmt.Errorf("sweep start must not be negative")
	case s.Stop < s.Start:
		return nil, fmt.Errorf("sweep stop %d is below start %d", s.Stop, s.Start)
	case s.Step > 0 && s.Factor != 0:
		return nil, fmt.Errorf("sweep step and factor are mutually exclusive")
	}

	var sizes []int
	switch {
	case s.Step > 0:
		// Stop-Step cannot overflow, n+Step can.
		for n := s.Start; ; n += s.Step {
			sizes = append(sizes, n)
			if n > s.Stop-s.Step {
				break
			}
		}
	case s.Factor > 1:
		if s.Start < 1 {
			return nil, fmt.Errorf("geometric sweep must start at 1 or more")
		}
		for n := s.Start; ; {
			sizes = append(sizes, n)
			if n >= s.Stop {
				break
			}
			next := n + 1
			if f := math.Round(float64(n) * s.Factor); f > float64(next) {
				if f > float64(s.Stop) || f >= float64(math.MaxInt) {
					break
				}
				next = int(f)
			}
			n = next
		}
	default:
		return nil, fmt.Errorf("sweep needs a positive step or a factor above 1")
	}
	return sizes, nil
}
