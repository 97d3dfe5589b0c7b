package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{
			name:     "standard seconds",
			input:    "30s",
			expected: 30 * time.Second,
		},
		{
			name:     "combined duration",
			input:    "1h30m",
			expected: 90 * time.Minute,
		},
		{
			name:     "integer as seconds",
			input:    "30",
			expected: 30 * time.Second,
		},
		{
			name:     "empty string",
			input:    "",
			expected: 0,
		},
		{
			name:    "invalid format",
			input:   "abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDurationString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDurationString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseDurationString() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "simple list", input: "1,10,100", want: []int{1, 10, 100}},
		{name: "spaces and blanks", input: " 0, 5 ,,7 ", want: []int{0, 5, 7}},
		{name: "keeps order and duplicates", input: "10,1,10", want: []int{10, 1, 10}},
		{name: "empty", input: "", want: nil},
		{name: "not a number", input: "1,x", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSizes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSizes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSizes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseConfig_YAML(t *testing.T) {
	yamlConfig := `
name: nightly
description: full sweep
seed: 7
sweep:
  start: 1
  stop: 1000
  factor: 10
warmup: 0
repetitions: 3
include:
  - "hash-table-analyzer/*"
fit: true
output:
  format: json
  path: out.json
timeout: 2m
`

	config, err := ParseConfig([]byte(yamlConfig), "config.yaml")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if config.Name != "nightly" {
		t.Errorf("Name = %s, want nightly", config.Name)
	}
	if config.Seed != 7 {
		t.Errorf("Seed = %d, want 7", config.Seed)
	}
	if config.Sweep == nil || config.Sweep.Factor != 10 || config.Sweep.Stop != 1000 {
		t.Errorf("Sweep = %+v, want start 1 stop 1000 factor 10", config.Sweep)
	}
	if config.Warmup == nil || *config.Warmup != 0 {
		t.Errorf("Warmup = %v, want explicit 0", config.Warmup)
	}
	if config.Repetitions != 3 {
		t.Errorf("Repetitions = %d, want 3", config.Repetitions)
	}
	if !config.Fit {
		t.Error("Fit should be true")
	}
	if config.Output.Format != FormatJSON || config.Output.Path != "out.json" {
		t.Errorf("Output = %+v", config.Output)
	}
	if time.Duration(config.Timeout) != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", config.Timeout)
	}
}

func TestParseConfig_JSON(t *testing.T) {
	jsonConfig := `{
		"name": "quick",
		"sizes": [1, 10, 100],
		"exclude": ["matrix-analyzer/*"],
		"timeout": "30s"
	}`

	config, err := ParseConfig([]byte(jsonConfig), "config.json")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if !reflect.DeepEqual(config.Sizes, []int{1, 10, 100}) {
		t.Errorf("Sizes = %v", config.Sizes)
	}
	if len(config.Exclude) != 1 || config.Exclude[0] != "matrix-analyzer/*" {
		t.Errorf("Exclude = %v", config.Exclude)
	}
	if config.Warmup != nil {
		t.Errorf("Warmup = %v, want unset", *config.Warmup)
	}
	if config.Timeout.GetDuration(0) != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", config.Timeout)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := ParseConfig([]byte(`{"sizes": [1,`), "bad.json"); err == nil {
		t.Error("ParseConfig() should fail for malformed JSON")
	}
	if _, err := ParseConfig([]byte("timeout: forever\n"), "bad.yaml"); err == nil {
		t.Error("ParseConfig() should fail for an invalid duration")
	}
}

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		path    string
		wantErr string
	}{
		{
			name: "valid yaml",
			data: "sizes: [1, 2]\nseed: 3\n",
			path: "c.yaml",
		},
		{
			name: "valid json",
			data: `{"sweep": {"start": 1, "stop": 8, "step": 1}}`,
			path: "c.json",
		},
		{
			name: "empty yaml",
			data: "",
			path: "c.yaml",
		},
		{
			name:    "unknown field",
			data:    "sizez: [1]\n",
			path:    "c.yaml",
			wantErr: "sizez",
		},
		{
			name:    "wrong type",
			data:    `{"repetitions": "many"}`,
			path:    "c.json",
			wantErr: "/repetitions",
		},
		{
			name:    "sweep missing stop",
			data:    "sweep:\n  start: 1\n  step: 2\n",
			path:    "c.yml",
			wantErr: "stop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchema([]byte(tt.data), tt.path)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateSchema() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateSchema() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "suite.yaml")
	if err := os.WriteFile(path, []byte("name: from-file\nsizes: [1, 10]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Name != "from-file" {
		t.Errorf("Name = %s, want from-file", config.Name)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadConfig() should fail for a missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("sizes: nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil || !strings.Contains(err.Error(), "schema") {
		t.Errorf("LoadConfig() error = %v, want schema error", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	config := &SuiteConfig{}
	ApplyDefaults(config)

	if config.Name != DefaultName {
		t.Errorf("Name = %s, want %s", config.Name, DefaultName)
	}
	if config.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", config.Seed, DefaultSeed)
	}
	if config.WarmupOrDefault(-1) != DefaultWarmup {
		t.Errorf("Warmup = %d, want %d", config.WarmupOrDefault(-1), DefaultWarmup)
	}
	if config.Repetitions != DefaultRepetitions {
		t.Errorf("Repetitions = %d, want %d", config.Repetitions, DefaultRepetitions)
	}
	if config.Output.Format != FormatText {
		t.Errorf("Format = %s, want text", config.Output.Format)
	}
	if !reflect.DeepEqual(config.Sizes, DefaultSizes) {
		t.Errorf("Sizes = %v, want %v", config.Sizes, DefaultSizes)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	zero := 0
	config := &SuiteConfig{
		Warmup: &zero,
		Sweep:  &SweepConfig{Start: 1, Stop: 4, Step: 1},
	}
	ApplyDefaults(config)

	if config.WarmupOrDefault(DefaultWarmup) != 0 {
		t.Error("explicit zero warmup should be kept")
	}
	if config.Sizes != nil {
		t.Errorf("Sizes = %v, want nil when a sweep is set", config.Sizes)
	}
}

func TestResolveSizes(t *testing.T) {
	tests := []struct {
		name    string
		config  SuiteConfig
		want    []int
		wantErr bool
	}{
		{
			name:   "explicit sizes keep order",
			config: SuiteConfig{Sizes: []int{100, 1, 10}},
			want:   []int{100, 1, 10},
		},
		{
			name:   "linear sweep",
			config: SuiteConfig{Sweep: &SweepConfig{Start: 0, Stop: 10, Step: 5}},
			want:   []int{0, 5, 10},
		},
		{
			name:   "geometric sweep",
			config: SuiteConfig{Sweep: &SweepConfig{Start: 1, Stop: 1000, Factor: 10}},
			want:   []int{1, 10, 100, 1000},
		},
		{
			name:   "small factor still advances",
			config: SuiteConfig{Sweep: &SweepConfig{Start: 1, Stop: 4, Factor: 1.2}},
			want:   []int{1, 2, 3, 4},
		},
		{
			name:   "linear sweep ending at the largest int",
			config: SuiteConfig{Sweep: &SweepConfig{Start: math.MaxInt - 2, Stop: math.MaxInt, Step: 2}},
			want:   []int{math.MaxInt - 2, math.MaxInt},
		},
		{
			name:   "linear step past the largest int",
			config: SuiteConfig{Sweep: &SweepConfig{Start: math.MaxInt - 2, Stop: math.MaxInt, Step: 5}},
			want:   []int{math.MaxInt - 2},
		},
		{
			name:   "geometric sweep near the largest int",
			config: SuiteConfig{Sweep: &SweepConfig{Start: math.MaxInt/4 + 1, Stop: math.MaxInt, Factor: 2}},
			want:   []int{math.MaxInt/4 + 1, (math.MaxInt/4 + 1) * 2},
		},
		{
			name:   "geometric sweep at the largest int",
			config: SuiteConfig{Sweep: &SweepConfig{Start: math.MaxInt, Stop: math.MaxInt, Factor: 2}},
			want:   []int{math.MaxInt},
		},
		{
			name:   "geometric sweep stops below stop",
			config: SuiteConfig{Sweep: &SweepConfig{Start: 1, Stop: 50, Factor: 10}},
			want:   []int{1, 10},
		},
		{
			name:    "both sizes and sweep",
			config:  SuiteConfig{Sizes: []int{1}, Sweep: &SweepConfig{Start: 1, Stop: 2, Step: 1}},
			wantErr: true,
		},
		{
			name:    "geometric from zero",
			config:  SuiteConfig{Sweep: &SweepConfig{Start: 0, Stop: 10, Factor: 2}},
			wantErr: true,
		},
		{
			name:    "no step or factor",
			config:  SuiteConfig{Sweep: &SweepConfig{Start: 1, Stop: 10}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.ResolveSizes()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveSizes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveSizes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDuration_JSONRoundTrip(t *testing.T) {
	d := Duration(1500 * time.Millisecond)

	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"1.5s"` {
		t.Errorf("MarshalJSON() = %s, want \"1.5s\"", b)
	}

	var back Duration
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("UnmarshalJSON() = %v, want %v", back, d)
	}
}
