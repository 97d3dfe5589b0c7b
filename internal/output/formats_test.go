package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	r := BuildReport(ReportOptions{Name: "nightly", Seed: 144, Sizes: []int{10, 100}}, testResults())

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Name != "nightly" || len(decoded.Benchmarks) != 3 {
		t.Errorf("decoded report mismatch: %+v", decoded)
	}
	if got := decoded.Benchmarks[0].Samples[1].EffectiveSize; got != 100 {
		t.Errorf("EffectiveSize = %d, want 100", got)
	}
	if !strings.Contains(buf.String(), `"skipped": true`) {
		t.Error("skipped samples should be marked in JSON")
	}
}

func TestWriteYAML(t *testing.T) {
	r := BuildReport(ReportOptions{Name: "nightly"}, testResults())

	var buf bytes.Buffer
	if err := WriteYAML(&buf, r); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"name: nightly", "benchmarks:", "effectiveSize:", "multiply: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_Text(t *testing.T) {
	r := BuildReport(ReportOptions{Name: "nightly"}, testResults())

	var buf bytes.Buffer
	if err := Write(&buf, r, FormatText); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("text output should not contain ANSI escapes")
	}
	if !strings.Contains(buf.String(), "hash-table/hash-table-access") {
		t.Error("text output missing benchmark name")
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, &Report{}, "xml"); err == nil {
		t.Error("Write() should reject unknown formats")
	}
}
