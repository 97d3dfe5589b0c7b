package output

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"github.com/JelsikJozef/DataStructures/pkg/jsonpath"
)

// DefaultMetric selects the mean duration of a sample.
const DefaultMetric = "$.duration"

// ErrNotReport is returned when a document has no benchmarks array.
var ErrNotReport = errors.New("not a complexity report")

// SampleRow is one sample read back from a saved JSON report.
type SampleRow struct {
	Size          int
	EffectiveSize int
	Value         time.Duration
	Skipped       bool
}

// Comparison is the change of one benchmark at one size between two reports.
type Comparison struct {
	Name        string
	Size        int
	Prev        time.Duration
	Curr        time.Duration
	DiffPercent float64
}

// Regressed reports whether the change exceeds threshold percent.
func (c Comparison) Regressed(threshold float64) bool {
	return threshold > 0 && c.DiffPercent > threshold
}

// LoadSamples reads the samples of every benchmark in a JSON report. metric
// is a JSONPath evaluated against each sample, such as "$.stats.p99".
func LoadSamples(data []byte, metric string) (map[string][]SampleRow, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON report")
	}
	if metric == "" {
		metric = DefaultMetric
	}

	doc := gjson.ParseBytes(data)
	benchmarks := doc.Get("benchmarks")
	if !benchmarks.IsArray() {
		return nil, ErrNotReport
	}

	out := make(map[string][]SampleRow)
	var err error
	benchmarks.ForEach(func(_, b gjson.Result) bool {
		name := b.Get("name").String()
		rows := make([]SampleRow, 0, len(b.Get("samples").Array()))

		b.Get("samples").ForEach(func(_, s gjson.Result) bool {
			row := SampleRow{
				Size:          int(s.Get("size").Int()),
				EffectiveSize: int(s.Get("effectiveSize").Int()),
				Skipped:       s.Get("skipped").Bool(),
			}
			if !row.Skipped {
				v, lookupErr := jsonpath.Lookup(s, metric)
				if lookupErr != nil {
					err = fmt.Errorf("benchmark %s size %d: %w", name, row.Size, lookupErr)
					return false
				}
				row.Value = time.Duration(v.Int())
			}
			rows = append(rows, row)
			return true
		})
		if err != nil {
			return false
		}

		out[name] = rows
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Compare pairs samples by benchmark name and size. Pairs where either side
// was skipped, or the previous value is zero, are left out. The result is
// sorted by name and keeps the size order of the current report.
func Compare(prev, curr map[string][]SampleRow) []Comparison {
	names := make([]string, 0, len(curr))
	for name := range curr {
		if _, ok := prev[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var out []Comparison
	for _, name := range names {
		before := firstBySize(prev[name])
		seen := make(map[int]bool)

		for _, row := range curr[name] {
			if row.Skipped || seen[row.Size] {
				continue
			}
			seen[row.Size] = true

			old, ok := before[row.Size]
			if !ok || old.Skipped || old.Value <= 0 {
				continue
			}
			out = append(out, Comparison{
				Name:        name,
				Size:        row.Size,
				Prev:        old.Value,
				Curr:        row.Value,
				DiffPercent: float64(row.Value-old.Value) / float64(old.Value) * 100,
			})
		}
	}
	return out
}

func firstBySize(rows []SampleRow) map[int]SampleRow {
	m := make(map[int]SampleRow, len(rows))
	for _, r := range rows {
		if _, ok := m[r.Size]; !ok {
			m[r.Size] = r
		}
	}
	return m
}
