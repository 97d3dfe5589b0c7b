package metrics

import (
	"errors"
	"math"
	"testing"
	"time"
)

func series(sizes []int, f func(n float64) float64) []Point {
	points := make([]Point, len(sizes))
	for i, n := range sizes {
		points[i] = Point{Size: n, Duration: time.Duration(f(float64(n)))}
	}
	return points
}

func TestFit(t *testing.T) {
	sizes := []int{1, 10, 100, 1000, 10000}

	tests := []struct {
		name string
		f    func(n float64) float64
		want Class
	}{
		{
			name: "flat series",
			f:    func(n float64) float64 { return 250 },
			want: ClassConstant,
		},
		{
			name: "linear series",
			f:    func(n float64) float64 { return 3*n + 40 },
			want: ClassLinear,
		},
		{
			name: "quadratic series",
			f:    func(n float64) float64 { return n*n/10 + 5 },
			want: ClassQuadratic,
		},
		{
			name: "logarithmic series",
			f:    func(n float64) float64 { return 1000*math.Log2(math.Max(n, 1)) + 100 },
			want: ClassLog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fit(series(sizes, tt.f))
			if err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if got.Class != tt.want {
				t.Errorf("Fit() class = %v, want %v (R²=%.4f)", got.Class, tt.want, got.RSquared)
			}
			if got.RSquared < 0.99 {
				t.Errorf("Fit() R² = %.4f, want close to 1", got.RSquared)
			}
		})
	}
}

func TestFit_Cubic(t *testing.T) {
	points := series([]int{2, 4, 6, 8, 10}, func(n float64) float64 { return n*n*n*100 + 7 })

	got, err := Fit(points)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if got.Class != ClassCubic {
		t.Errorf("Fit() class = %v, want %v", got.Class, ClassCubic)
	}
	if math.Abs(got.Coefficient-100) > 1 {
		t.Errorf("Coefficient = %.3f, want ~100", got.Coefficient)
	}
}

func TestFit_NoisyFlatSeriesIsConstant(t *testing.T) {
	// Alternating noise, no trend with size.
	points := []Point{
		{Size: 1, Duration: 100},
		{Size: 10, Duration: 140},
		{Size: 100, Duration: 95},
		{Size: 1000, Duration: 150},
		{Size: 10000, Duration: 90},
	}

	got, err := Fit(points)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if got.Class != ClassConstant {
		t.Errorf("Fit() class = %v, want %v", got.Class, ClassConstant)
	}
}

func TestFit_InsufficientData(t *testing.T) {
	points := []Point{
		{Size: 10, Duration: 100},
		{Size: 10, Duration: 110},
		{Size: 20, Duration: 200},
	}

	_, err := Fit(points)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Fit() error = %v, want ErrInsufficientData", err)
	}
}

func TestFitResult_Predict(t *testing.T) {
	linear := FitResult{Class: ClassLinear, Coefficient: 2, Intercept: 10}
	if got := linear.Predict(100); got != 210 {
		t.Errorf("Predict(100) = %v, want 210ns", got)
	}

	constant := FitResult{Class: ClassConstant, Intercept: 42}
	if got := constant.Predict(1 << 20); got != 42 {
		t.Errorf("Predict() = %v, want 42ns", got)
	}
}
