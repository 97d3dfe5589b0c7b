package metrics

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInsufficientData is returned by Fit when fewer than three distinct sizes
// are available.
var ErrInsufficientData = errors.New("need at least 3 distinct sizes")

// MinRSquared is the goodness of fit a growing class needs to beat O(1).
const MinRSquared = 0.5

// Class identifies an asymptotic complexity class.
type Class string

const (
	ClassConstant    Class = "O(1)"
	ClassLog         Class = "O(log n)"
	ClassLinear      Class = "O(n)"
	ClassLinearithm  Class = "O(n log n)"
	ClassQuadratic   Class = "O(n^2)"
	ClassCubic       Class = "O(n^3)"
	classUnspecified Class = ""
)

// growthClasses are the non-constant candidates, tried in order.
var growthClasses = []struct {
	class Class
	f     func(n float64) float64
}{
	{ClassLog, func(n float64) float64 { return math.Log2(math.Max(n, 1)) }},
	{ClassLinear, func(n float64) float64 { return n }},
	{ClassLinearithm, func(n float64) float64 { return n * math.Log2(math.Max(n, 1)) }},
	{ClassQuadratic, func(n float64) float64 { return n * n }},
	{ClassCubic, func(n float64) float64 { return n * n * n }},
}

// Point is one (size, duration) observation fed to Fit.
type Point struct {
	Size     int
	Duration time.Duration
}

// FitResult describes the best matching complexity class for a series.
//
// The model is t(n) = Coefficient*f(n) + Intercept, with durations expressed
// in nanoseconds.
type FitResult struct {
	Class       Class   `json:"class" yaml:"class"`
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
	Intercept   float64 `json:"intercept" yaml:"intercept"`
	RSquared    float64 `json:"rSquared" yaml:"rSquared"`
}

// Predict estimates the duration of the fitted operation at size n.
func (r FitResult) Predict(n int) time.Duration {
	x := 1.0
	for _, gc := range growthClasses {
		if gc.class == r.Class {
			x = gc.f(float64(n))
			break
		}
	}
	if r.Class == ClassConstant {
		return time.Duration(r.Intercept)
	}
	return time.Duration(r.Coefficient*x + r.Intercept)
}

// Fit performs a least-squares fit of the points against each growth class
// and returns the class with the highest R².
//
// O(1) is reported when the durations are flat, or when no growing class
// explains the variance better than MinRSquared with a non-negative slope.
func Fit(points []Point) (FitResult, error) {
	distinct := make(map[int]struct{}, len(points))
	for _, p := range points {
		distinct[p.Size] = struct{}{}
	}
	if len(distinct) < 3 {
		return FitResult{}, fmt.Errorf("%w, got %d", ErrInsufficientData, len(distinct))
	}

	ys := make([]float64, len(points))
	var meanY float64
	for i, p := range points {
		ys[i] = float64(p.Duration)
		meanY += ys[i]
	}
	meanY /= float64(len(points))

	var ssTot float64
	for _, y := range ys {
		ssTot += (y - meanY) * (y - meanY)
	}

	constant := FitResult{Class: ClassConstant, Intercept: meanY, RSquared: 1}
	if ssTot == 0 {
		return constant, nil
	}
	constant.RSquared = 0

	best := FitResult{Class: classUnspecified, RSquared: math.Inf(-1)}
	xs := make([]float64, len(points))
	for _, gc := range growthClasses {
		for i, p := range points {
			xs[i] = gc.f(float64(p.Size))
		}
		a, b, ok := leastSquares(xs, ys)
		if !ok || a < 0 {
			continue
		}

		var ssRes float64
		for i := range xs {
			res := ys[i] - (a*xs[i] + b)
			ssRes += res * res
		}
		r2 := 1 - ssRes/ssTot

		if r2 > best.RSquared {
			best = FitResult{Class: gc.class, Coefficient: a, Intercept: b, RSquared: r2}
		}
	}

	if best.Class == classUnspecified || best.RSquared < MinRSquared {
		return constant, nil
	}
	return best, nil
}

// leastSquares solves y = a*x + b. ok is false when x has no spread.
func leastSquares(xs, ys []float64) (a, b float64, ok bool) {
	n := float64(len(xs))
	var sumX, sumY, sumXX, sumXY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXX += xs[i] * xs[i]
		sumXY += xs[i] * ys[i]
	}

	det := n*sumXX - sumX*sumX
	if math.Abs(det) < 1e-12 || math.IsInf(det, 0) || math.IsNaN(det) {
		return 0, 0, false
	}

	a = (n*sumXY - sumX*sumY) / det
	b = (sumY - a*sumX) / n
	return a, b, true
}
