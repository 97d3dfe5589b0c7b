package subjects

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

var (
	// ErrNotSquare is returned by Determinant for a non-square matrix.
	ErrNotSquare = errors.New("matrix is not square")

	// ErrDimensionMismatch is returned by MultiplyBy when the operands'
	// inner dimensions differ.
	ErrDimensionMismatch = errors.New("matrix dimension mismatch")
)

// Number is the element type of a matrix.
type Number interface {
	constraints.Integer | constraints.Float
}

// Matrix is a dense two-dimensional array of numbers. Indexing outside
// [0, Rows()) x [0, Cols()) panics.
type Matrix[T Number] interface {
	At(r, c int) T
	Set(r, c int, v T)
	Rows() int
	Cols() int

	// Resize changes the shape to rows x cols. Existing elements are
	// discarded and every element becomes zero.
	Resize(rows, cols int)

	Determinant() (float64, error)

	// MultiplyBy replaces the receiver with the product receiver x other.
	MultiplyBy(other Matrix[T]) error

	Clear()

	// Size returns the number of rows.
	Size() int
}

// ContiguousMatrix stores its elements row-major in one slice.
type ContiguousMatrix[T Number] struct {
	data       []T
	rows, cols int
}

var _ Matrix[int] = (*ContiguousMatrix[int])(nil)

// NewContiguousMatrix creates a zeroed rows x cols matrix.
func NewContiguousMatrix[T Number](rows, cols int) *ContiguousMatrix[T] {
	m := &ContiguousMatrix[T]{}
	m.Resize(rows, cols)
	return m
}

func (m *ContiguousMatrix[T]) At(r, c int) T {
	m.check(r, c)
	return m.data[r*m.cols+c]
}

func (m *ContiguousMatrix[T]) Set(r, c int, v T) {
	m.check(r, c)
	m.data[r*m.cols+c] = v
}

func (m *ContiguousMatrix[T]) Rows() int { return m.rows }
func (m *ContiguousMatrix[T]) Cols() int { return m.cols }
func (m *ContiguousMatrix[T]) Size() int { return m.rows }

func (m *ContiguousMatrix[T]) Resize(rows, cols int) {
	checkShape(rows, cols)
	m.rows, m.cols = rows, cols
	m.data = make([]T, rows*cols)
}

func (m *ContiguousMatrix[T]) Clear() {
	m.Resize(0, 0)
}

func (m *ContiguousMatrix[T]) Determinant() (float64, error) {
	return determinant[T](m)
}

func (m *ContiguousMatrix[T]) MultiplyBy(other Matrix[T]) error {
	product, err := multiply[T](m, other)
	if err != nil {
		return err
	}
	m.rows, m.cols = len(product), other.Cols()
	m.data = m.data[:0]
	for _, row := range product {
		m.data = append(m.data, row...)
	}
	return nil
}

func (m *ContiguousMatrix[T]) check(r, c int) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("subjects: index (%d, %d) out of range for %dx%d matrix", r, c, m.rows, m.cols))
	}
}

// NestedMatrix stores each row in its own slice.
type NestedMatrix[T Number] struct {
	data [][]T
	cols int
}

var _ Matrix[int] = (*NestedMatrix[int])(nil)

// NewNestedMatrix creates a zeroed rows x cols matrix.
func NewNestedMatrix[T Number](rows, cols int) *NestedMatrix[T] {
	m := &NestedMatrix[T]{}
	m.Resize(rows, cols)
	return m
}

func (m *NestedMatrix[T]) At(r, c int) T {
	m.check(r, c)
	return m.data[r][c]
}

func (m *NestedMatrix[T]) Set(r, c int, v T) {
	m.check(r, c)
	m.data[r][c] = v
}

func (m *NestedMatrix[T]) Rows() int { return len(m.data) }
func (m *NestedMatrix[T]) Cols() int { return m.cols }
func (m *NestedMatrix[T]) Size() int { return len(m.data) }

func (m *NestedMatrix[T]) Resize(rows, cols int) {
	checkShape(rows, cols)
	m.cols = cols
	m.data = make([][]T, rows)
	for i := range m.data {
		m.data[i] = make([]T, cols)
	}
}

func (m *NestedMatrix[T]) Clear() {
	m.Resize(0, 0)
}

func (m *NestedMatrix[T]) Determinant() (float64, error) {
	return determinant[T](m)
}

func (m *NestedMatrix[T]) MultiplyBy(other Matrix[T]) error {
	product, err := multiply[T](m, other)
	if err != nil {
		return err
	}
	m.data, m.cols = product, other.Cols()
	return nil
}

func (m *NestedMatrix[T]) check(r, c int) {
	if r < 0 || r >= len(m.data) || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("subjects: index (%d, %d) out of range for %dx%d matrix", r, c, len(m.data), m.cols))
	}
}

func checkShape(rows, cols int) {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("subjects: negative matrix shape %dx%d", rows, cols))
	}
}

// determinant computes det(m) by Gaussian elimination with partial pivoting
// on a float64 copy.
func determinant[T Number](m Matrix[T]) (float64, error) {
	n := m.Rows()
	if n != m.Cols() {
		return 0, fmt.Errorf("%w: %dx%d", ErrNotSquare, n, m.Cols())
	}

	a := make([][]float64, n)
	for r := range a {
		a[r] = make([]float64, n)
		for c := range a[r] {
			a[r][c] = float64(m.At(r, c))
		}
	}

	det := 1.0
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return 0, nil
		}
		if pivot != col {
			a[pivot], a[col] = a[col], a[pivot]
			det = -det
		}

		det *= a[col][col]
		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}
	return det, nil
}

// multiply returns the rows of a x b.
func multiply[T Number](a, b Matrix[T]) ([][]T, error) {
	if a.Cols() != b.Rows() {
		return nil, fmt.Errorf("%w: cannot multiply %dx%d by %dx%d",
			ErrDimensionMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}

	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	out := make([][]T, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]T, cols)
		for k := 0; k < inner; k++ {
			v := a.At(r, k)
			for c := 0; c < cols; c++ {
				out[r][c] += v * b.At(k, c)
			}
		}
	}
	return out, nil
}
