package benchmarks

import (
	"fmt"
	"math/rand/v2"

	"github.com/JelsikJozef/DataStructures/internal/analyzer"
	"github.com/JelsikJozef/DataStructures/internal/subjects"
)

const (
	// MaxDeterminantSize caps the side of matrices whose determinant is measured.
	MaxDeterminantSize = 10

	// MaxMultiplicationSize caps the side of multiplied matrices.
	MaxMultiplicationSize = 100
)

// Matrix is the matrix type measured by the matrix benchmarks.
type Matrix = subjects.Matrix[int]

// Layout creates an empty matrix of one storage layout.
type Layout func() Matrix

// Contiguous creates row-major matrices backed by one slice.
func Contiguous() Matrix { return subjects.NewContiguousMatrix[int](0, 0) }

// Nested creates matrices backed by one slice per row.
func Nested() Matrix { return subjects.NewNestedMatrix[int](0, 0) }

// growSquare resizes m to n x n and fills it with random values.
func growSquare(m Matrix, n int, rng *rand.Rand) {
	m.Resize(n, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			m.Set(r, c, rng.IntN(maxValue))
		}
	}
}

// MatrixAccess measures reading one element at a random position.
type MatrixAccess struct{}

func (MatrixAccess) GrowToSize(m Matrix, n int, rng *rand.Rand) error {
	growSquare(m, n, rng)
	return nil
}

func (MatrixAccess) ExecuteOperation(m Matrix, rng *rand.Rand) error {
	if m.Rows() == 0 || m.Cols() == 0 {
		return analyzer.ErrSkip
	}
	analyzer.Consume(m.At(rng.IntN(m.Rows()), rng.IntN(m.Cols())))
	return nil
}

// MatrixDeterminant measures computing the determinant of a square matrix
// no larger than MaxDeterminantSize.
type MatrixDeterminant struct{}

func (MatrixDeterminant) EffectiveSize(n int) int {
	return min(n, MaxDeterminantSize)
}

func (MatrixDeterminant) GrowToSize(m Matrix, n int, rng *rand.Rand) error {
	growSquare(m, n, rng)
	return nil
}

func (MatrixDeterminant) ExecuteOperation(m Matrix, _ *rand.Rand) error {
	det, err := m.Determinant()
	if err != nil {
		return err
	}
	analyzer.Consume(det)
	return nil
}

// MatrixMultiplication measures multiplying the subject by a second operand
// of the same shape and layout, owned by the benchmark. Sides are capped at
// MaxMultiplicationSize.
type MatrixMultiplication struct {
	operand Matrix
}

// NewMatrixMultiplication creates the benchmark with its second operand
// built by layout.
func NewMatrixMultiplication(layout Layout) *MatrixMultiplication {
	return &MatrixMultiplication{operand: layout()}
}

func (b *MatrixMultiplication) EffectiveSize(n int) int {
	return min(n, MaxMultiplicationSize)
}

// GrowToSize fills the subject and the operand from the same generator,
// alternating element by element.
func (b *MatrixMultiplication) GrowToSize(m Matrix, n int, rng *rand.Rand) error {
	m.Resize(n, n)
	b.operand.Resize(n, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			m.Set(r, c, rng.IntN(maxValue))
			b.operand.Set(r, c, rng.IntN(maxValue))
		}
	}
	return nil
}

func (b *MatrixMultiplication) ExecuteOperation(m Matrix, _ *rand.Rand) error {
	if m.Rows() == 0 {
		return analyzer.ErrSkip
	}
	if err := m.MultiplyBy(b.operand); err != nil {
		return fmt.Errorf("multiply: %w", err)
	}
	return nil
}
