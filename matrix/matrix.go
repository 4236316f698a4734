// Package matrix implements a generic dense matrix and the n-diagonal
// Gaussian elimination solver used throughout the thermal marching core.
// The element type is generic over Number; this package provides a scalar
// element type (Scalar) and an RGB-triple one (Spectrum), distinct at the
// type level. Every matrix built elsewhere in this repository, including
// the daylight-coefficient matrices in package optical, is a
// Matrix[Scalar].
package matrix

import (
	"fmt"

	"github.com/spatialmodel/buildingsim/simerr"
)

// Number is the constraint a Matrix element type must satisfy: addition,
// subtraction, multiplication and division by another element, scaling by
// a float64, and a SmallerThan tolerance test. The zero element is not part
// of the constraint; callers pass it to New and NewFromData.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Scale(float64) T
	// Div divides the receiver by other, channel-wise for multi-channel
	// element types. Used by the pivoting step of the n-diagonal solver and
	// by SolveGaussSeidel; in both, other is a diagonal element of the same
	// matrix.
	Div(T) T
	// SmallerThan reports whether every channel of the receiver's absolute
	// value is smaller than tol. Used for pivot rejection.
	SmallerThan(tol float64) bool
}

// Matrix is an nrows x ncols dense, row-major matrix over element type T.
type Matrix[T Number[T]] struct {
	nrows, ncols int
	data         []T
	zero         T
}

// New returns an nrows x ncols matrix filled with zero.
func New[T Number[T]](nrows, ncols int, zero T) *Matrix[T] {
	return &Matrix[T]{
		nrows: nrows,
		ncols: ncols,
		data:  make([]T, nrows*ncols),
		zero:  zero,
	}
}

// NewFromData wraps an existing row-major slice as a matrix; len(data) must
// equal nrows*ncols.
func NewFromData[T Number[T]](nrows, ncols int, data []T, zero T) *Matrix[T] {
	if len(data) != nrows*ncols {
		panic(fmt.Sprintf("matrix: data has %d elements, want %d", len(data), nrows*ncols))
	}
	return &Matrix[T]{nrows: nrows, ncols: ncols, data: data, zero: zero}
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.nrows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.ncols }

func (m *Matrix[T]) index(row, col int) int {
	return row*m.ncols + col
}

// At returns the element at (row, col).
func (m *Matrix[T]) At(row, col int) T {
	return m.data[m.index(row, col)]
}

// Set writes v at (row, col).
func (m *Matrix[T]) Set(row, col int, v T) {
	m.data[m.index(row, col)] = v
}

// AddToElement adds v to the element at (row, col).
func (m *Matrix[T]) AddToElement(row, col int, v T) {
	i := m.index(row, col)
	m.data[i] = m.data[i].Add(v)
}

// ScaleElement scales the element at (row, col) by f.
func (m *Matrix[T]) ScaleElement(row, col int, f float64) {
	i := m.index(row, col)
	m.data[i] = m.data[i].Scale(f)
}

// Data returns the underlying row-major element slice, for callers (e.g.
// JSON persistence in package optical) that need to serialize a matrix's
// contents without going through per-element At calls. Mutating the
// returned slice mutates m.
func (m *Matrix[T]) Data() []T { return m.data }

// Clone returns a deep copy.
func (m *Matrix[T]) Clone() *Matrix[T] {
	out := make([]T, len(m.data))
	copy(out, m.data)
	return &Matrix[T]{nrows: m.nrows, ncols: m.ncols, data: out, zero: m.zero}
}

// sameShape reports whether m and other have identical dimensions.
func (m *Matrix[T]) sameShape(other *Matrix[T]) bool {
	return m.nrows == other.nrows && m.ncols == other.ncols
}

// Add returns a new matrix equal to m + other (elementwise).
func (m *Matrix[T]) Add(other *Matrix[T]) (*Matrix[T], error) {
	if !m.sameShape(other) {
		return nil, fmt.Errorf("matrix: Add: %w: %dx%d vs %dx%d", simerr.ErrDimensionMismatch, m.nrows, m.ncols, other.nrows, other.ncols)
	}
	out := m.Clone()
	out.AddInPlace(other)
	return out, nil
}

// AddInPlace adds other into m elementwise, in place.
func (m *Matrix[T]) AddInPlace(other *Matrix[T]) error {
	if !m.sameShape(other) {
		return fmt.Errorf("matrix: AddInPlace: %w: %dx%d vs %dx%d", simerr.ErrDimensionMismatch, m.nrows, m.ncols, other.nrows, other.ncols)
	}
	for i := range m.data {
		m.data[i] = m.data[i].Add(other.data[i])
	}
	return nil
}

// Sub returns a new matrix equal to m - other (elementwise).
func (m *Matrix[T]) Sub(other *Matrix[T]) (*Matrix[T], error) {
	if !m.sameShape(other) {
		return nil, fmt.Errorf("matrix: Sub: %w: %dx%d vs %dx%d", simerr.ErrDimensionMismatch, m.nrows, m.ncols, other.nrows, other.ncols)
	}
	out := m.Clone()
	for i := range out.data {
		out.data[i] = out.data[i].Sub(other.data[i])
	}
	return out, nil
}

// ScaleNew returns a new matrix equal to m scaled by f.
func (m *Matrix[T]) ScaleNew(f float64) *Matrix[T] {
	out := m.Clone()
	out.ScaleInPlace(f)
	return out
}

// ScaleInPlace scales every element of m by f, in place.
func (m *Matrix[T]) ScaleInPlace(f float64) {
	for i := range m.data {
		m.data[i] = m.data[i].Scale(f)
	}
}

// ConcatRows returns a new matrix with other's rows appended below m's.
// Both matrices must have the same column count.
func (m *Matrix[T]) ConcatRows(other *Matrix[T]) (*Matrix[T], error) {
	if m.ncols != other.ncols {
		return nil, fmt.Errorf("matrix: ConcatRows: %w: %d cols vs %d cols", simerr.ErrDimensionMismatch, m.ncols, other.ncols)
	}
	out := New(m.nrows+other.nrows, m.ncols, m.zero)
	copy(out.data[:len(m.data)], m.data)
	copy(out.data[len(m.data):], other.data)
	return out, nil
}

// Prod returns the general matrix product m*other.
func (m *Matrix[T]) Prod(other *Matrix[T]) (*Matrix[T], error) {
	if m.ncols != other.nrows {
		return nil, fmt.Errorf("matrix: Prod: %w: %dx%d * %dx%d", simerr.ErrDimensionMismatch, m.nrows, m.ncols, other.nrows, other.ncols)
	}
	out := New(m.nrows, other.ncols, m.zero)
	for r := 0; r < m.nrows; r++ {
		for c := 0; c < other.ncols; c++ {
			acc := m.zero
			for k := 0; k < m.ncols; k++ {
				acc = acc.Add(m.At(r, k).Mul(other.At(k, c)))
			}
			out.Set(r, c, acc)
		}
	}
	return out, nil
}
