package matrix

import (
	"fmt"

	"github.com/spatialmodel/buildingsim/simerr"
)

// pivotTolerance is the minimum acceptable magnitude for a diagonal pivot
// during n-diagonal elimination; below it the matrix is declared singular.
// 1e-26 matches the reference implementation's tolerance for an ill-scaled
// but not truly singular thermal system.
const pivotTolerance = 1e-26

// SolveNDiag solves A*x = b in place, where A is square and n-diagonal
// (n odd, k = (n-1)/2 bands on each side of the diagonal). A and b are
// mutated directly; use SolveNDiagCopy to preserve the inputs.
//
// Forward elimination scales each pivot row to 1 and eliminates the k rows
// below it; back-substitution then eliminates upward. Both sweeps only
// touch the narrow band of columns that can be nonzero, which is what makes
// this solver cheaper than general Gaussian elimination for a banded
// system.
func SolveNDiag[T Number[T]](a *Matrix[T], b *Matrix[T], n int) error {
	if a.nrows != a.ncols {
		return fmt.Errorf("matrix: SolveNDiag: %w: A is %dx%d, not square", simerr.ErrDimensionMismatch, a.nrows, a.ncols)
	}
	if a.nrows != b.nrows {
		return fmt.Errorf("matrix: SolveNDiag: %w: A has %d rows, b has %d", simerr.ErrDimensionMismatch, a.nrows, b.nrows)
	}
	if n%2 == 0 || n < 1 {
		return fmt.Errorf("matrix: SolveNDiag: bandwidth n=%d must be odd and positive", n)
	}
	k := (n - 1) / 2
	ncols := a.ncols

	// Forward sweep.
	for c := 0; c < ncols; c++ {
		pivot := a.At(c, c)
		if pivot.SmallerThan(pivotTolerance) {
			return fmt.Errorf("matrix: SolveNDiag: %w: pivot at column %d", simerr.ErrSingularMatrix, c)
		}
		hi := c + k + 1
		if hi > ncols {
			hi = ncols
		}
		// Scale row c so A(c,c) == 1.
		for col := c; col < hi; col++ {
			a.Set(c, col, a.At(c, col).Div(pivot))
		}
		for col := 0; col < b.ncols; col++ {
			b.Set(c, col, b.At(c, col).Div(pivot))
		}
		rowEnd := c + k + 1
		if rowEnd > ncols {
			rowEnd = ncols
		}
		for r := c + 1; r < rowEnd; r++ {
			factor := a.At(r, c)
			for col := c; col < hi; col++ {
				a.Set(r, col, a.At(r, col).Sub(factor.Mul(a.At(c, col))))
			}
			for col := 0; col < b.ncols; col++ {
				b.Set(r, col, b.At(r, col).Sub(factor.Mul(b.At(c, col))))
			}
		}
	}

	// Back-substitution.
	for c := ncols - 1; c >= 1; c-- {
		lo := c - k
		if lo < 0 {
			lo = 0
		}
		for r := lo; r < c; r++ {
			factor := a.At(r, c)
			if factor.SmallerThan(pivotTolerance) {
				continue
			}
			a.Set(r, c, a.At(r, c).Sub(factor.Mul(a.At(c, c))))
			for col := 0; col < b.ncols; col++ {
				b.Set(r, col, b.At(r, col).Sub(factor.Mul(b.At(c, col))))
			}
		}
	}

	return nil
}

// SolveNDiagCopy solves A*x = b, cloning both inputs first so the caller's
// matrices are left untouched. The solution overwrites the returned b
// clone's rows.
func SolveNDiagCopy[T Number[T]](a *Matrix[T], b *Matrix[T], n int) (*Matrix[T], error) {
	ac := a.Clone()
	bc := b.Clone()
	if err := SolveNDiag(ac, bc, n); err != nil {
		return nil, err
	}
	return bc, nil
}

// ProdNDiag computes A*B, assuming A is n-diagonal and skipping the bands of
// A known to be zero. Produces the same result as Prod but touches O(n)
// entries per row of A instead of O(ncols).
func ProdNDiag[T Number[T]](a *Matrix[T], b *Matrix[T], n int) (*Matrix[T], error) {
	if a.ncols != b.nrows {
		return nil, fmt.Errorf("matrix: ProdNDiag: %w: %dx%d * %dx%d", simerr.ErrDimensionMismatch, a.nrows, a.ncols, b.nrows, b.ncols)
	}
	if n%2 == 0 || n < 1 {
		return nil, fmt.Errorf("matrix: ProdNDiag: bandwidth n=%d must be odd and positive", n)
	}
	k := (n - 1) / 2
	out := New(a.nrows, b.ncols, a.zero)
	for r := 0; r < a.nrows; r++ {
		lo := r - k
		if lo < 0 {
			lo = 0
		}
		hi := r + k + 1
		if hi > a.ncols {
			hi = a.ncols
		}
		for col := 0; col < b.ncols; col++ {
			acc := a.zero
			for kk := lo; kk < hi; kk++ {
				acc = acc.Add(a.At(r, kk).Mul(b.At(kk, col)))
			}
			out.Set(r, col, acc)
		}
	}
	return out, nil
}

// SolveGaussSeidel iteratively solves A*x = b by Gauss-Seidel relaxation,
// starting from x0 (which is mutated in place and also returned). It
// returns ErrIterativeNonConvergence if the largest absolute change in any
// component of x during a sweep does not fall below threshold within
// maxIterations sweeps.
func SolveGaussSeidel(a *Matrix[Scalar], b *Matrix[Scalar], x0 *Matrix[Scalar], maxIterations int, threshold float64) (*Matrix[Scalar], error) {
	if a.nrows != a.ncols {
		return nil, fmt.Errorf("matrix: SolveGaussSeidel: %w: A is %dx%d, not square", simerr.ErrDimensionMismatch, a.nrows, a.ncols)
	}
	n := a.nrows
	if x0.nrows != n || x0.ncols != 1 || b.nrows != n || b.ncols != 1 {
		return nil, fmt.Errorf("matrix: SolveGaussSeidel: %w: shapes must be A: %dx%d, x0/b: %dx1", simerr.ErrDimensionMismatch, n, n, n)
	}

	x := x0
	for iter := 0; iter < maxIterations; iter++ {
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			sum := Scalar(0)
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				sum = sum.Add(a.At(i, j).Mul(x.At(j, 0)))
			}
			newVal := (b.At(i, 0).Sub(sum)).Div(a.At(i, i))
			delta := float64(newVal.Sub(x.At(i, 0)))
			if delta < 0 {
				delta = -delta
			}
			if delta > maxDelta {
				maxDelta = delta
			}
			x.Set(i, 0, newVal)
		}
		if maxDelta < threshold {
			return x, nil
		}
	}
	return nil, fmt.Errorf("matrix: SolveGaussSeidel: %w after %d iterations", simerr.ErrIterativeNonConvergence, maxIterations)
}
