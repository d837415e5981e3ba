package math3d

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// gemm computes c = a × m where a and c are rows×4 row-major matrices.
// c must not alias a.
func gemm(a []float32, rows int, m *Mat4, c []float32) {
	if rows == 0 {
		return
	}
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: rows, Cols: 4, Stride: 4, Data: a},
		blas32.General{Rows: 4, Cols: 4, Stride: 4, Data: m[:]},
		0,
		blas32.General{Rows: rows, Cols: 4, Stride: 4, Data: c},
	)
}

// Mul multiplies two matrices: a × b. Under the row-vector convention
// the result applies a first, then b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var c Mat4
	gemm(a[:], 4, &b, c[:])
	return c
}

// Compose right-multiplies each operator onto an identity accumulator, so
// Compose(S, R, T) == S × R × T.
func Compose(ops ...Mat4) Mat4 {
	m := Identity()
	for _, op := range ops {
		m = m.Mul(op)
	}
	return m
}

// ApplyBatch treats rows as a dense (len(rows)/4)×4 matrix of homogeneous
// row vectors and returns rows × m as a new slice.
// len(rows) must be a multiple of 4.
func ApplyBatch(rows []float32, m Mat4) []float32 {
	if len(rows)%4 != 0 {
		panic("math3d: ApplyBatch row data length is not a multiple of 4")
	}
	out := make([]float32, len(rows))
	gemm(rows, len(rows)/4, &m, out)
	return out
}

// ApplyBatchInPlace is ApplyBatch that overwrites rows with the result.
func ApplyBatchInPlace(rows []float32, m Mat4) {
	copy(rows, ApplyBatch(rows, m))
}
