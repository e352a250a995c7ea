// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularDiagonal is returned by LowerSolve when a diagonal entry of
// the matrix is zero, making the lower-triangular solve impossible.
var ErrSingularDiagonal = errors.New("sparsemat: zero diagonal entry in lower-triangular solve")

// LowerSolve solves L z = rhs for z, where L is the lower-triangular part
// of m (strictly-below-diagonal entries plus the diagonal). It is the
// sparse forward-substitution kernel the Gauss–Seidel sweep uses once per
// smoothing step.
func (m *Matrix) LowerSolve(dst *mat.VecDense, rhs *mat.VecDense) error {
	r, _ := m.Dims()
	dst.Reset()
	dst.ReuseAsVec(r)
	for i := 0; i < r; i++ {
		sum := 0.0
		diag := 0.0
		haveDiag := false
		m.DoRow(i, func(j int, v float64) {
			switch {
			case j < i:
				sum += v * dst.AtVec(j)
			case j == i:
				diag = v
				haveDiag = true
			}
		})
		if !haveDiag || diag == 0 {
			return ErrSingularDiagonal
		}
		dst.SetVec(i, (rhs.AtVec(i)-sum)/diag)
	}
	return nil
}
