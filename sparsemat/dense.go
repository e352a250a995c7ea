// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import "gonum.org/v1/gonum/mat"

// ToSymDense materializes m as a dense symmetric matrix, for use with
// gonum's mat.Cholesky at the (small) coarsest level. Only the lower
// triangle is read, matching mat.NewSymDense's own contract; m is assumed
// symmetric, as the spec requires for the levels this is used on.
func (m *Matrix) ToSymDense() *mat.SymDense {
	r, _ := m.Dims()
	d := mat.NewSymDense(r, nil)
	m.DoNonZero(func(i, j int, v float64) {
		if j <= i {
			d.SetSym(i, j, v)
		}
	})
	return d
}
