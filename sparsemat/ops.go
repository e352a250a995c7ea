// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemat

import "gonum.org/v1/gonum/mat"

// MulVec computes dst = m * x. dst and x must not alias the same backing
// array; dst is resized as needed via ReuseAsVec.
func (m *Matrix) MulVec(dst, x *mat.VecDense) {
	r, c := m.Dims()
	if x.Len() != c {
		panic("sparsemat: matvec dimension mismatch")
	}
	dst.Reset()
	dst.ReuseAsVec(r)
	for i := 0; i < r; i++ {
		sum := 0.0
		m.DoRow(i, func(j int, v float64) {
			sum += v * x.AtVec(j)
		})
		dst.SetVec(i, sum)
	}
}

// Transpose returns a new matrix equal to mᵀ.
func (m *Matrix) Transpose() *Matrix {
	r, c := m.Dims()
	trips := make([]Triplet, 0, m.NNZ())
	m.DoNonZero(func(i, j int, v float64) {
		trips = append(trips, Triplet{Row: j, Col: i, Value: v})
	})
	return NewFromTriplets(c, r, trips)
}

// Mul computes the sparse-sparse product m*other using a dense row
// accumulator (Gustavson's algorithm); this is the approach the spec
// calls out as acceptable when the working dimension is modest.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	mr, mc := m.Dims()
	or, oc := other.Dims()
	if mc != or {
		panic("sparsemat: product dimension mismatch")
	}

	acc := make([]float64, oc)
	touched := make([]int, 0, oc)
	mark := make([]bool, oc)

	trips := make([]Triplet, 0, m.NNZ()+other.NNZ())
	for i := 0; i < mr; i++ {
		touched = touched[:0]
		m.DoRow(i, func(k int, v float64) {
			other.DoRow(k, func(j int, w float64) {
				if !mark[j] {
					mark[j] = true
					touched = append(touched, j)
				}
				acc[j] += v * w
			})
		})
		for _, j := range touched {
			if acc[j] != 0 {
				trips = append(trips, Triplet{Row: i, Col: j, Value: acc[j]})
			}
			acc[j] = 0
			mark[j] = false
		}
	}
	return NewFromTriplets(mr, oc, trips)
}

// TripleProduct computes the Galerkin product pᵀ·m·p, the operation used
// to assemble each coarser level's matrix from the finer level's matrix
// and prolongator.
func (m *Matrix) TripleProduct(p *Matrix) *Matrix {
	ap := m.Mul(p)
	return p.Transpose().Mul(ap)
}
