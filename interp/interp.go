// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp builds the classical Ruge–Stüben interpolation operator
// from a level matrix and its C/F splitting, per spec.md §4.5.
package interp

import (
	"errors"
	"math"

	"github.com/gonum-community/amg/amgset"
	"github.com/gonum-community/amg/sparsemat"
)

// ErrZeroDenominator is returned when the interpolation-weight denominator
// for an F-point row evaluates to exactly zero; propagating ±Inf/NaN into
// the prolongator is refused rather than silently produced, per spec.md
// §9's conservative-implementation recommendation.
var ErrZeroDenominator = errors.New("interp: zero denominator computing interpolation weight")

// neighborStats caches, for one weak or strong non-interpolatory neighbor
// n of an F-point row, the values needed by both the denominator and
// numerator passes: the signed sum, absolute sum, and count of nonzero
// entries A[n,k] for k ranging over the row's coarse-interpolatory set.
// This is the "sparse vector scratch" of spec.md §9: a map keyed by
// neighbor id, acceptable for the modest row degrees this solver targets.
type neighborStats struct {
	sum, sabs float64
	count     int
}

func rowStats(a *sparsemat.Matrix, row int, ci *amgset.Set) neighborStats {
	var st neighborStats
	for _, k := range ci.Slice() {
		v := a.At(row, k)
		if v != 0 {
			st.sum += v
			st.sabs += math.Abs(v)
			st.count++
		}
	}
	return st
}

// Build constructs the prolongator P with rows(P) = n = rows(a) and
// cols(P) = C.Cardinality(), where column q corresponds to the q-th
// element of the sorted set C. C-points get unit injection; F-points get
// classical interpolation weights computed from their coarse-
// interpolatory (ci), strong non-interpolatory (ds), and weak (dw)
// neighbor sets.
func Build(a *sparsemat.Matrix, c *amgset.Set, ci, ds, dw []*amgset.Set) (*sparsemat.Matrix, error) {
	n, _ := a.Dims()
	ncols := c.Cardinality()
	trips := make([]sparsemat.Triplet, 0, n)

	for i := 0; i < n; i++ {
		if c.Member(i) {
			pos, err := c.Position(i)
			if err != nil {
				return nil, err
			}
			trips = append(trips, sparsemat.Triplet{Row: i, Col: pos, Value: 1})
			continue
		}

		cii, dis, diw := ci[i], ds[i], dw[i]
		den := a.At(i, i)

		statsW := make(map[int]neighborStats, diw.Cardinality())
		for _, nb := range diw.Slice() {
			st := rowStats(a, nb, cii)
			statsW[nb] = st
			aIn := a.At(i, nb)
			if st.count == 0 {
				den -= math.Abs(aIn)
				continue
			}
			x := -st.sum / st.sabs
			if x >= 0.5 && aIn < 0 {
				den -= aIn
			}
		}

		statsS := make(map[int]neighborStats, dis.Cardinality())
		eStrong := make(map[int]float64, dis.Cardinality())
		for _, mb := range dis.Slice() {
			st := rowStats(a, mb, cii)
			statsS[mb] = st
			if st.sabs == 0 {
				continue // neighbor effectively absent: skip per spec.md §4.5
			}
			aIn := a.At(i, mb)
			e := math.Abs(a.At(mb, i)) * float64(st.count) / st.sabs
			eStrong[mb] = e
			x := -st.sum / st.sabs
			switch {
			case e < 0.75 && x >= 0.5 && aIn < 0:
				den -= aIn
			case e > 2 && x >= 0.5 && aIn < 0:
				den += 0.5 * aIn
			}
		}

		if den == 0 {
			return nil, ErrZeroDenominator
		}

		for _, cj := range cii.Slice() {
			num := a.At(i, cj)

			for _, nb := range diw.Slice() {
				st := statsW[nb]
				if st.count == 0 {
					continue
				}
				aIn := a.At(i, nb)
				g := math.Abs(a.At(nb, cj)) / st.sabs
				x := -st.sum / st.sabs
				if x >= 0.5 && aIn < 0 {
					num += 2 * g * aIn
				} else {
					num += g * aIn
				}
			}

			for _, mb := range dis.Slice() {
				st, ok := statsS[mb]
				if !ok || st.sabs == 0 {
					continue
				}
				aIn := a.At(i, mb)
				g := math.Abs(a.At(mb, cj)) / st.sabs
				e := eStrong[mb]
				x := -st.sum / st.sabs
				switch {
				case e < 0.75 && x >= 0.5 && aIn < 0:
					num += 2 * g * aIn
				case e > 2 && x >= 0.5 && aIn < 0:
					num += 0.5 * g * aIn
				default:
					num += g * aIn
				}
			}

			pos, err := c.Position(cj)
			if err != nil {
				return nil, err
			}
			trips = append(trips, sparsemat.Triplet{Row: i, Col: pos, Value: -num / den})
		}
	}

	return sparsemat.NewFromTriplets(n, ncols, trips), nil
}
