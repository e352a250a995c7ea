// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aggregate implements the DG (discontinuous Galerkin) aggregation
// coarsening of spec.md §4.6: a strongest-off-diagonal matching followed by
// slot-recycling aggregate construction, a tentative (0/1, column-
// normalized) prolongator, and a Jacobi-smoothed prolongator.
package aggregate

import (
	"errors"
	"math"

	"github.com/gonum-community/amg/amgset"
	"github.com/gonum-community/amg/sparsemat"
)

// ErrIsolatedPoint is returned when a row has no off-diagonal entry at
// all, so no matching partner can be found for it. This mirrors the
// "possibly non-DG matrix" check of the original aggregator.
var ErrIsolatedPoint = errors.New("aggregate: isolated point, no off-diagonal neighbor")

// smoothingOmega is the Jacobi relaxation factor used to smooth the
// tentative prolongator, per spec.md §4.6 step 5.
const smoothingOmega = 2.0 / 3.0

// StrongestNeighbor returns, for each row i, the column of the
// off-diagonal entry of largest magnitude (ties broken toward the first
// occurrence in ascending column order). It reports ErrIsolatedPoint for
// any row whose off-diagonal entries are all zero.
func StrongestNeighbor(a *sparsemat.Matrix) ([]int, error) {
	n, _ := a.Dims()
	pos := make([]int, n)
	for i := 0; i < n; i++ {
		best, bestVal := -1, 0.0
		a.DoRow(i, func(j int, v float64) {
			if j == i {
				return
			}
			if av := math.Abs(v); av > bestVal {
				bestVal, best = av, j
			}
		})
		if best == -1 {
			return nil, ErrIsolatedPoint
		}
		pos[i] = best
	}
	return pos, nil
}

// Aggregates holds the partition of {0,...,n-1} built by Match. Some
// slots may be empty: a merge clears one of its two source slots rather
// than compacting the slice, so that earlier indices into the slice
// remain stable for the rest of the pass.
type Aggregates struct {
	groups []*amgset.Set
}

// Groups returns the non-empty aggregates, in slot order.
func (ag *Aggregates) Groups() []*amgset.Set {
	out := make([]*amgset.Set, 0, len(ag.groups))
	for _, g := range ag.groups {
		if g != nil && !g.IsEmpty() {
			out = append(out, g)
		}
	}
	return out
}

func (ag *Aggregates) find(v int) int {
	for idx, g := range ag.groups {
		if g != nil && g.Contains(v) {
			return idx
		}
	}
	return -1
}

// Match walks rows 1..n-1 in order, pairing each row with its strongest
// neighbor (as computed by StrongestNeighbor) according to the sign of
// the connecting entry, per spec.md §4.6 step 2:
//
//   - a positive connection never creates a new pair: if i belongs to no
//     aggregate yet it becomes a singleton, otherwise nothing changes;
//   - a negative connection pairs i with its neighbor, merging their
//     aggregates if both already belong to one.
//
// Emptied slots left behind by a merge are recorded in a recycling set
// and reused, smallest index first, by later singleton/pair creation,
// matching the original implementation's delset behavior.
func Match(a *sparsemat.Matrix, pos []int) *Aggregates {
	n, _ := a.Dims()
	ag := &Aggregates{groups: []*amgset.Set{amgset.Of(0, pos[0])}}
	delset := amgset.New(0)

	newSlot := func(members ...int) {
		if delset.IsEmpty() {
			ag.groups = append(ag.groups, amgset.Of(members...))
			return
		}
		delset.Sort()
		slot, _ := delset.At(0)
		delset.Delete(slot)
		for _, m := range members {
			ag.groups[slot].Push(m)
		}
	}

	for i := 1; i < n; i++ {
		j := pos[i]
		N, M := ag.find(i), ag.find(j)
		positive := a.At(i, j) > 0

		switch {
		case positive && N == -1:
			newSlot(i)
		case positive:
			// i already belongs to an aggregate; nothing to do.
		case N == -1 && M == -1:
			newSlot(i, j)
		case N == -1:
			ag.groups[M].Push(i)
		case M == -1:
			ag.groups[N].Push(j)
		case N != M:
			lo, hi := min(N, M), max(N, M)
			ag.groups[lo].Sort()
			ag.groups[hi].Sort()
			ag.groups[lo] = amgset.Union(ag.groups[lo], ag.groups[hi])
			ag.groups[hi] = amgset.New(0)
			delset.Push(hi)
		}
	}
	return ag
}

// TentativeProlongator builds the 0/1 tentative prolongator P̃, one
// column per non-empty aggregate, per spec.md §4.6 step 3. Empty
// aggregate slots left by Match are dropped rather than carried as
// all-zero columns, avoiding a degenerate zero-norm column at the
// normalization step that follows.
func TentativeProlongator(n int, groups []*amgset.Set) *sparsemat.Matrix {
	trips := make([]sparsemat.Triplet, 0, n)
	for col, g := range groups {
		for _, i := range g.Slice() {
			trips = append(trips, sparsemat.Triplet{Row: i, Col: col, Value: 1})
		}
	}
	return sparsemat.NewFromTriplets(n, len(groups), trips)
}

// NormalizeColumns rescales every column of p to unit Euclidean norm, per
// spec.md §4.6 step 4. Since TentativeProlongator's columns are 0/1
// indicators of non-empty aggregates, every column norm is
// sqrt(cardinality) > 0.
func NormalizeColumns(p *sparsemat.Matrix) *sparsemat.Matrix {
	_, cols := p.Dims()
	norm := make([]float64, cols)
	p.DoNonZero(func(_, j int, v float64) { norm[j] += v * v })
	for j := range norm {
		norm[j] = math.Sqrt(norm[j])
	}

	var trips []sparsemat.Triplet
	p.DoNonZero(func(i, j int, v float64) {
		trips = append(trips, sparsemat.Triplet{Row: i, Col: j, Value: v / norm[j]})
	})
	rows, _ := p.Dims()
	return sparsemat.NewFromTriplets(rows, cols, trips)
}

// SmoothedProlongator applies one step of Jacobi smoothing to the
// (already column-normalized) tentative prolongator, per spec.md §4.6
// step 5: P = (I - ω D⁻¹A) P̃, with ω = 2/3 and D = diag(a).
func SmoothedProlongator(a *sparsemat.Matrix, ptilde *sparsemat.Matrix) *sparsemat.Matrix {
	diag := a.Diagonal()
	ap := a.Mul(ptilde)
	rows, cols := ptilde.Dims()

	trips := make([]sparsemat.Triplet, 0, ptilde.NNZ()+ap.NNZ())
	ptilde.DoNonZero(func(i, j int, v float64) {
		trips = append(trips, sparsemat.Triplet{Row: i, Col: j, Value: v})
	})
	ap.DoNonZero(func(i, j int, v float64) {
		trips = append(trips, sparsemat.Triplet{Row: i, Col: j, Value: -smoothingOmega / diag[i] * v})
	})
	return sparsemat.NewFromTriplets(rows, cols, trips)
}

// Build runs the full DG aggregation pipeline on level matrix a: strongest-
// neighbor matching, tentative prolongator construction and
// normalization, and Jacobi smoothing. It returns the smoothed
// prolongator ready for use by hierarchy.Build.
func Build(a *sparsemat.Matrix) (*sparsemat.Matrix, error) {
	n, _ := a.Dims()
	pos, err := StrongestNeighbor(a)
	if err != nil {
		return nil, err
	}
	ag := Match(a, pos)
	ptilde := NormalizeColumns(TentativeProlongator(n, ag.Groups()))
	return SmoothedProlongator(a, ptilde), nil
}
