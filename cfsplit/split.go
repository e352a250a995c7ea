// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfsplit implements the two-pass Ruge–Stüben coarse/fine (C/F)
// splitting: a λ-measure maximal-independent-set first pass, followed by
// a second pass that repairs rows whose interpolation would otherwise be
// inconsistent.
package cfsplit

import "github.com/gonum-community/amg/amgset"

// FirstPass performs the λ-measure maximal-independent-set selection
// described in spec.md §4.3. S and St must be indexed by row and their
// per-row sets must already be sorted ascending (true of strength.Result,
// whose sets are built in column order). It returns the resulting C and F
// sets, both sorted.
func FirstPass(S, St []*amgset.Set) (C, F *amgset.Set) {
	n := len(St)
	lambda := make([]int, n)
	for i, s := range St {
		lambda[i] = s.Cardinality()
	}

	C = amgset.New(n)
	F = amgset.New(n)

	for {
		maxVal, maxIdx := -1, -1
		for i, l := range lambda {
			if l > maxVal {
				maxVal, maxIdx = l, i
			}
		}
		if maxVal == -1 {
			break
		}

		C.Push(maxIdx)
		C.Sort()

		cup := amgset.Union(C, F)
		newF := amgset.Diff(St[maxIdx], cup)
		for _, j := range newF.Slice() {
			F.Push(j)
		}
		F.Sort()

		cup = amgset.Union(C, F)
		for _, j := range cup.Slice() {
			lambda[j] = -1
		}

		for _, i := range newF.Slice() {
			inc := amgset.Diff(S[i], cup)
			for _, j := range inc.Slice() {
				lambda[j]++
			}
		}
	}

	C.Sort()
	F.Sort()
	return C, F
}

// CoarseStrongDependence splits each row's strong-dependence set S[i] into
// a coarse-interpolatory part Ci[i] = S[i] ∩ C and a strong
// non-interpolatory part Ds[i] = S[i] \ C, for every row (not only F-rows),
// since the second pass's repair needs Ds for arbitrary rows.
func CoarseStrongDependence(S []*amgset.Set, C *amgset.Set) (Ci, Ds []*amgset.Set) {
	n := len(S)
	Ci = make([]*amgset.Set, n)
	Ds = make([]*amgset.Set, n)
	for i, s := range S {
		ci := amgset.New(s.Cardinality())
		ds := amgset.New(s.Cardinality())
		for _, j := range s.Slice() {
			if C.Member(j) {
				ci.Push(j)
			} else {
				ds.Push(j)
			}
		}
		Ci[i] = ci
		Ds[i] = ds
	}
	return Ci, Ds
}

// SecondPass performs the interpolation-consistency repair of spec.md
// §4.4: any F-point f that, for some strong non-interpolatory neighbor g,
// shares no coarse-interpolatory neighbor with g is promoted to C. Ci and
// Ds are updated in place to reflect every promotion; the returned C and F
// are disjoint, sorted, and their union is unchanged from the input.
func SecondPass(C, F *amgset.Set, Ci, Ds []*amgset.Set) (*amgset.Set, *amgset.Set) {
	promoted := make(map[int]bool)

	for _, f := range F.Slice() {
		witnessed := false
		for _, g := range Ds[f].Slice() {
			if witnessed {
				break
			}
			if amgset.Intersect(Ci[f], Ci[g]).IsEmpty() {
				witnessed = true
				promoted[f] = true
				for k := range Ds {
					if Ds[k].Member(f) {
						Ci[k].Push(f)
						Ci[k].Sort()
						Ds[k].Delete(f)
					}
				}
			}
		}
	}

	for f := range promoted {
		C.Push(f)
	}
	C.Sort()

	newF := amgset.New(F.Cardinality())
	for _, f := range F.Slice() {
		if !promoted[f] {
			newF.Push(f)
		}
	}
	newF.Sort()
	return C, newF
}
