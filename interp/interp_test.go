// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"testing"

	"github.com/gonum-community/amg/amgset"
	"github.com/gonum-community/amg/cfsplit"
	"github.com/gonum-community/amg/sparsemat"
	"github.com/gonum-community/amg/strength"
)

func poisson1D(n int) *sparsemat.Matrix {
	var trips []sparsemat.Triplet
	for i := 0; i < n; i++ {
		trips = append(trips, sparsemat.Triplet{Row: i, Col: i, Value: 2})
		if i > 0 {
			trips = append(trips, sparsemat.Triplet{Row: i, Col: i - 1, Value: -1})
		}
		if i < n-1 {
			trips = append(trips, sparsemat.Triplet{Row: i, Col: i + 1, Value: -1})
		}
	}
	return sparsemat.NewFromTriplets(n, n, trips)
}

func splitLevel(t *testing.T, a *sparsemat.Matrix, theta float64) (*amgset.Set, *amgset.Set, []*amgset.Set, []*amgset.Set, []*amgset.Set) {
	t.Helper()
	res, err := strength.Analyze(a, theta)
	if err != nil {
		t.Fatal(err)
	}
	C, F := cfsplit.FirstPass(res.S, res.St)
	Ci, Ds := cfsplit.CoarseStrongDependence(res.S, C)
	C, F = cfsplit.SecondPass(C, F, Ci, Ds)
	return C, F, Ci, Ds, res.Dw
}

func TestBuildCPointInjection(t *testing.T) {
	a := poisson1D(15)
	C, _, Ci, Ds, Dw := splitLevel(t, a, 0.25)

	p, err := Build(a, C, Ci, Ds, Dw)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	rows, cols := p.Dims()
	if rows != 15 || cols != C.Cardinality() {
		t.Fatalf("P dims = (%d,%d), want (15,%d)", rows, cols, C.Cardinality())
	}

	for _, i := range C.Slice() {
		pos, err := C.Position(i)
		if err != nil {
			t.Fatal(err)
		}
		for q := 0; q < cols; q++ {
			got := p.At(i, q)
			if q == pos {
				if got != 1 {
					t.Errorf("P[%d,%d] = %v, want 1 (injection)", i, q, got)
				}
			} else if got != 0 {
				t.Errorf("P[%d,%d] = %v, want 0", i, q, got)
			}
		}
	}
}

func TestBuildRowSumsNonZeroForFPoints(t *testing.T) {
	a := poisson1D(11)
	C, F, Ci, Ds, Dw := splitLevel(t, a, 0.25)
	p, err := Build(a, C, Ci, Ds, Dw)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	_, cols := p.Dims()
	for _, f := range F.Slice() {
		var sum float64
		p.DoRow(f, func(_ int, v float64) { sum += v })
		if sum == 0 {
			t.Errorf("F-point %d interpolates to zero row", f)
		}
		_ = cols
	}
}

func TestBuildZeroDenominatorErrors(t *testing.T) {
	// Row 0 is an F-point whose diagonal exactly cancels against its
	// single weak-neighbor correction, forcing den == 0.
	a := sparsemat.NewFromTriplets(3, 3, []sparsemat.Triplet{
		{0, 0, 1}, {0, 1, -1},
		{1, 0, -1}, {1, 1, 2}, {1, 2, -1},
		{2, 1, -1}, {2, 2, 2},
	})
	C := amgset.Of(1, 2)
	C.Sort()
	Ds := []*amgset.Set{amgset.New(0), amgset.New(0), amgset.New(0)}
	Dw := []*amgset.Set{amgset.Of(1), amgset.New(0), amgset.New(0)}
	Ci := []*amgset.Set{amgset.New(0), amgset.New(0), amgset.New(0)}

	_, err := Build(a, C, Ci, Ds, Dw)
	if err != ErrZeroDenominator {
		t.Errorf("Build error = %v, want ErrZeroDenominator", err)
	}
}
