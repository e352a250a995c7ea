// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cycle

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/gonum-community/amg/hierarchy"
	"github.com/gonum-community/amg/sparsemat"
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

func residualNorm(a *sparsemat.Matrix, u, f *mat.VecDense) float64 {
	n := f.Len()
	r := mat.NewVecDense(n, nil)
	a.MulVec(r, u)
	r.SubVec(f, r)
	return mat.Norm(r, 2)
}

func TestRunReducesResidual(t *testing.T) {
	a0 := poisson1D(31)
	levels, err := hierarchy.Build(a0, hierarchy.CG, 0.25, 2)
	if err != nil {
		t.Fatal(err)
	}
	e, err := New(levels, Params{Nu1: 1, Nu2: 1, Mu: 1})
	if err != nil {
		t.Fatal(err)
	}

	n, _ := a0.Dims()
	f := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		f.SetVec(i, 1)
	}
	e.SetRHS(f)

	before := residualNorm(a0, e.Solution(), f)
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	after := residualNorm(a0, e.Solution(), f)

	if after >= before {
		t.Fatalf("residual did not decrease: before=%v after=%v", before, after)
	}
	if after/before > 0.5 {
		t.Errorf("residual reduction factor %v weaker than expected for a single V-cycle", after/before)
	}
}

func TestRunWCycleReducesResidualMoreThanVCycle(t *testing.T) {
	a0 := poisson1D(31)
	n, _ := a0.Dims()
	f := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		f.SetVec(i, 1)
	}

	run := func(mu int) float64 {
		levels, err := hierarchy.Build(a0, hierarchy.CG, 0.25, 2)
		if err != nil {
			t.Fatal(err)
		}
		e, err := New(levels, Params{Nu1: 1, Nu2: 1, Mu: mu})
		if err != nil {
			t.Fatal(err)
		}
		e.SetRHS(f)
		if err := e.Run(); err != nil {
			t.Fatal(err)
		}
		return residualNorm(a0, e.Solution(), f)
	}

	vResidual := run(1)
	wResidual := run(2)
	if wResidual > vResidual {
		t.Errorf("W-cycle residual %v not better than V-cycle residual %v", wResidual, vResidual)
	}
}

func TestNewRejectsNonSPDCoarsestLevel(t *testing.T) {
	zero := sparsemat.NewFromTriplets(2, 2, nil)
	levels := []hierarchy.Level{{A: zero}}
	if _, err := New(levels, Params{Nu1: 1, Nu2: 1, Mu: 1}); err != ErrNotSPD {
		t.Fatalf("New error = %v, want ErrNotSPD", err)
	}
}

func TestSmoothSingularDiagonalPropagatesError(t *testing.T) {
	singular := sparsemat.NewFromTriplets(2, 2, []sparsemat.Triplet{
		{Row: 0, Col: 0, Value: 0},
		{Row: 1, Col: 1, Value: 1},
	})
	levels := []hierarchy.Level{{A: singular}}
	e := &Engine{levels: levels, params: Params{Nu1: 1, Nu2: 1, Mu: 1}}
	e.u = []*mat.VecDense{mat.NewVecDense(2, nil)}
	e.f = []*mat.VecDense{mat.NewVecDense(2, []float64{1, 1})}
	if err := e.smooth(singular, e.u[0], e.f[0], 1); err == nil {
		t.Fatal("smooth over a singular diagonal did not error")
	}
}
