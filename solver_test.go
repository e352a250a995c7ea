// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amg

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/gonum-community/amg/aggregate"
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

func ones(n int) *mat.VecDense {
	f := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		f.SetVec(i, 1)
	}
	return f
}

func validParams() Params {
	return Params{Theta: 0.25, NLevel: 2, Nu1: 1, Nu2: 1, Mu: 1, Tol: 1e-8, MaxIter: 15, FEM: CG, Method: AMGStandalone}
}

// TestSolverScenarioA mirrors spec.md §8 scenario A end to end, through
// the public Solver API.
func TestSolverScenarioA(t *testing.T) {
	a0 := poisson1D(31)
	s, err := NewSolver(a0, validParams())
	if err != nil {
		t.Fatal(err)
	}
	_, rep, err := s.Solve(ones(31))
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Converged() {
		t.Fatalf("scenario A did not converge: %+v", rep)
	}
	if rep.Iter > 15 {
		t.Errorf("scenario A took %d iterations, want <= 15", rep.Iter)
	}
	if rep.Rho >= 0.3 {
		t.Errorf("scenario A rho = %v, want < 0.3", rep.Rho)
	}
}

// TestSolverScenarioFNonSPD mirrors scenario F: a 3x3 non-SPD matrix is
// rejected at the pre-check before any hierarchy is built.
func TestSolverScenarioFNonSPD(t *testing.T) {
	// Symmetric but indefinite: eigenvalues 1, 3 and -1.
	a0 := sparsemat.NewFromTriplets(3, 3, []sparsemat.Triplet{
		{Row: 0, Col: 0, Value: 1}, {Row: 0, Col: 1, Value: 0}, {Row: 0, Col: 2, Value: 0},
		{Row: 1, Col: 0, Value: 0}, {Row: 1, Col: 1, Value: 1}, {Row: 1, Col: 2, Value: 2},
		{Row: 2, Col: 0, Value: 0}, {Row: 2, Col: 1, Value: 2}, {Row: 2, Col: 2, Value: 1},
	})
	if _, err := NewSolver(a0, validParams()); err != ErrNotSPD {
		t.Fatalf("NewSolver error = %v, want ErrNotSPD", err)
	}
}

// TestSolverScenarioEIsolatedPoint mirrors scenario E: a DG hierarchy
// build over a matrix with an isolated row fails with
// aggregate.ErrIsolatedPoint.
func TestSolverScenarioEIsolatedPoint(t *testing.T) {
	a0 := sparsemat.NewFromTriplets(5, 5, []sparsemat.Triplet{
		{Row: 0, Col: 0, Value: 1},
		{Row: 1, Col: 1, Value: 2}, {Row: 1, Col: 2, Value: -1},
		{Row: 2, Col: 1, Value: -1}, {Row: 2, Col: 2, Value: 2}, {Row: 2, Col: 3, Value: -1},
		{Row: 3, Col: 2, Value: -1}, {Row: 3, Col: 3, Value: 2}, {Row: 3, Col: 4, Value: -1},
		{Row: 4, Col: 3, Value: -1}, {Row: 4, Col: 4, Value: 2},
	})
	params := validParams()
	params.FEM = DG
	if _, err := NewSolver(a0, params); err != aggregate.ErrIsolatedPoint {
		t.Fatalf("NewSolver error = %v, want ErrIsolatedPoint", err)
	}
}

func TestParamsValidateRejectsOutOfRangeTheta(t *testing.T) {
	p := validParams()
	p.Theta = 1.5
	var invalid *InvalidParameterError
	if err := p.Validate(); err == nil {
		t.Fatal("Validate accepted theta=1.5")
	} else if _, ok := err.(*InvalidParameterError); !ok {
		t.Errorf("Validate error type = %T, want %T", err, invalid)
	}
}

func TestSolveRejectsDimensionMismatch(t *testing.T) {
	a0 := poisson1D(31)
	s, err := NewSolver(a0, validParams())
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Solve(ones(10)); err == nil {
		t.Fatal("Solve accepted a mismatched right-hand side length")
	}
}
