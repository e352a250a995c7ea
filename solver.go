// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gonum-community/amg/cycle"
	"github.com/gonum-community/amg/hierarchy"
	"github.com/gonum-community/amg/solve"
	"github.com/gonum-community/amg/sparsemat"
)

// Solver wraps a built multigrid hierarchy and cycle engine for a fixed
// finest-level matrix and set of run parameters.
type Solver struct {
	a0     *sparsemat.Matrix
	params Params
	engine *cycle.Engine
}

// NewSolver validates params, pre-checks a0 for symmetric positive
// definiteness (mirroring the original driver's SimplicialLLT pre-check),
// and builds the full multigrid hierarchy and cycle engine.
func NewSolver(a0 *sparsemat.Matrix, params Params) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(a0.ToSymDense()); !ok {
		return nil, ErrNotSPD
	}

	levels, err := hierarchy.Build(a0, params.FEM.scheme(), params.Theta, params.NLevel)
	if err != nil {
		return nil, err
	}
	engine, err := cycle.New(levels, cycle.Params{Nu1: params.Nu1, Nu2: params.Nu2, Mu: params.Mu})
	if err != nil {
		return nil, err
	}
	return &Solver{a0: a0, params: params, engine: engine}, nil
}

// Solve runs the configured outer driver (AMG or PCG) against right-hand
// side f and returns the solution together with a diagnostic Report.
func (s *Solver) Solve(f *mat.VecDense) (*mat.VecDense, Report, error) {
	rows, _ := s.a0.Dims()
	if f.Len() != rows {
		return nil, Report{}, &DimensionMismatchError{Want: rows, Got: f.Len()}
	}

	var (
		x   *mat.VecDense
		res solve.Result
		err error
	)
	switch s.params.Method {
	case PCG:
		x, res, err = solve.PCG(s.engine, s.a0, f, s.params.Tol, s.params.MaxIter)
	default:
		x, res, err = solve.AMG(s.engine, s.a0, f, s.params.Tol, s.params.MaxIter)
	}
	if err != nil {
		return nil, Report{}, err
	}
	return x, Report{Iter: res.Iter, Rho: res.Rho, Flag: res.Flag}, nil
}
