// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package amg ties the setup (hierarchy), cycle, and outer-driver (solve)
// packages together behind the external interface of spec.md §6: load a
// matrix and right-hand side, validate run parameters, and solve.
package amg

import "github.com/gonum-community/amg/hierarchy"

// FEM selects the coarsening path used to build the hierarchy.
type FEM int

const (
	CG FEM = iota // classical Ruge–Stüben coarsening at every level
	DG            // aggregation coarsening at level 0, Ruge–Stüben beyond
)

func (f FEM) scheme() hierarchy.Scheme {
	if f == DG {
		return hierarchy.DG
	}
	return hierarchy.CG
}

// Method selects the outer driver.
type Method int

const (
	AMGStandalone Method = iota // stationary multigrid iteration
	PCG                         // AMG-preconditioned conjugate gradient
)

// Params collects the run parameters enumerated in spec.md §6. All fields
// are immutable once passed to NewSolver.
type Params struct {
	Theta   float64 // strong-connection threshold, 0 < Theta <= 1
	NLevel  int     // number of coarse levels beyond the finest, >= 1
	Nu1     int     // pre-smoothing sweeps, >= 1
	Nu2     int     // post-smoothing sweeps, >= 1
	Mu      int     // cycle index: 1 (V-cycle) or 2 (W-cycle)
	Tol     float64 // outer solver tolerance, > 0
	MaxIter int     // outer solver iteration cap, > 0
	FEM     FEM
	Method  Method
}

// Validate reports the first out-of-range field found, or nil if every
// field of p satisfies spec.md §6's constraints.
func (p Params) Validate() error {
	switch {
	case p.Theta <= 0 || p.Theta > 1:
		return &InvalidParameterError{Field: "Theta", Reason: "must satisfy 0 < theta <= 1"}
	case p.NLevel < 1:
		return &InvalidParameterError{Field: "NLevel", Reason: "must be >= 1"}
	case p.Nu1 < 1:
		return &InvalidParameterError{Field: "Nu1", Reason: "must be >= 1"}
	case p.Nu2 < 1:
		return &InvalidParameterError{Field: "Nu2", Reason: "must be >= 1"}
	case p.Mu != 1 && p.Mu != 2:
		return &InvalidParameterError{Field: "Mu", Reason: "must be 1 (V-cycle) or 2 (W-cycle)"}
	case p.Tol <= 0:
		return &InvalidParameterError{Field: "Tol", Reason: "must be > 0"}
	case p.MaxIter < 1:
		return &InvalidParameterError{Field: "MaxIter", Reason: "must be >= 1"}
	}
	return nil
}
