// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hierarchy builds the multigrid level sequence {(A_k, P_k)} from a
// fine-grid matrix, per spec.md §4.7. Both coarsening paths share the same
// Ruge–Stüben coarsening routine; the DG path substitutes an aggregation
// step for the finest level only, composing rather than inheriting from the
// CG path's setup.
package hierarchy

import (
	"github.com/gonum-community/amg/aggregate"
	"github.com/gonum-community/amg/cfsplit"
	"github.com/gonum-community/amg/interp"
	"github.com/gonum-community/amg/sparsemat"
	"github.com/gonum-community/amg/strength"
)

// Scheme selects the coarsening path used to build the finest prolongator.
type Scheme int

const (
	// CG builds every level via Ruge–Stüben strength analysis, C/F
	// splitting, and classical interpolation.
	CG Scheme = iota
	// DG builds level 0 via DGAggregator and every subsequent level via
	// the CG path, matching spec.md §4.7's DG path.
	DG
)

// Level is one entry of the hierarchy. A is the level's operator; P is the
// prolongation map from the next coarser level into this one, and is nil
// at the coarsest level.
type Level struct {
	A *sparsemat.Matrix
	P *sparsemat.Matrix
}

// Build constructs nlevel coarse levels beyond the given finest matrix a0,
// using the strong-connection threshold theta for every Ruge–Stüben step.
// The returned slice has nlevel+1 entries, index 0 being the finest level
// and the last having a nil P. It satisfies invariants 1 and 2 of spec.md
// §8 by construction: each A_{k+1} is exactly P_kᵀ·A_k·P_k.
func Build(a0 *sparsemat.Matrix, scheme Scheme, theta float64, nlevel int) ([]Level, error) {
	levels := make([]Level, 1, nlevel+1)
	levels[0] = Level{A: a0}

	for k := 0; k < nlevel; k++ {
		var p *sparsemat.Matrix
		var err error
		if scheme == DG && k == 0 {
			p, err = aggregate.Build(levels[k].A)
		} else {
			p, err = cgProlongator(levels[k].A, theta)
		}
		if err != nil {
			return nil, err
		}
		levels[k].P = p
		levels = append(levels, Level{A: levels[k].A.TripleProduct(p)})
	}
	return levels, nil
}

// cgProlongator runs one Ruge–Stüben coarsening step (strength analysis,
// two-pass C/F splitting, classical interpolation) and returns the
// resulting prolongator.
func cgProlongator(a *sparsemat.Matrix, theta float64) (*sparsemat.Matrix, error) {
	res, err := strength.Analyze(a, theta)
	if err != nil {
		return nil, err
	}
	C, F := cfsplit.FirstPass(res.S, res.St)
	Ci, Ds := cfsplit.CoarseStrongDependence(res.S, C)
	C, _ = cfsplit.SecondPass(C, F, Ci, Ds)
	return interp.Build(a, C, Ci, Ds, res.Dw)
}
