// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cycle implements the recursive μ-cycle multigrid engine of
// spec.md §4.8: Gauss–Seidel pre/post smoothing at every level, a direct
// Cholesky solve at the coarsest level, and residual restriction /
// correction prolongation in between.
package cycle

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gonum-community/amg/hierarchy"
	"github.com/gonum-community/amg/sparsemat"
)

// ErrNotSPD is returned when the coarsest-level matrix fails Cholesky
// factorization.
var ErrNotSPD = errors.New("cycle: coarsest-level matrix is not symmetric positive definite")

// Params collects the cycle engine's immutable tuning parameters.
type Params struct {
	Nu1, Nu2 int // pre/post Gauss–Seidel sweep counts
	Mu       int // 1 = V-cycle, 2 = W-cycle
}

// Engine owns the per-level working vectors u_k, f_k and the coarsest
// level's Cholesky factorization, and drives the recursive cycle over a
// hierarchy it does not own.
type Engine struct {
	levels []hierarchy.Level
	params Params

	u, f []*mat.VecDense
	chol *mat.Cholesky
}

// New builds a cycle engine over levels, factoring the coarsest-level
// matrix once up front. It reports ErrNotSPD if that factorization fails.
func New(levels []hierarchy.Level, params Params) (*Engine, error) {
	e := &Engine{levels: levels, params: params}
	e.u = make([]*mat.VecDense, len(levels))
	e.f = make([]*mat.VecDense, len(levels))
	for k, lv := range levels {
		n, _ := lv.A.Dims()
		e.u[k] = mat.NewVecDense(n, nil)
		e.f[k] = mat.NewVecDense(n, nil)
	}

	var chol mat.Cholesky
	coarsest := levels[len(levels)-1].A
	if ok := chol.Factorize(coarsest.ToSymDense()); !ok {
		return nil, ErrNotSPD
	}
	e.chol = &chol
	return e, nil
}

// Solution returns the level-0 working vector u_0, the result of the most
// recent Run.
func (e *Engine) Solution() *mat.VecDense { return e.u[0] }

// SetRHS sets the level-0 right-hand side f_0 and resets u_0 to zero,
// preparing the engine for a fresh Run.
func (e *Engine) SetRHS(f *mat.VecDense) {
	e.f[0].CopyVec(f)
	e.u[0].Zero()
}

// Run performs one full μ-cycle starting at level 0.
func (e *Engine) Run() error {
	return e.run(0)
}

func (e *Engine) run(lev int) error {
	L := len(e.levels) - 1
	a := e.levels[lev].A
	u, f := e.u[lev], e.f[lev]

	if err := e.smooth(a, u, f, e.params.Nu1); err != nil {
		return err
	}

	if lev == L {
		return e.solveDirect(lev)
	}

	p := e.levels[lev].P
	n, _ := a.Dims()
	residual := mat.NewVecDense(n, nil)
	a.MulVec(residual, u)
	residual.SubVec(f, residual)

	_, cols := p.Dims()
	restricted := mat.NewVecDense(cols, nil)
	pt := p.Transpose()
	pt.MulVec(restricted, residual)
	e.f[lev+1].CopyVec(restricted)
	e.u[lev+1].Zero()

	calls := e.params.Mu
	for c := 0; c < calls; c++ {
		if err := e.run(lev + 1); err != nil {
			return err
		}
		if lev+1 == L && c == 0 && calls == 2 {
			// The coarse direct solve is idempotent given the same RHS;
			// a second call would reproduce u_{lev+1} exactly.
			break
		}
	}

	correction := mat.NewVecDense(n, nil)
	p.MulVec(correction, e.u[lev+1])
	u.AddVec(u, correction)

	return e.smooth(a, u, f, e.params.Nu2)
}

// smooth runs sweeps Gauss–Seidel iterations against a, using the lower
// triangular part of a (including its diagonal) as the preconditioner,
// per spec.md §4.8's sweep formulation: each sweep recomputes the
// residual r = f − A·u fresh, then corrects u by the triangular solve
// z = L⁻¹r.
func (e *Engine) smooth(a *sparsemat.Matrix, u, f *mat.VecDense, sweeps int) error {
	n := f.Len()
	r := mat.NewVecDense(n, nil)
	z := mat.NewVecDense(n, nil)
	for s := 0; s < sweeps; s++ {
		a.MulVec(r, u)
		r.SubVec(f, r)
		if err := a.LowerSolve(z, r); err != nil {
			return fmt.Errorf("cycle: smoothing sweep %d: %w", s, err)
		}
		u.AddVec(u, z)
	}
	return nil
}

func (e *Engine) solveDirect(lev int) error {
	var x mat.VecDense
	if err := e.chol.SolveVecTo(&x, e.f[lev]); err != nil {
		return fmt.Errorf("cycle: coarse direct solve: %w", err)
	}
	e.u[lev].CopyVec(&x)
	return nil
}
