// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solve implements the outer solvers of spec.md §4.9: a
// stationary AMG iteration, and an AMG-preconditioned conjugate gradient
// (PCG) where each preconditioner application is one μ-cycle.
package solve

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gonum-community/amg/cycle"
	"github.com/gonum-community/amg/sparsemat"
)

// Result reports the outcome of an outer solve: the iteration count, the
// geometric-mean convergence factor ρ, and a flag that is 0 on success
// and 1 if maxiter was exhausted without reaching tolerance. DidNotConverge
// is communicated through Flag, not through the returned error.
type Result struct {
	Iter int
	Rho  float64
	Flag int
}

func convergenceFactor(rFinal, r0 float64, iter int) float64 {
	if iter == 0 || r0 == 0 {
		return 0
	}
	return math.Exp(math.Log(rFinal/r0) / float64(iter))
}

// AMG runs the stationary multigrid iteration: u_0 starts at zero, and
// every iteration applies one full μ-cycle (engine.Run) directly to the
// running iterate against the fixed right-hand side f, per spec.md §4.9.
func AMG(engine *cycle.Engine, a0 *sparsemat.Matrix, f *mat.VecDense, tol float64, maxiter int) (*mat.VecDense, Result, error) {
	n := f.Len()
	engine.SetRHS(f)

	residual := mat.NewVecDense(n, nil)
	norm := func() float64 {
		a0.MulVec(residual, engine.Solution())
		residual.SubVec(f, residual)
		return mat.Norm(residual, 2)
	}

	r0 := norm()
	fnorm := math.Max(mat.Norm(f, 2), 1)

	iter := 0
	rN := r0
	for rN/fnorm > tol && iter < maxiter {
		if err := engine.Run(); err != nil {
			return nil, Result{}, err
		}
		rN = norm()
		iter++
	}

	flag := 0
	if rN/fnorm > tol {
		flag = 1
	}

	out := mat.NewVecDense(n, nil)
	out.CopyVec(engine.Solution())
	return out, Result{Iter: iter, Rho: convergenceFactor(rN, r0, iter), Flag: flag}, nil
}

// PCG runs preconditioned conjugate gradient on a0 x = f, using one
// μ-cycle of engine (applied to the current residual with a zero initial
// guess) as the preconditioner M⁻¹, per spec.md §4.9.
func PCG(engine *cycle.Engine, a0 *sparsemat.Matrix, f *mat.VecDense, tol float64, maxiter int) (*mat.VecDense, Result, error) {
	n := f.Len()
	fnorm := math.Max(mat.Norm(f, 2), 1)

	x := mat.NewVecDense(n, nil)
	r := mat.NewVecDense(n, nil)
	r.CopyVec(f)

	applyM := func() (*mat.VecDense, error) {
		engine.SetRHS(r)
		if err := engine.Run(); err != nil {
			return nil, err
		}
		z := mat.NewVecDense(n, nil)
		z.CopyVec(engine.Solution())
		return z, nil
	}

	r0 := mat.Norm(r, 2)

	z, err := applyM()
	if err != nil {
		return nil, Result{}, err
	}

	var p *mat.VecDense
	var xiPrev float64
	iter := 0
	zNorm := r0

	for {
		zNorm = mat.Norm(z, 2)
		if zNorm/fnorm <= tol || iter >= maxiter {
			break
		}

		xi := mat.Dot(r, z)
		if iter == 0 {
			p = mat.NewVecDense(n, nil)
			p.CopyVec(z)
		} else {
			beta := xi / xiPrev
			next := mat.NewVecDense(n, nil)
			next.AddScaledVec(z, beta, p)
			p = next
		}

		q := mat.NewVecDense(n, nil)
		a0.MulVec(q, p)
		alpha := xi / mat.Dot(p, q)

		x.AddScaledVec(x, alpha, p)
		r.AddScaledVec(r, -alpha, q)
		xiPrev = xi
		iter++

		z, err = applyM()
		if err != nil {
			return nil, Result{}, err
		}
	}

	flag := 0
	if zNorm/fnorm > tol {
		flag = 1
	}
	return x, Result{Iter: iter, Rho: convergenceFactor(zNorm, r0, iter), Flag: flag}, nil
}
