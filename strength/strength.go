// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package strength classifies the off-diagonal entries of a level matrix
// into strong-dependence, strong-influence, and weak neighborhoods, the
// first step of Ruge–Stüben coarsening.
package strength

import (
	"fmt"
	"math"

	"github.com/gonum-community/amg/amgset"
	"github.com/gonum-community/amg/sparsemat"
)

// Result holds, for every row i of the analyzed matrix, its strong
// dependence set S[i], strong influence set St[i], and weak set Dw[i].
type Result struct {
	S  []*amgset.Set
	St []*amgset.Set
	Dw []*amgset.Set
}

// Analyze computes the strength-of-connection classification for matrix a
// using threshold theta (0 < theta <= 1). For every stored off-diagonal
// entry (i,j): it goes into S[i] if |a[i,j]| >= theta*maxRow[i], else into
// Dw[i]; independently, it goes into St[i] if |a[i,j]| >= theta*maxCol[j].
func Analyze(a *sparsemat.Matrix, theta float64) (*Result, error) {
	if theta <= 0 || theta > 1 {
		return nil, fmt.Errorf("strength: theta=%v out of range (0,1]", theta)
	}

	n, _ := a.Dims()
	maxRow := make([]float64, n)
	maxCol := make([]float64, n)
	a.DoNonZero(func(i, j int, v float64) {
		if i == j {
			return
		}
		av := math.Abs(v)
		if av > maxRow[i] {
			maxRow[i] = av
		}
		if av > maxCol[j] {
			maxCol[j] = av
		}
	})

	res := &Result{
		S:  make([]*amgset.Set, n),
		St: make([]*amgset.Set, n),
		Dw: make([]*amgset.Set, n),
	}
	for i := range res.S {
		res.S[i] = amgset.New(0)
		res.St[i] = amgset.New(0)
		res.Dw[i] = amgset.New(0)
	}

	a.DoNonZero(func(i, j int, v float64) {
		if i == j {
			return
		}
		av := math.Abs(v)
		if av >= theta*maxRow[i] {
			res.S[i].Push(j)
		} else {
			res.Dw[i].Push(j)
		}
		if av >= theta*maxCol[j] {
			res.St[i].Push(j)
		}
	})

	return res, nil
}
