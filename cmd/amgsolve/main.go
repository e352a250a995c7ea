// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command amgsolve loads a sparse SPD matrix and a right-hand side in
// Matrix Market format and solves it with algebraic multigrid, mirroring
// the original driver's flow: load, SPD pre-check, build hierarchy, run
// the selected outer method, print diagnostics, optionally save the
// solution.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/gonum-community/amg"
	"github.com/gonum-community/amg/mmio"
	"github.com/gonum-community/amg/sparsemat"
)

func main() {
	var (
		matrixPath = flag.String("matrix", "", "path to the matrix in Matrix Market coordinate format (required)")
		rhsPath    = flag.String("rhs", "", "path to the right-hand side in Matrix Market array format (required)")
		outPath    = flag.String("out", "", "optional path to save the solution vector")
		theta      = flag.Float64("theta", 0.25, "strong-connection threshold, 0 < theta <= 1")
		nlevel     = flag.Int("nlevel", 2, "number of coarse levels beyond the finest")
		nu1        = flag.Int("nu1", 1, "pre-smoothing sweeps")
		nu2        = flag.Int("nu2", 1, "post-smoothing sweeps")
		mu         = flag.Int("mu", 1, "cycle index: 1 for V-cycle, 2 for W-cycle")
		tol        = flag.Float64("tol", 1e-8, "outer solver tolerance")
		maxiter    = flag.Int("maxiter", 100, "outer solver iteration cap")
		fem        = flag.String("fem", "cg", "coarsening path: cg or dg")
		method     = flag.String("method", "amg", "outer driver: amg or pcg")
	)
	flag.Parse()

	if *matrixPath == "" || *rhsPath == "" {
		fmt.Fprintln(os.Stderr, "amgsolve: -matrix and -rhs are required")
		flag.Usage()
		os.Exit(2)
	}

	femKind, err := parseFEM(*fem)
	if err != nil {
		log.Fatalf("amgsolve: %v", err)
	}
	methodKind, err := parseMethod(*method)
	if err != nil {
		log.Fatalf("amgsolve: %v", err)
	}

	a0, err := loadMatrix(*matrixPath)
	if err != nil {
		log.Fatalf("amgsolve: %v", err)
	}
	f, err := loadVector(*rhsPath)
	if err != nil {
		log.Fatalf("amgsolve: %v", err)
	}

	params := amg.Params{
		Theta:   *theta,
		NLevel:  *nlevel,
		Nu1:     *nu1,
		Nu2:     *nu2,
		Mu:      *mu,
		Tol:     *tol,
		MaxIter: *maxiter,
		FEM:     femKind,
		Method:  methodKind,
	}

	solver, err := amg.NewSolver(a0, params)
	if err != nil {
		log.Fatalf("amgsolve: setup failed: %v", err)
	}

	x, report, err := solver.Solve(f)
	if err != nil {
		log.Fatalf("amgsolve: solve failed: %v", err)
	}

	if _, err := report.WriteTo(os.Stdout); err != nil {
		log.Fatalf("amgsolve: writing report: %v", err)
	}

	if *outPath != "" {
		if err := saveVector(*outPath, x); err != nil {
			log.Fatalf("amgsolve: saving solution: %v", err)
		}
	}

	if !report.Converged() {
		os.Exit(1)
	}
}

func parseFEM(s string) (amg.FEM, error) {
	switch s {
	case "cg":
		return amg.CG, nil
	case "dg":
		return amg.DG, nil
	default:
		return 0, fmt.Errorf("unknown -fem %q, want cg or dg", s)
	}
}

func parseMethod(s string) (amg.Method, error) {
	switch s {
	case "amg":
		return amg.AMGStandalone, nil
	case "pcg":
		return amg.PCG, nil
	default:
		return 0, fmt.Errorf("unknown -method %q, want amg or pcg", s)
	}
}

func loadMatrix(path string) (*sparsemat.Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return mmio.LoadMatrix(file)
}

func loadVector(path string) (*mat.VecDense, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return mmio.LoadVector(file)
}

func saveVector(path string, v *mat.VecDense) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return mmio.SaveVector(file, v)
}
