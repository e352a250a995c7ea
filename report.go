// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amg

import (
	"fmt"
	"io"
)

// Report carries the diagnostics spec.md §6 requires as output: the
// iteration count, the geometric-mean convergence factor ρ, and a flag
// that is 0 on success and 1 if the outer driver exhausted MaxIter
// without reaching Tol.
type Report struct {
	Iter int
	Rho  float64
	Flag int
}

// Converged reports whether the solve reached tolerance.
func (r Report) Converged() bool { return r.Flag == 0 }

// String formats the report the way a command-line driver prints it to
// the screen.
func (r Report) String() string {
	status := "converged"
	if !r.Converged() {
		status = "did not converge"
	}
	return fmt.Sprintf("iterations: %d\nconvergence factor (rho): %.6g\nstatus: %s\n", r.Iter, r.Rho, status)
}

// WriteTo writes the report's formatted text to w, implementing
// io.WriterTo so it can be used directly with a log or file handle.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}
