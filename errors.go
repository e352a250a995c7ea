// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amg

import (
	"errors"
	"fmt"
)

// ErrNotSPD is returned by NewSolver when the finest-level matrix fails a
// Cholesky pre-check, the *NumericalIssue* error kind of spec.md §7
// applied at setup time (the matching bottom-level check lives in
// package cycle).
var ErrNotSPD = errors.New("amg: matrix failed symmetric positive definite pre-check")

// InvalidParameterError reports a Params field outside its documented
// range, the *InvalidArgument* error kind of spec.md §7.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("amg: invalid parameter %s: %s", e.Field, e.Reason)
}

// DimensionMismatchError reports that the right-hand side vector's length
// does not match the solver's level-0 dimension.
type DimensionMismatchError struct {
	Want, Got int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("amg: dimension mismatch: want length %d, got %d", e.Want, e.Got)
}
