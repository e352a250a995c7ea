// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmio reads and writes the NIST Matrix Market coordinate and
// array formats used for this solver's external interfaces (spec.md §6):
// a sparse matrix in coordinate form and a dense vector in array form.
//
// No example in the retrieved corpus imports a Matrix Market library, so
// this package is implemented directly against the format's published
// grammar using only the standard library; see DESIGN.md.
package mmio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/gonum-community/amg/sparsemat"
)

const bannerPrefix = "%%MatrixMarket"

// LoadMatrix reads a sparse matrix in Matrix Market coordinate format
// and canonicalizes it to compressed form. A "symmetric" banner qualifier
// causes each off-diagonal triplet to be mirrored, matching the format's
// convention of storing only one triangle.
func LoadMatrix(r io.Reader) (*sparsemat.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	symmetric, err := readBanner(sc, "matrix", "coordinate")
	if err != nil {
		return nil, err
	}

	rows, cols, nnz, err := readDims(sc, 3)
	if err != nil {
		return nil, err
	}

	trips := make([]sparsemat.Triplet, 0, nnz)
	for n := 0; n < nnz; n++ {
		line, ok := nextDataLine(sc)
		if !ok {
			return nil, fmt.Errorf("mmio: expected %d entries, found %d", nnz, n)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("mmio: malformed coordinate entry %q", line)
		}
		i, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("mmio: row index: %w", err)
		}
		j, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("mmio: column index: %w", err)
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("mmio: value: %w", err)
		}
		i--
		j--
		trips = append(trips, sparsemat.Triplet{Row: i, Col: j, Value: v})
		if symmetric && i != j {
			trips = append(trips, sparsemat.Triplet{Row: j, Col: i, Value: v})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return sparsemat.NewFromTriplets(rows, cols, trips), nil
}

// LoadVector reads a dense vector in Matrix Market array format.
func LoadVector(r io.Reader) (*mat.VecDense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if _, err := readBanner(sc, "matrix", "array"); err != nil {
		return nil, err
	}
	rows, cols, _, err := readDims(sc, 2)
	if err != nil {
		return nil, err
	}
	if cols != 1 {
		return nil, fmt.Errorf("mmio: expected a column vector, got %d columns", cols)
	}

	v := mat.NewVecDense(rows, nil)
	for n := 0; n < rows; n++ {
		line, ok := nextDataLine(sc)
		if !ok {
			return nil, fmt.Errorf("mmio: expected %d entries, found %d", rows, n)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return nil, fmt.Errorf("mmio: entry %d: %w", n, err)
		}
		v.SetVec(n, val)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// SaveVector writes v in Matrix Market array format.
func SaveVector(w io.Writer, v *mat.VecDense) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "%%MatrixMarket matrix array real general"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%d 1\n", v.Len()); err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		if _, err := fmt.Fprintf(bw, "%.17g\n", v.AtVec(i)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func readBanner(sc *bufio.Scanner, object, format string) (symmetric bool, err error) {
	if !sc.Scan() {
		return false, fmt.Errorf("mmio: missing banner line")
	}
	fields := strings.Fields(strings.ToLower(sc.Text()))
	if len(fields) < 4 || fields[0] != strings.ToLower(bannerPrefix) {
		return false, fmt.Errorf("mmio: not a Matrix Market file")
	}
	if fields[1] != object || fields[2] != format {
		return false, fmt.Errorf("mmio: expected %q %q, got %q %q", object, format, fields[1], fields[2])
	}
	for _, qualifier := range fields[4:] {
		if qualifier == "symmetric" {
			symmetric = true
		}
	}
	return symmetric, nil
}

func nextDataLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		return line, true
	}
	return "", false
}

func readDims(sc *bufio.Scanner, want int) (rows, cols, nnz int, err error) {
	line, ok := nextDataLine(sc)
	if !ok {
		return 0, 0, 0, fmt.Errorf("mmio: missing dimensions line")
	}
	fields := strings.Fields(line)
	if len(fields) < want {
		return 0, 0, 0, fmt.Errorf("mmio: malformed dimensions line %q", line)
	}
	rows, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("mmio: rows: %w", err)
	}
	cols, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("mmio: cols: %w", err)
	}
	if want == 3 {
		nnz, err = strconv.Atoi(fields[2])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("mmio: nnz: %w", err)
		}
	}
	return rows, cols, nnz, nil
}
