// Copyright ©2026 The AMG Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparsemat implements the row-major compressed sparse matrix
// type and the small set of kernels (matvec, transpose, sparse-sparse
// product, lower-triangular solve) that the AMG setup and cycle phases
// treat as external collaborators.
//
// The storage layout and the triplet-based assembly (Triplet, NewFromTriplets)
// follow the COO-to-CSR construction pattern used by james-bowman/sparse's
// Cholesky type (coo.ToCSR(), DoNonZero callbacks); Dims and At have the
// same signatures as in gonum's mat.Matrix interface, but *Matrix has no T
// method and so does not implement mat.Matrix.
package sparsemat

import "sort"

// Matrix is a row-major compressed sparse matrix of float64 values. Within
// each row, column indices are kept sorted ascending so At can binary
// search and row-wise algorithms can merge two rows in linear time.
type Matrix struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	data       []float64
}

// Triplet is one (row, column, value) coordinate-form entry used to
// assemble a Matrix.
type Triplet struct {
	Row, Col int
	Value    float64
}

// Dims returns the number of rows and columns of m.
func (m *Matrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// NNZ returns the number of stored (structurally nonzero) entries.
func (m *Matrix) NNZ() int {
	return len(m.data)
}

// New returns an empty r×c matrix with no stored entries.
func New(r, c int) *Matrix {
	return &Matrix{rows: r, cols: c, rowPtr: make([]int, r+1)}
}

// NewFromTriplets builds a compressed matrix from coordinate-form entries.
// Entries that share a (row, col) are summed, matching Eigen's
// setFromTriplets semantics used by the original implementation.
func NewFromTriplets(r, c int, trips []Triplet) *Matrix {
	counts := make([]int, r+1)
	for _, t := range trips {
		counts[t.Row+1]++
	}
	rowPtr := make([]int, r+1)
	for i := 0; i < r; i++ {
		rowPtr[i+1] = rowPtr[i] + counts[i+1]
	}

	colIdx := make([]int, len(trips))
	data := make([]float64, len(trips))
	cursor := append([]int(nil), rowPtr...)
	for _, t := range trips {
		pos := cursor[t.Row]
		colIdx[pos] = t.Col
		data[pos] = t.Value
		cursor[t.Row]++
	}

	m := &Matrix{rows: r, cols: c, rowPtr: rowPtr, colIdx: colIdx, data: data}
	m.sortAndDedupRows()
	return m
}

func (m *Matrix) sortAndDedupRows() {
	newColIdx := make([]int, 0, len(m.colIdx))
	newData := make([]float64, 0, len(m.data))
	newRowPtr := make([]int, m.rows+1)

	type entry struct {
		col int
		val float64
	}
	for i := 0; i < m.rows; i++ {
		start, end := m.rowPtr[i], m.rowPtr[i+1]
		row := make([]entry, end-start)
		for k := start; k < end; k++ {
			row[k-start] = entry{m.colIdx[k], m.data[k]}
		}
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })

		for k := 0; k < len(row); {
			j := k + 1
			sum := row[k].val
			for j < len(row) && row[j].col == row[k].col {
				sum += row[j].val
				j++
			}
			newColIdx = append(newColIdx, row[k].col)
			newData = append(newData, sum)
			k = j
		}
		newRowPtr[i+1] = len(newColIdx)
	}

	m.rowPtr = newRowPtr
	m.colIdx = newColIdx
	m.data = newData
}

// At returns the value stored at (i, j), or 0 if no entry is stored there.
func (m *Matrix) At(i, j int) float64 {
	start, end := m.rowPtr[i], m.rowPtr[i+1]
	row := m.colIdx[start:end]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return m.data[start+k]
	}
	return 0
}

// DoRow calls f once for every stored entry in row i, in increasing column
// order.
func (m *Matrix) DoRow(i int, f func(col int, v float64)) {
	start, end := m.rowPtr[i], m.rowPtr[i+1]
	for k := start; k < end; k++ {
		f(m.colIdx[k], m.data[k])
	}
}

// DoNonZero calls f once for every stored entry of m, row by row.
func (m *Matrix) DoNonZero(f func(i, j int, v float64)) {
	for i := 0; i < m.rows; i++ {
		m.DoRow(i, func(j int, v float64) { f(i, j, v) })
	}
}

// Diagonal returns the diagonal entries of m as a dense slice of length
// min(rows, cols).
func (m *Matrix) Diagonal() []float64 {
	n := m.rows
	if m.cols < n {
		n = m.cols
	}
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = m.At(i, i)
	}
	return d
}
