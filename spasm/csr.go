// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spasm implements exact rank and PLUQ factorization of large,
// extremely sparse matrices over a prime field GF(p), stored in
// compressed-sparse-row (CSR) form. It is the sparse analogue, for a
// modular field rather than float64, of the dense factorizations in
// gonum.org/v1/gonum/mat: a CSR owns its backing arrays outright and grows
// them geometrically, the way mat.Dense owns and reallocates its backing
// slice.
package spasm

import "github.com/spasm-go/spasm/gfp"

// CSR is a sparse matrix over GF(p) in compressed-sparse-row form.
//
// Entries of row i live at indices [Rowptr[i], Rowptr[i+1]) of Colidx (and,
// if the matrix is not pattern-only, of Values). Column indices within a
// row are not required to be sorted: several algorithms deliberately swap a
// distinguished entry (a pivot) to the head of its row, Swap-ing both the
// column index and the value in lockstep.
type CSR struct {
	N, M int    // row and column counts
	P    uint64 // field modulus

	Rowptr []int    // length N+1
	Colidx []int    // length Nzmax, Colidx[:Rowptr[N]] populated
	Values []uint64 // length Nzmax, or nil for a pattern-only matrix

	Nzmax int // capacity of Colidx/Values
}

// Alloc allocates a CSR with n rows, m columns, modulus p, and room for an
// initial nzmax entries. If withValues is false the matrix is pattern-only:
// Values is nil and every stored entry is implicitly present (a 1).
func Alloc(n, m, nzmax int, p uint64, withValues bool) *CSR {
	mustPositive("n", n)
	mustPositive("m", m)
	mustNonNegative("nzmax", nzmax)
	if err := gfp.Valid(int64(p)); err != nil {
		panic(ErrModulus)
	}
	a := &CSR{
		N:      n,
		M:      m,
		P:      p,
		Rowptr: make([]int, n+1),
		Colidx: make([]int, nzmax),
		Nzmax:  nzmax,
	}
	if withValues {
		a.Values = make([]uint64, nzmax)
	}
	return a
}

// HasValues reports whether the matrix stores numerical values, as opposed
// to being a pattern-only (0/1) matrix.
func (a *CSR) HasValues() bool { return a.Values != nil }

// Nnz returns the number of stored entries, Rowptr[N].
func (a *CSR) Nnz() int { return a.Rowptr[a.N] }

// RowWeight returns the number of stored entries in row i.
func (a *CSR) RowWeight(i int) int { return a.Rowptr[i+1] - a.Rowptr[i] }

// Row returns views of the column indices and (if present) values of row i.
// The returned slices alias the matrix's backing storage and are invalidated
// by any subsequent Realloc.
func (a *CSR) Row(i int) (cols []int, vals []uint64) {
	lo, hi := a.Rowptr[i], a.Rowptr[i+1]
	cols = a.Colidx[lo:hi]
	if a.Values != nil {
		vals = a.Values[lo:hi]
	}
	return cols, vals
}

// Realloc resizes the entry arrays (Colidx and, if present, Values) to hold
// newNzmax entries. A negative newNzmax means "shrink to fit": the arrays
// are resized to exactly Nnz(). Callers must re-fetch any slice obtained
// from Row or the raw Colidx/Values fields after calling Realloc, since the
// backing array may move.
func (a *CSR) Realloc(newNzmax int) {
	if newNzmax < 0 {
		newNzmax = a.Nnz()
	}
	a.Colidx = growInts(a.Colidx, newNzmax)
	if a.Values != nil {
		a.Values = growUint64s(a.Values, newNzmax)
	}
	a.Nzmax = newNzmax
}

// growRoom ensures the entry arrays have room for at least needed total
// entries, growing geometrically (2*Nzmax + needed) in the manner of the
// PLUQ factorization's row-by-row writer.
func (a *CSR) growRoom(needed int) {
	if needed > a.Nzmax {
		a.Realloc(2*a.Nzmax + needed)
	}
}

func growInts(s []int, n int) []int {
	out := make([]int, n)
	copy(out, s)
	return out
}

func growUint64s(s []uint64, n int) []uint64 {
	out := make([]uint64, n)
	copy(out, s)
	return out
}

// Resize changes the declared dimensions of a to n' rows and m' columns.
// Rowptr is reallocated to length n'+1 with the existing prefix preserved
// (new rows, if any, start empty); storage for Colidx/Values is untouched.
// n and m may be 0: a rank-0 factor (an all-deficient matrix, a legitimate
// PLUQ result) resizes U or L down to zero rows or columns.
func (a *CSR) Resize(n, m int) {
	mustNonNegative("n", n)
	mustNonNegative("m", m)
	if n != a.N {
		rp := make([]int, n+1)
		k := copy(rp, a.Rowptr)
		last := a.Rowptr[a.N]
		for i := k; i <= n; i++ {
			rp[i] = last
		}
		a.Rowptr = rp
		a.N = n
	}
	a.M = m
}

// Swap exchanges entries at positions a and b of row-major storage index
// arrays idx and, if present, val, keeping a column index and its value
// together. It is how a pivot is moved to the head of its row.
func Swap(idx []int, val []uint64, a, b int) {
	idx[a], idx[b] = idx[b], idx[a]
	if val != nil {
		val[a], val[b] = val[b], val[a]
	}
}

// Clone returns a deep copy of a.
func (a *CSR) Clone() *CSR {
	out := &CSR{
		N: a.N, M: a.M, P: a.P, Nzmax: a.Nzmax,
		Rowptr: append([]int(nil), a.Rowptr...),
		Colidx: append([]int(nil), a.Colidx...),
	}
	if a.Values != nil {
		out.Values = append([]uint64(nil), a.Values...)
	}
	return out
}

// Dense returns a's entries as a dense n*m matrix of residues, for use by
// small test harnesses only (spec.md §1 places dense solvers out of scope
// for production code paths).
func (a *CSR) Dense() [][]uint64 {
	out := make([][]uint64, a.N)
	for i := range out {
		row := make([]uint64, a.M)
		cols, vals := a.Row(i)
		for k, j := range cols {
			v := uint64(1)
			if vals != nil {
				v = vals[k]
			}
			row[j] = v
		}
		out[i] = row
	}
	return out
}
