// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

import "github.com/spasm-go/spasm/gfp"

// Triplet is an unordered intake buffer of (row, col, value) entries over
// GF(p). It is used only to accumulate raw (i,j,x) triples before
// compression to CSR; the sole outbound operation is Compress.
type Triplet struct {
	N, M int
	P    uint64

	I, J []int    // row, column indices, length Nz
	X    []uint64 // values, length Nz, or nil for a pattern-only triplet

	Nz    int // number of entries currently stored
	Nzmax int // capacity of I/J/X
}

// NewTriplet allocates an empty Triplet with n rows, m columns, modulus p
// and room for an initial nzmax entries.
func NewTriplet(n, m, nzmax int, p uint64, withValues bool) *Triplet {
	mustPositive("n", n)
	mustPositive("m", m)
	if gfp.Valid(int64(p)) != nil {
		panic(ErrModulus)
	}
	t := &Triplet{
		N: n, M: m, P: p,
		I:     make([]int, nzmax),
		J:     make([]int, nzmax),
		Nzmax: nzmax,
	}
	if withValues {
		t.X = make([]uint64, nzmax)
	}
	return t
}

// Add appends one entry (i, j, x) to the triplet buffer, growing storage
// geometrically if needed. x is ignored (but must be supplied as 0) if the
// triplet is pattern-only.
func (t *Triplet) Add(i, j int, x uint64) {
	mustNonNegative("i", i)
	mustNonNegative("j", j)
	if i >= t.N || j >= t.M {
		panic(ErrShape)
	}
	if t.Nz >= t.Nzmax {
		newCap := 2*t.Nzmax + 1
		t.I = growInts(t.I, newCap)
		t.J = growInts(t.J, newCap)
		if t.X != nil {
			t.X = growUint64s(t.X, newCap)
		}
		t.Nzmax = newCap
	}
	t.I[t.Nz] = i
	t.J[t.Nz] = j
	if t.X != nil {
		t.X[t.Nz] = x % t.P
	}
	t.Nz++
}

// Compress converts the triplet buffer into CSR form. Row i of the result
// holds, in the order of first appearance among the triplets with I==i,
// one entry per distinct column touched by row i, with duplicate (i,j)
// triples summed modulo p. It is a standard two-pass counting sort by row.
func (t *Triplet) Compress() *CSR {
	n, m := t.N, t.M
	withValues := t.X != nil

	// Pass 1: count entries per row.
	rowCount := make([]int, n+1)
	for k := 0; k < t.Nz; k++ {
		rowCount[t.I[k]+1]++
	}
	for i := 0; i < n; i++ {
		rowCount[i+1] += rowCount[i]
	}

	out := Alloc(n, m, t.Nz, t.P, withValues)
	copy(out.Rowptr, rowCount)

	// colOfRow[i][j] -> position in out.Colidx/out.Values, for dedup.
	colOfRow := make([]map[int]int, n)
	write := append([]int(nil), rowCount[:n]...)

	for k := 0; k < t.Nz; k++ {
		i, j := t.I[k], t.J[k]
		if colOfRow[i] == nil {
			colOfRow[i] = make(map[int]int)
		}
		if pos, ok := colOfRow[i][j]; ok {
			if withValues {
				out.Values[pos] = gfp.Add(out.Values[pos], t.X[k], t.P)
			}
			continue
		}
		pos := write[i]
		write[i]++
		colOfRow[i][j] = pos
		out.Colidx[pos] = j
		if withValues {
			out.Values[pos] = t.X[k] % t.P
		}
	}

	// Compact out: duplicates left gaps between write[i] and rowCount[i+1].
	nz := 0
	newRowptr := make([]int, n+1)
	for i := 0; i < n; i++ {
		newRowptr[i] = nz
		for px := rowCount[i]; px < write[i]; px++ {
			out.Colidx[nz] = out.Colidx[px]
			if withValues {
				out.Values[nz] = out.Values[px]
			}
			nz++
		}
	}
	newRowptr[n] = nz
	out.Rowptr = newRowptr
	out.Realloc(-1)
	return out
}
