// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

import "sort"

// NoPivot is the sentinel used in a partial inverse column permutation
// (qinv) to mean "column j has no pivot yet."
const NoPivot = -1

// Identity returns the identity permutation of length k.
func Identity(k int) []int {
	p := make([]int, k)
	for i := range p {
		p[i] = i
	}
	return p
}

// Invert returns the inverse of permutation p: out[p[i]] = i.
func Invert(p []int) []int {
	out := make([]int, len(p))
	for i, pi := range p {
		out[pi] = i
	}
	return out
}

// Permute returns a new CSR with rows reordered by p and columns relabeled
// by q: out[i][j] = a[p[i]][q^-1[j]], i.e. row i of out is row p[i] of a
// with each column index j rewritten to q[j]. p and q must be full
// permutations of length a.N and a.M respectively (no -1 entries); use
// PermutePivots to permute by a list of pivotal rows instead. a may have 0
// columns (the L factor of a rank-0 factorization).
func Permute(a *CSR, p, q []int) *CSR {
	if len(p) != a.N || len(q) != a.M {
		panic(ErrShape)
	}
	nnz := a.Nnz()
	out := &CSR{
		N: a.N, M: a.M, P: a.P,
		Rowptr: make([]int, a.N+1),
		Colidx: make([]int, nnz),
		Nzmax:  nnz,
	}
	if a.HasValues() {
		out.Values = make([]uint64, nnz)
	}
	nz := 0
	for i := 0; i < a.N; i++ {
		out.Rowptr[i] = nz
		cols, vals := a.Row(p[i])
		for k, j := range cols {
			out.Colidx[nz] = q[j]
			if vals != nil {
				out.Values[nz] = vals[k]
			}
			nz++
		}
	}
	out.Rowptr[a.N] = nz
	return out
}

// PermutePivots returns a permuted copy of a in which the npiv pivotal rows
// named by p[0:npiv] (whose pivot is, per spec, the first entry of each
// such row) become the top-left principal submatrix, upper-triangular in
// its first npiv columns. The column permutation is built from the head
// entries of those rows: the pivot column of row p[i] becomes column i, and
// non-pivotal columns get indices npiv, npiv+1, ... in increasing column
// order. qinv is neither read nor modified.
func PermutePivots(a *CSR, p, qinv []int, npiv int) *CSR {
	q := make([]int, a.M)
	for j := range q {
		q[j] = NoPivot
	}
	for i := 0; i < npiv; i++ {
		cols, _ := a.Row(p[i])
		j := cols[0]
		q[j] = i
	}
	k := npiv
	for j := 0; j < a.M; j++ {
		if q[j] == NoPivot {
			q[j] = k
			k++
		}
	}
	return Permute(a, p, q)
}

// SortRowsByWeight returns a permutation of a's rows in non-decreasing
// order of row weight (number of stored entries), a convenience utility
// for callers who want to process sparser rows first, e.g. to feed PLUQ a
// favorable row_permutation. It defers to the standard library's sort
// rather than hand-rolling a partition scheme.
func SortRowsByWeight(a *CSR) []int {
	p := Identity(a.N)
	sort.SliceStable(p, func(x, y int) bool {
		return a.RowWeight(p[x]) < a.RowWeight(p[y])
	})
	return p
}
