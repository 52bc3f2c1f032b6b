// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testPrime = 257

// denseMul multiplies two dense matrices over GF(p).
func denseMul(a, b [][]uint64, p uint64) [][]uint64 {
	n := len(a)
	k := len(b)
	m := len(b[0])
	out := make([][]uint64, n)
	for i := range out {
		out[i] = make([]uint64, m)
		for t := 0; t < k; t++ {
			if a[i][t] == 0 {
				continue
			}
			for j := 0; j < m; j++ {
				if b[t][j] == 0 {
					continue
				}
				out[i][j] = (out[i][j] + a[i][t]*b[t][j]) % p
			}
		}
	}
	return out
}

func permuteRowsDense(d [][]uint64, p []int) [][]uint64 {
	out := make([][]uint64, len(p))
	for i, pi := range p {
		out[i] = d[pi]
	}
	return out
}

// denseColPermute applies a full column permutation q (q[oldCol] = newCol) to a
// dense matrix with m columns, producing a matrix whose column newCol holds
// the old column q^-1[newCol].
func denseColPermute(d [][]uint64, q []int) [][]uint64 {
	m := len(q)
	out := make([][]uint64, len(d))
	for i, row := range d {
		nr := make([]uint64, m)
		for j, x := range row {
			nr[q[j]] = x
		}
		out[i] = nr
	}
	return out
}

func checkLUReconstructsPA(t *testing.T, a *CSR, f *Factorization) {
	t.Helper()
	pa := permuteRowsDense(a.Dense(), f.P)
	// U's columns were permuted through Qinv during finalization; apply the
	// same permutation to P*A before comparing.
	paQ := denseColPermute(pa, f.Qinv)

	if f.Rank == 0 {
		// L has 0 columns and U has 0 rows: their product is the n x m zero
		// matrix by definition (no factors to multiply), so the law reduces
		// to P*A*Q itself being all zero.
		for _, row := range paQ {
			for _, x := range row {
				if x != 0 {
					t.Fatalf("Rank = 0 but P*A*Q has a nonzero entry")
				}
			}
		}
		return
	}

	gotLU := denseMul(f.L.Dense(), f.U.Dense(), a.P)
	if diff := cmp.Diff(paQ, gotLU); diff != "" {
		t.Errorf("L*U != P*A*Q (-want +got):\n%s", diff)
	}
}

// S1 — 3x3 identity.
func TestLUIdentity(t *testing.T) {
	a := fromDense(testPrime, [][]uint64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	f := Factorize(a, Options{KeepL: true})
	if f.Rank != 3 {
		t.Fatalf("Rank = %d, want 3", f.Rank)
	}
	for j := 0; j < 3; j++ {
		if f.Qinv[j] != j {
			t.Errorf("Qinv[%d] = %d, want %d", j, f.Qinv[j], j)
		}
		if f.P[j] != j {
			t.Errorf("P[%d] = %d, want %d", j, f.P[j], j)
		}
	}
	checkLUReconstructsPA(t, a, f)
}

// S2 — rank-deficient 3x4.
func TestLURankDeficient(t *testing.T) {
	a := fromDense(testPrime, [][]uint64{
		{1, 1, 0, 0},
		{2, 2, 0, 0},
		{0, 0, 1, 0},
	})
	f := Factorize(a, Options{KeepL: true})
	if f.Rank != 2 {
		t.Fatalf("Rank = %d, want 2", f.Rank)
	}
	nPivotal := 0
	for _, qj := range f.Qinv {
		if qj < f.Rank {
			nPivotal++
		}
	}
	if nPivotal != 2 {
		t.Errorf("pivotal column count = %d, want 2", nPivotal)
	}
	checkLUReconstructsPA(t, a, f)
}

// S3 — pivot swap: leftmost entry must move to row head.
func TestFindPivotsSwapsLeftmostToHead(t *testing.T) {
	// Entries at columns 5 and 1, inserted in that order, so the leftmost
	// entry starts in the second storage slot of the row.
	tr := NewTriplet(1, 7, 0, testPrime, true)
	tr.Add(0, 5, 1)
	tr.Add(0, 1, 1)
	a := tr.Compress()
	_, qinv, npiv := FindPivots(a)
	if npiv != 1 {
		t.Fatalf("npiv = %d, want 1", npiv)
	}
	cols, _ := a.Row(0)
	if cols[0] != 1 {
		t.Errorf("row head column = %d, want 1 (leftmost)", cols[0])
	}
	if qinv[1] != 0 {
		t.Errorf("Qinv[1] = %d, want 0", qinv[1])
	}
}

// S4 — full-column matrix 4x4: A[i][j] = (i+1)(j+1) mod p, rank 1.
func TestLUFullColumnRankOne(t *testing.T) {
	d := make([][]uint64, 4)
	for i := range d {
		d[i] = make([]uint64, 4)
		for j := range d[i] {
			d[i][j] = uint64((i + 1) * (j + 1)) % testPrime
		}
	}
	a := fromDense(testPrime, d)
	f := Factorize(a, Options{KeepL: true})
	if f.Rank != 1 {
		t.Fatalf("Rank = %d, want 1", f.Rank)
	}
	checkLUReconstructsPA(t, a, f)
}

// Rank-0: an all-empty matrix (a valid SMS read: header plus an immediate
// "0 0 0" sentinel) must factor without panicking, with Rank == 0 and L/U
// resized down to 0 columns/rows respectively, both with and without
// KeepL.
func TestLUZeroMatrix(t *testing.T) {
	a := fromDense(testPrime, [][]uint64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})

	f := Factorize(a, Options{KeepL: true})
	if f.Rank != 0 {
		t.Fatalf("Rank = %d, want 0", f.Rank)
	}
	if f.L.M != 0 {
		t.Errorf("L.M = %d, want 0", f.L.M)
	}
	if f.U.N != 0 {
		t.Errorf("U.N = %d, want 0", f.U.N)
	}
	checkLUReconstructsPA(t, a, f)

	f2 := Factorize(a, Options{KeepL: false, DisableEarlyAbort: true})
	if f2.Rank != 0 {
		t.Fatalf("Rank = %d, want 0 (KeepL=false)", f2.Rank)
	}
}

// Property 3: KeepL true/false must agree on rank.
func TestRankIndependentOfKeepL(t *testing.T) {
	a := fromDense(testPrime, [][]uint64{
		{1, 1, 0, 0},
		{2, 2, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 2, 0},
	})
	f1 := Factorize(a, Options{KeepL: true})
	f2 := Factorize(a, Options{KeepL: false, DisableEarlyAbort: true})
	if f1.Rank != f2.Rank {
		t.Errorf("rank with KeepL=true: %d, KeepL=false: %d", f1.Rank, f2.Rank)
	}
}
