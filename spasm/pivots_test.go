// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

import "testing"

// Property 4: after FindPivots, every pivotal row's first entry sits at a
// column distinct from every other pivotal row's first entry.
func TestFindPivotsDistinctHeads(t *testing.T) {
	a := fromDense(testPrime, [][]uint64{
		{1, 0, 2, 0},
		{0, 1, 0, 3},
		{5, 0, 0, 0}, // shares column 0 with row 0; FL keeps the sparser row
		{0, 0, 0, 1},
	})
	p, qinv, npiv := FindPivots(a)
	seen := make(map[int]bool)
	for i := 0; i < npiv; i++ {
		cols, _ := a.Row(p[i])
		j := cols[0]
		if seen[j] {
			t.Fatalf("column %d claimed by more than one pivotal row", j)
		}
		seen[j] = true
		if qinv[j] != p[i] {
			t.Errorf("Qinv[%d] = %d, want %d", j, qinv[j], p[i])
		}
	}
}

// FreeColumnPivot exercises pass 2 of §4.5: row 1 loses its leftmost
// column to the sparser row 0 in pass 1, and its next column is closed by
// row 0, so it must be discovered as a free-column pivot on its only open
// column.
func TestFindPivotsFreeColumn(t *testing.T) {
	a := fromDense(testPrime, [][]uint64{
		{1, 1, 0}, // FL pivot: column 0
		{1, 1, 1}, // columns 0 and 1 are closed by row 0; column 2 is free
	})
	_, qinv, npiv := FindPivots(a)
	if npiv != 2 {
		t.Fatalf("npiv = %d, want 2", npiv)
	}
	if qinv[2] != 1 {
		t.Errorf("Qinv[2] = %d, want 1 (free-column pivot)", qinv[2])
	}
}

func TestSortRowsByWeight(t *testing.T) {
	a := fromDense(testPrime, [][]uint64{
		{1, 1, 1},
		{1, 0, 0},
		{1, 1, 0},
	})
	order := SortRowsByWeight(a)
	for k := 1; k < len(order); k++ {
		if a.RowWeight(order[k-1]) > a.RowWeight(order[k]) {
			t.Fatalf("SortRowsByWeight not sorted at %d: weights %d, %d", k, a.RowWeight(order[k-1]), a.RowWeight(order[k]))
		}
	}
}

func TestPermutePivotsUpperTriangular(t *testing.T) {
	a := fromDense(testPrime, [][]uint64{
		{0, 1, 1},
		{1, 0, 1},
		{0, 0, 1},
	})
	p, qinv, npiv := FindPivots(a)
	if npiv != 3 {
		t.Fatalf("npiv = %d, want 3", npiv)
	}
	permuted := PermutePivots(a, p, qinv, npiv)
	d := permuted.Dense()
	for i := 0; i < 3; i++ {
		for j := 0; j < i; j++ {
			if d[i][j] != 0 {
				t.Errorf("permuted[%d][%d] = %d, want 0 (below diagonal)", i, j, d[i][j])
			}
		}
	}
}
