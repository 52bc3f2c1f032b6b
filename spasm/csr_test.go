// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// entry is a row/col/value triple, used as a comparable test fixture across
// triplet compression, SMS round-tripping, and factorization checks.
type entry struct {
	I, J int
	X    uint64
}

// fromDense builds a CSR directly from a dense row-major matrix, skipping
// explicit zero entries, for use as a compact test fixture.
func fromDense(p uint64, d [][]uint64) *CSR {
	n := len(d)
	m := len(d[0])
	tr := NewTriplet(n, m, 0, p, true)
	for i, row := range d {
		for j, x := range row {
			if x%p != 0 {
				tr.Add(i, j, x)
			}
		}
	}
	return tr.Compress()
}

func denseToEntries(d [][]uint64) []entry {
	var out []entry
	for i, row := range d {
		for j, x := range row {
			if x != 0 {
				out = append(out, entry{i, j, x})
			}
		}
	}
	return out
}

func TestTripletCompressSumsDuplicates(t *testing.T) {
	const p = 257
	tr := NewTriplet(3, 3, 0, p, true)
	tr.Add(0, 0, 1)
	tr.Add(0, 0, 5) // duplicate: should sum to 6
	tr.Add(1, 2, 3)
	tr.Add(2, 1, 10)

	a := tr.Compress()
	if a.N != 3 || a.M != 3 {
		t.Fatalf("Compress dims = %d,%d, want 3,3", a.N, a.M)
	}
	if a.Nnz() != 3 {
		t.Fatalf("Nnz() = %d, want 3", a.Nnz())
	}

	got := denseToEntries(a.Dense())
	want := []entry{{0, 0, 6}, {1, 2, 3}, {2, 1, 10}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compress() mismatch (-want +got):\n%s", diff)
	}
}

func TestCSRGrowAndSwap(t *testing.T) {
	a := Alloc(2, 2, 1, 257, true)
	a.Rowptr[0] = 0
	a.growRoom(4)
	if a.Nzmax < 4 {
		t.Fatalf("growRoom(4) left Nzmax = %d", a.Nzmax)
	}
	a.Colidx[0], a.Values[0] = 1, 7
	a.Colidx[1], a.Values[1] = 0, 9
	Swap(a.Colidx, a.Values, 0, 1)
	if a.Colidx[0] != 0 || a.Values[0] != 9 {
		t.Fatalf("Swap did not move column+value together: got col=%d val=%d", a.Colidx[0], a.Values[0])
	}
}

func TestResizePreservesPrefix(t *testing.T) {
	tr := NewTriplet(2, 2, 0, 257, true)
	tr.Add(0, 0, 1)
	tr.Add(1, 1, 2)
	a := tr.Compress()
	a.Resize(4, 4)
	if a.N != 4 || a.M != 4 {
		t.Fatalf("Resize dims = %d,%d", a.N, a.M)
	}
	if a.Nnz() != 2 {
		t.Fatalf("Resize changed nnz to %d, want 2", a.Nnz())
	}
	if w := a.RowWeight(2); w != 0 {
		t.Fatalf("new row weight = %d, want 0", w)
	}
}
