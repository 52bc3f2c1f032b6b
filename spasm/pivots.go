// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

// FindPivots runs the three-pass pivot-discovery heuristic of spec.md §4.5
// (Faugère–Lachartre leftmost pivot, free-column pivots, cycle-free cheap
// pivots via alternating-path BFS) against a, mutating a in place (pivot
// entries are swapped to the head of their row) and returning the row
// permutation p (pivotal rows first, in a topological order of the
// pivotal columns, then non-pivotal non-empty rows, then empty rows) and
// the partial inverse column permutation qinv (qinv[j] = pivot row of
// column j, or NoPivot). The return value is npiv, the number of pivots
// found.
//
// All rows in p[:npiv] carry distinct pivots, the pivot is the first entry
// of each such row, and no cycles exist among pivotal columns under the
// edge relation of §4.3.
func FindPivots(a *CSR) (p, qinv []int, npiv int) {
	n, m := a.N, a.M
	p = make([]int, n)
	qinv = make([]int, m)
	for j := range qinv {
		qinv[j] = NoPivot
	}

	// One shared Workspace backs all three passes' scratch arrays (w, queue,
	// and the DFS buffers used by assembleRowPermutation), so none of them
	// is reallocated per pass.
	ws := NewWorkspace(m)

	npivFL := findFLPivots(a, p, qinv, ws.w)
	npiv = findCycleFreePivots(a, p, qinv, npivFL, ws.w, ws.queue)

	assembleRowPermutation(a, p, qinv, npiv, ws)
	return p, qinv, npiv
}

// findFLPivots runs passes 1 (Faugère–Lachartre leftmost pivot) and 2 (free
// columns) of §4.5, writing pivotal rows into p[:npiv] and returning npiv.
// w is scratch of length m, fully overwritten before it is read.
func findFLPivots(a *CSR, p, qinv, w []int) int {
	n, m := a.N, a.M

	// --- Pass 1: Faugère–Lachartre leftmost pivot ---------------------
	for i := 0; i < n; i++ {
		cols, _ := a.Row(i)
		if len(cols) == 0 {
			continue
		}
		j, idx := cols[0], 0
		for k := 1; k < len(cols); k++ {
			if cols[k] < j {
				j, idx = cols[k], k
			}
		}
		lo := a.Rowptr[i]
		Swap(a.Colidx, a.Values, lo, lo+idx)
		if qinv[j] == NoPivot || a.RowWeight(i) < a.RowWeight(qinv[j]) {
			qinv[j] = i
		}
	}

	npiv := 0
	for j := 0; j < m; j++ {
		if qinv[j] != NoPivot {
			p[npiv] = qinv[j]
			npiv++
		}
	}

	// --- Pass 2: free columns ------------------------------------------
	for j := range w {
		w[j] = 1
	}
	for i := 0; i < npiv; i++ {
		cols, _ := a.Row(p[i])
		for _, j := range cols {
			w[j] = 0
		}
	}

	for i := 0; i < n; i++ {
		cols, _ := a.Row(i)
		if len(cols) == 0 {
			continue
		}
		if qinv[cols[0]] == i {
			continue // already pivotal
		}
		for k, j := range cols {
			if w[j] == 0 {
				continue
			}
			// new pivot found
			p[npiv] = i
			npiv++
			qinv[j] = i
			lo := a.Rowptr[i]
			Swap(a.Colidx, a.Values, lo, lo+k)
			cols, _ = a.Row(i)
			for _, j2 := range cols {
				w[j2] = 0
			}
			break
		}
	}
	return npiv
}

// findCycleFreePivots runs pass 3 (§4.5) starting from npivStart existing
// pivots, appending newly discovered pivotal rows to p and returning the
// new total pivot count. w and queue are scratch of length m, shared with
// the other passes; w may hold arbitrary leftover values from pass 2 and is
// zeroed here, since pass 3's per-row invariant (w is 0 outside the row
// currently being processed) depends on starting from an all-zero array.
func findCycleFreePivots(a *CSR, p, qinv []int, npivStart int, w, queue []int) int {
	n := a.N
	for j := range w {
		w[j] = 0
	}
	npiv := npivStart

	for i := 0; i < n; i++ {
		cols, _ := a.Row(i)
		if len(cols) == 0 {
			continue
		}
		if qinv[cols[0]] == i {
			continue // already pivotal
		}

		head, tail, surviving := 0, 0, 0
		for _, j := range cols {
			if qinv[j] == NoPivot {
				w[j] = 1
				surviving++
			} else {
				w[j] = -1
				queue[tail] = j
				tail++
			}
		}

		for head < tail && surviving > 0 {
			j := queue[head]
			head++
			I := qinv[j]
			if I == NoPivot {
				continue
			}
			rowCols, _ := a.Row(I)
			for _, j2 := range rowCols {
				if w[j2] < 0 {
					continue
				}
				queue[tail] = j2
				tail++
				surviving -= w[j2]
				w[j2] = -1
			}
		}

		if surviving > 0 {
			for k, j := range cols {
				if w[j] == 1 {
					lo := a.Rowptr[i]
					Swap(a.Colidx, a.Values, lo, lo+k)
					qinv[j] = i
					p[npiv] = i
					npiv++
					break
				}
			}
		}

		for _, j := range cols {
			w[j] = 0
		}
		for k := 0; k < tail; k++ {
			w[queue[k]] = 0
		}
	}
	return npiv
}

// assembleRowPermutation computes a topological order of the pivotal
// columns by DFS and reorders p[:npiv] accordingly, then appends
// non-pivotal non-empty rows and finally empty rows. It uses ws's DFS
// buffers (output/stack/pstack/marks), untouched by the earlier passes.
func assembleRowPermutation(a *CSR, p, qinv []int, npiv int, ws *Workspace) {
	n, m := a.N, a.M

	top := m
	for j := 0; j < m; j++ {
		if qinv[j] != NoPivot && ws.marks[j] == 0 {
			top = dfs(j, a, top, ws.output, ws.stack, ws.pstack, ws.marks, qinv)
		}
	}

	k := 0
	for _, j := range ws.output[top:m] {
		if i := qinv[j]; i != NoPivot {
			p[k] = i
			k++
		}
	}
	if k != npiv {
		panic("spasm: pivot row permutation assembly invariant violated")
	}

	for i := 0; i < n; i++ {
		if a.Rowptr[i] == a.Rowptr[i+1] {
			continue
		}
		cols, _ := a.Row(i)
		if qinv[cols[0]] != i {
			p[k] = i
			k++
		}
	}
	for i := 0; i < n; i++ {
		if a.Rowptr[i] == a.Rowptr[i+1] {
			p[k] = i
			k++
		}
	}
}
