// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

import "github.com/spasm-go/spasm/gfp"

// SparseForwardSolve computes x such that x*U == B[k,:] (mod U.P), where U
// is upper-triangular-ish: the pivot on column j, if any, is on row
// qinv[j]. ws.X and ws.marks must be zero on every column that will be
// touched on entry. This call leaves the solution in ws.X and the DFS marks
// set on the returned pattern; the caller clears both with ws.reset(top)
// before the next solve.
//
// It returns top such that ws.output[top:] is the set of columns where x is
// symbolically nonzero, ordered consistently with a topological sort of
// the dependency graph (§4.3): a pivotal column always appears before the
// pivot row's other entries have been folded into x. ws.X[j] holds the
// numerical value for j in ws.output[top:]; entries where cancellation
// produced exactly 0 are left in the pattern for the caller to filter
// (spec.md §9, "numerical cancellation vs structural nonzeros").
func SparseForwardSolve(U, B *CSR, k int, ws *Workspace, qinv []int) (top int) {
	p := U.P
	bCols, bVals := B.Row(k)

	top = reach(U, qinv, bCols, ws)

	// Scatter B[k,:] into the dense workspace on its own pattern.
	for idx, j := range bCols {
		v := uint64(1)
		if bVals != nil {
			v = bVals[idx]
		}
		ws.X[j] = v
	}

	// Eliminate in the order emitted by the DFS: for each column, if it is
	// pivotal, replace x[j] by the L-coefficient and fold the pivot row's
	// tail into x; non-pivotal columns keep their U-coefficient as is.
	for _, j := range ws.output[top:ws.m] {
		i := qinv[j]
		if i < 0 {
			continue
		}
		cols, vals := U.Row(i)
		pivotVal := vals[0] // pivot is always the row's first entry
		if ws.X[j] == 0 {
			continue
		}
		d := gfp.Mul(ws.X[j], gfp.Inverse(pivotVal, p), p)
		ws.X[j] = d
		for t := 1; t < len(cols); t++ {
			c := cols[t]
			ws.X[c] = gfp.Sub(ws.X[c], gfp.Mul(d, vals[t], p), p)
		}
	}
	return top
}
