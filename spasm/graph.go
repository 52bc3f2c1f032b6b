// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

// The matrix U is viewed as a directed graph on its m columns: column j has
// an out-edge to every column in the same row as the pivot of column j (if
// qinv[j] >= 0). dfs performs one iterative depth-first search from column
// j, in the style of gonum.org/v1/gonum/graph/topo's explicit-stack
// traversals generalized to an implicit graph defined by a CSR's own
// rowptr/colidx arrays rather than a graph.Graph adapter (see DESIGN.md).
//
// It writes the columns reachable from j into output[top-k:top), filling
// from the right as each column finishes (reverse postorder), so that read
// left to right they are in topological order (i.e. a column always appears
// before every column it has an edge to), and returns the new top. marks[j] must be 0 on entry for
// every column that will be visited; it is left set to 1 on every column
// visited by this call. pstack remembers, for each column currently on the
// stack, how far its row's column list has already been scanned, so a
// back-visited row is not rescanned from the start.
func dfs(j int, U *CSR, top int, output, stack, pstack, marks []int, qinv []int) int {
	head := 0
	stack[0] = j
	for head >= 0 {
		cur := stack[head]
		i := qinv[cur]
		if marks[cur] == 0 {
			marks[cur] = 1
			if i < 0 {
				pstack[head] = 0
			} else {
				pstack[head] = U.Rowptr[i]
			}
		}
		hi := 0
		if i >= 0 {
			hi = U.Rowptr[i+1]
		}
		done := true
		for p := pstack[head]; p < hi; p++ {
			next := U.Colidx[p]
			if marks[next] != 0 {
				continue
			}
			pstack[head] = p
			head++
			stack[head] = next
			done = false
			break
		}
		if done {
			head--
			top--
			output[top] = cur
		}
	}
	return top
}

// reach extends dfs over every column in cols that has not already been
// visited in this call to reach (ws.marks must be all-zero on the columns
// in cols before the first call since the last reset), returning the new
// top such that ws.output[top:] holds all reachable columns in an order
// consistent with a topological sort of the edge relation above.
func reach(U *CSR, qinv []int, cols []int, ws *Workspace) int {
	top := ws.m
	for _, j := range cols {
		if ws.marks[j] == 0 {
			top = dfs(j, U, top, ws.output, ws.stack, ws.pstack, ws.marks, qinv)
		}
	}
	return top
}
