// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

// Workspace bundles the scratch buffers shared by the graph reachability,
// sparse triangular solve, and pivot-discovery routines, bound to a fixed
// column count m. Reusing one Workspace across many rows of a factorization
// avoids reallocating per row; all of these buffers are restored to their
// zero/logical-zero state by the routine that used them before it returns,
// per the caller contract in spec.md §4.4 and §9.
type Workspace struct {
	m int

	X []uint64 // dense value workspace, length m; zero on entries not in the current pattern

	output []int // DFS/solve output pattern, length m, filled from the right
	stack  []int // DFS recursion stack, length m
	pstack []int // per-stack-frame row read-pointer, length m
	marks  []int // DFS visited marks, length m; 0 outside of a call

	w     []int // pivot-discovery marking array, length m; shared by FindPivots' free-column and cycle-free passes
	queue []int // BFS queue for cycle-free pivot discovery, length m
}

// NewWorkspace allocates a Workspace sized for m columns.
func NewWorkspace(m int) *Workspace {
	mustPositive("m", m)
	return &Workspace{
		m:      m,
		X:      make([]uint64, m),
		output: make([]int, m),
		stack:  make([]int, m),
		pstack: make([]int, m),
		marks:  make([]int, m),
		w:      make([]int, m),
		queue:  make([]int, m),
	}
}

// reset clears X on the columns named by pattern (ws.output[top:m]) and
// clears the DFS marks on those same columns, leaving the workspace ready
// for reuse on the next row. It does not scan all m entries.
func (ws *Workspace) reset(top int) {
	for _, j := range ws.output[top:ws.m] {
		ws.X[j] = 0
		ws.marks[j] = 0
	}
}
