// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

// Schur computes the Schur complement of a with respect to the nPivots
// pivotal rows named by p[:nPivots] (the first entry of each such row is
// its pivot), eliminating them and returning the residual matrix on the
// remaining (n-nPivots) rows and (m-nPivots) columns, per spec.md §4.7.
//
// rank(A) == nPivots + rank(S); this is Testable Property 6.
func Schur(a *CSR, p []int, nPivots int, opts Options) *CSR {
	n, m := a.N, a.M
	if nPivots > n || nPivots > m {
		panic(ErrShape)
	}

	sn, sm := n-nPivots, m-nPivots
	snzGuess := 4 * (sn + sm)
	s := &CSR{
		N: sn, M: sm, P: a.P,
		Rowptr: make([]int, sn+1),
		Colidx: make([]int, snzGuess),
		Values: make([]uint64, snzGuess),
		Nzmax:  snzGuess,
	}

	qinv := make([]int, m)
	for j := range qinv {
		qinv[j] = NoPivot
	}
	for i := 0; i < nPivots; i++ {
		inew := p[i]
		cols, _ := a.Row(inew)
		qinv[cols[0]] = inew
	}

	q := make([]int, m)
	next := 0
	for j := 0; j < m; j++ {
		if qinv[j] == NoPivot {
			q[j] = next
			next++
		} else {
			q[j] = NoPivot
		}
	}

	ws := NewWorkspace(m)
	vstep := verboseStep(n)

	snz, sRows := 0, 0
	for i := nPivots; i < n; i++ {
		s.Rowptr[sRows] = snz
		s.growRoom(snz + sm)

		inew := p[i]
		top := SparseForwardSolve(a, a, inew, ws, qinv)

		for _, j := range ws.output[top:m] {
			if ws.X[j] == 0 {
				continue
			}
			if q[j] >= 0 {
				s.Colidx[snz] = q[j]
				s.Values[snz] = ws.X[j]
				snz++
			}
		}
		ws.reset(top)
		sRows++

		if i%vstep == 0 {
			opts.logf("[schur] row %d/%d, S is %dx%d, %d nnz", i, n, sRows, sm, snz)
		}
	}
	s.Rowptr[sRows] = snz
	s.Realloc(-1)
	return s
}
