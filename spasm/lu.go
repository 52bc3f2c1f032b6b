// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

import (
	"math/rand/v2"

	"github.com/spasm-go/spasm/gfp"
)

// Factorization bundles the result of a PLUQ factorization: L (n×r,
// lower-trapezoidal after row permutation P), U (r×m, upper-trapezoidal
// after column permutation Qinv), the row permutation P (pivotal rows
// first, deficient rows last) and the full inverse column permutation
// Qinv. L*U == P applied to the original A; the first Rank columns of U
// (after applying Qinv) form a unit upper-triangular principal submatrix
// up to diagonal scaling, per spec.md §3.5.
type Factorization struct {
	L, U *CSR
	P    []int
	Qinv []int
	Rank int
}

// Factorize computes a PLUQ factorization of A over GF(p), discovering
// pivots lazily one row at a time (spec.md §4.6). If opts.RowPermutation is
// non-nil it is applied on the fly while reading rows of A; it is never
// baked into the returned L. If opts.KeepL is false, L is not computed and
// the main loop may terminate early, either because full rank has
// provably been reached or because the probabilistic early-abort test
// (§4.6.1) succeeds.
func Factorize(a *CSR, opts Options) *Factorization {
	n, m, p := a.N, a.M, a.P
	r := min(n, m)

	ws := NewWorkspace(m)
	qinv := make([]int, m)
	for j := range qinv {
		qinv[j] = NoPivot
	}
	rowPerm := make([]int, n)
	for i := range rowPerm {
		rowPerm[i] = i
	}

	lnzGuess := 4*a.Nnz() + n
	unzGuess := 4*a.Nnz() + n
	var L *CSR
	if opts.KeepL {
		L = Alloc(n, max(r, 1), lnzGuess, p, true)
	}
	U := Alloc(r, m, unzGuess, p, true)

	lnz, unz := 0, 0
	deficiency := 0
	rowsSinceLastPivot := 0
	earlyAbortDone := false
	vstep := verboseStep(n)
	rng := opts.rng()

	i := 0
	for ; i < n; i++ {
		if !opts.KeepL && i-deficiency == r {
			opts.logf("[lu] full rank reached at row %d; early abort", i)
			break
		}

		if !opts.KeepL && !opts.DisableEarlyAbort && !earlyAbortDone &&
			rowsSinceLastPivot > 10 && rowsSinceLastPivot > n/100 {
			opts.logf("[lu] testing for early abort at row %d", i)
			if earlyAbort(a, opts.RowPermutation, i, U, i-deficiency, rng) {
				opts.logf("[lu] early abort succeeded")
				break
			}
			opts.logf("[lu] early abort failed")
			earlyAbortDone = true
		}

		if opts.KeepL {
			L.Rowptr[i] = lnz
		}
		U.Rowptr[i-deficiency] = unz

		if opts.KeepL {
			L.growRoom(lnz + m)
		}
		U.growRoom(unz + m)

		inew := i
		if opts.RowPermutation != nil {
			inew = opts.RowPermutation[i]
		}
		top := SparseForwardSolve(U, a, inew, ws, qinv)

		ipiv := NoPivot
		for _, j := range ws.output[top:m] {
			if ws.X[j] == 0 {
				continue
			}
			if qinv[j] == NoPivot {
				if ipiv == NoPivot || j < ipiv {
					ipiv = j
				}
			} else if opts.KeepL {
				L.Colidx[lnz] = qinv[j]
				L.Values[lnz] = ws.X[j]
				lnz++
			}
		}

		if ipiv != NoPivot {
			if opts.KeepL {
				L.Colidx[lnz] = i - deficiency
				L.Values[lnz] = 1
				lnz++
			}
			qinv[ipiv] = i - deficiency
			rowPerm[i-deficiency] = i

			U.Colidx[unz] = ipiv
			U.Values[unz] = ws.X[ipiv]
			unz++
			for _, j := range ws.output[top:m] {
				if qinv[j] == NoPivot {
					U.Colidx[unz] = j
					U.Values[unz] = ws.X[j]
					unz++
				}
			}

			rowsSinceLastPivot = 0
			earlyAbortDone = false
		} else {
			deficiency++
			rowPerm[n-deficiency] = i
			rowsSinceLastPivot++
		}

		ws.reset(top)

		if i%vstep == 0 {
			opts.logf("[lu] row %d/%d, rank>=%d, |L|=%d |U|=%d", i, n, i-deficiency, lnz, unz)
		}
	}

	// Rows never read after an early break contribute no pivot: place them
	// between the pivotal rows and the deficient rows already recorded.
	for k := i; k < n; k++ {
		rowPerm[k-deficiency] = k
	}

	U.Rowptr[i-deficiency] = unz
	U.Resize(i-deficiency, m)
	U.Realloc(-1)

	if opts.KeepL {
		L.Rowptr[n] = lnz
		L.Resize(n, n-deficiency)
		L.Realloc(-1)
	}

	f := &Factorization{L: L, U: U, P: rowPerm, Qinv: qinv, Rank: i - deficiency}
	finalizePLUQ(f, opts.KeepL)
	return f
}

// earlyAbort computes a random linear combination y of A[k:] (under
// row_permutation), reduces y by the nu rows of U discovered so far, and
// reports whether y vanishes entirely — which holds with probability at
// least 1-1/p iff no further pivots remain to be found (§4.6.1).
func earlyAbort(a *CSR, rowPermutation []int, k int, U *CSR, nu int, rng *rand.Rand) bool {
	p := a.P
	y := make([]uint64, a.M)

	for i := k; i < a.N; i++ {
		inew := i
		if rowPermutation != nil {
			inew = rowPermutation[i]
		}
		cols, vals := a.Row(inew)
		coeff := rng.Uint64N(p)
		for idx, j := range cols {
			v := uint64(1)
			if vals != nil {
				v = vals[idx]
			}
			y[j] = gfp.MulAdd(y[j], coeff, v, p)
		}
	}

	for i := 0; i < nu; i++ {
		cols, vals := U.Row(i)
		j := cols[0]
		diag := vals[0]
		if y[j] == 0 {
			continue
		}
		d := gfp.Mul(y[j], gfp.Inverse(diag, p), p)
		for t, c := range cols {
			y[c] = gfp.Sub(y[c], gfp.Mul(d, vals[t], p), p)
		}
	}

	for j := 0; j < a.M; j++ {
		if y[j] != 0 {
			return false
		}
	}
	return true
}

// finalizePLUQ completes the partial qinv into a full bijection (non-pivotal
// columns sent to the right: the first one to m-1, the next to m-2, and so
// on), rewrites U's column
// indices through it so U is genuinely upper-trapezoidal, and, if L was
// kept, permutes its rows by P (out of place) so L is genuinely
// lower-trapezoidal (spec.md §4.6.2).
func finalizePLUQ(f *Factorization, keepL bool) {
	m := f.U.M
	k := 1
	for j := 0; j < m; j++ {
		if f.Qinv[j] == NoPivot {
			f.Qinv[j] = m - k
			k++
		}
	}

	r := f.U.N
	for i := 0; i < r; i++ {
		lo, hi := f.U.Rowptr[i], f.U.Rowptr[i+1]
		for px := lo; px < hi; px++ {
			f.U.Colidx[px] = f.Qinv[f.U.Colidx[px]]
		}
	}

	if keepL {
		identity := Identity(f.L.M)
		f.L = Permute(f.L, f.P, identity)
	}
}
