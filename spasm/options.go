// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

import (
	"log"
	"math/rand/v2"
)

// Logger receives progress diagnostics from the long-running factorization
// and Schur-complement routines, in place of the original C sources'
// fprintf(stderr, ...) calls (spec.md §5, §9 "global timing counter"). A nil
// Logger means "silent". StdLogger adapts the standard library's log.Logger
// to this interface for CLI use.
type Logger interface {
	Logf(format string, args ...any)
}

// Options configures Factorize and Schur (Schur reads only Logger). A zero
// Options is a valid default (no row permutation, L not kept, early abort
// enabled, a fixed-seed Rand), in the spirit of mat.QR/mat.LQ's
// zero-value-is-valid-default factorization types.
type Options struct {
	// KeepL requests that the L factor be materialized. When false, the
	// factorization may stop as soon as full rank is detected (spec.md
	// §4.6, early termination) or when the early-abort probe succeeds.
	// When true, neither early exit is taken and every row of A is read.
	KeepL bool

	// RowPermutation, if non-nil, is applied on the fly while reading rows
	// of A (row i of the walk reads A[RowPermutation[i]]); it is never
	// baked into the returned L.
	RowPermutation []int

	// Logger receives progress messages; nil disables logging.
	Logger Logger

	// Rand seeds the probabilistic early-abort test (§4.6.1). If nil, a
	// generator with a fixed, deterministic seed is used, so that two runs
	// over the same input agree on whether (and where) early abort fires.
	Rand *rand.Rand

	// DisableEarlyAbort forces the main loop to run to completion without
	// ever invoking the probabilistic early-abort test, for deterministic
	// benchmarking or when the caller cannot tolerate its (small) error
	// probability.
	DisableEarlyAbort bool
}

// StdLogger adapts the standard library's *log.Logger to the Logger
// interface, for CLI use.
type StdLogger struct {
	*log.Logger
}

// Logf implements Logger by delegating to the wrapped *log.Logger's Printf.
func (l StdLogger) Logf(format string, args ...any) {
	l.Printf(format, args...)
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Logf(format, args...)
	}
}

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewPCG(1, 1))
}

func verboseStep(n int) int {
	if n/1000 > 1 {
		return n / 1000
	}
	return 1
}
