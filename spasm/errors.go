// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

import "errors"

// Sentinel error values for contract violations detected at API
// boundaries. The functions of this package do not return them: they panic
// with ErrModulus or ErrShape as the panic value, so a caller that recovers
// can compare against them. Other invariant violations panic with a plain
// message via the mustXxx helpers below.
var (
	// ErrModulus is the panic value of Alloc and NewTriplet when p <= 1 is
	// supplied as a field modulus.
	ErrModulus = errors.New("spasm: modulus must be > 1")
	// ErrDimension names a non-positive row or column count. No function of
	// this package currently uses it; non-positive dimensions panic via
	// mustPositive.
	ErrDimension = errors.New("spasm: dimensions must be positive")
	// ErrShape is the panic value of Triplet.Add, Permute and Schur when an
	// index or dimension is incompatible with the requested operation.
	ErrShape = errors.New("spasm: dimension mismatch")
)

func mustPositive(name string, v int) {
	if v <= 0 {
		panic("spasm: " + name + " must be positive")
	}
}

func mustNonNegative(name string, v int) {
	if v < 0 {
		panic("spasm: " + name + " must be non-negative")
	}
}
