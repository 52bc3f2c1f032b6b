// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spasm

// Block is one diagonal rectangular tile of a Dulmage–Mendelsohn
// block-triangular decomposition, as consumed (not produced) by this
// package per spec.md §3.6: rows [I0,I1) and columns [J0,J1) form one
// diagonal block of a permutation of A. The decomposition itself, and its
// coarse H/S/V partition into connected/strongly-connected components, are
// out of scope here; Block is the only shape this package needs from it,
// used by the PPM writer in package format for block-membership coloring.
type Block struct {
	I0, J0 int
	I1, J1 int
}

// Tiles reports whether blocks is a valid diagonal tiling of an n×m matrix:
// each block is well-formed (I0<=I1, J0<=J1), blocks are given in order,
// and the southeast corner of block k coincides with the northwest corner
// of block k+1, per spec.md §3.6.
func Tiles(blocks []Block, n, m int) bool {
	i0, j0 := 0, 0
	for _, b := range blocks {
		if b.I0 != i0 || b.J0 != j0 || b.I1 < b.I0 || b.J1 < b.J0 {
			return false
		}
		i0, j0 = b.I1, b.J1
	}
	return i0 == n && j0 == m
}
