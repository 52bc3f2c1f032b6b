// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format reads and writes the external file formats this module's
// callers use to exchange matrices: the SMS sparse-matrix text format, and
// the PBM/PGM/PPM netpbm image formats used to visualize a matrix's
// nonzero pattern.
package format

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spasm-go/spasm/spasm"
)

// ReadSMS parses an SMS file: a header line "<n> <m> <type>", followed by
// 1-based "<row> <col> <value>" triples terminated by the sentinel line
// "0 0 0". Only the "M" (modular) type is supported. p is the field
// modulus; values are reduced mod p as they are read.
func ReadSMS(r io.Reader, p uint64) (*spasm.Triplet, error) {
	br := bufio.NewReader(r)

	var n, m int
	var typ byte
	if _, err := fmt.Fscanf(br, "%d %d %c\n", &n, &m, &typ); err != nil {
		return nil, fmt.Errorf("format: reading SMS header: %w", err)
	}
	if typ != 'M' {
		return nil, fmt.Errorf("format: unsupported SMS type %q, only \"M\" is supported", typ)
	}

	t := spasm.NewTriplet(n, m, 0, p, true)
	for {
		var i, j int
		var x int64
		_, err := fmt.Fscanf(br, "%d %d %d\n", &i, &j, &x)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("format: reading SMS entry: %w", err)
		}
		if i == 0 && j == 0 && x == 0 {
			break
		}
		if i == 0 || j == 0 {
			return nil, fmt.Errorf("format: SMS entry (%d, %d) has a zero coordinate outside the sentinel", i, j)
		}
		t.Add(i-1, j-1, uint64(((x%int64(p))+int64(p))%int64(p)))
	}
	return t, nil
}

// WriteSMS writes a in SMS format. Values above p/2 are re-centered to
// their negative representative, matching the convention the original SMS
// writers use so that small negative integers round-trip exactly.
func WriteSMS(w io.Writer, a *spasm.CSR) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d M\n", a.N, a.M); err != nil {
		return err
	}
	half := a.P / 2
	for i := 0; i < a.N; i++ {
		cols, vals := a.Row(i)
		for k, j := range cols {
			x := int64(1)
			if vals != nil {
				x = int64(vals[k])
			}
			if uint64(x) > half {
				x -= int64(a.P)
			}
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", i+1, j+1, x); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprint(bw, "0 0 0\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteTripletSMS writes the unordered entries of t in SMS format, in
// their storage order, without compressing duplicates.
func WriteTripletSMS(w io.Writer, t *spasm.Triplet) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d M\n", t.N, t.M); err != nil {
		return err
	}
	for k := 0; k < t.Nz; k++ {
		x := uint64(1)
		if t.X != nil {
			x = t.X[k]
		}
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", t.I[k]+1, t.J[k]+1, x); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "0 0 0\n"); err != nil {
		return err
	}
	return bw.Flush()
}
