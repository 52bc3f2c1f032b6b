// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command spasm reads a matrix over GF(p) in SMS format and runs either a
// full PLUQ factorization, reporting the rank, or (with -pivots-only) pivot
// discovery alone, reporting the number of pivots found.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spasm-go/spasm/format"
	"github.com/spasm-go/spasm/spasm"
)

var (
	inputFlag      = flag.String("i", "-", "input SMS file (\"-\" for stdin)")
	primeFlag      = flag.Uint64("p", 42013, "field modulus")
	pivotsOnlyFlag = flag.Bool("pivots-only", false, "run only pivot discovery, skip LU")
	keepLFlag      = flag.Bool("keep-l", false, "materialize the L factor")
	noEarlyAbort   = flag.Bool("no-early-abort", false, "disable the probabilistic early-abort test")
	verboseFlag    = flag.Bool("v", false, "log factorization progress to stderr")
	outputSMSFlag  = flag.String("o", "", "if set, write the U factor (or, with -pivots-only, the permuted matrix) to this SMS file")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "spasm:", err)
		os.Exit(1)
	}
}

func run() error {
	in := os.Stdin
	if *inputFlag != "-" {
		f, err := os.Open(*inputFlag)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	tr, err := format.ReadSMS(in, *primeFlag)
	if err != nil {
		return fmt.Errorf("reading SMS: %w", err)
	}
	a := tr.Compress()

	var logger spasm.Logger
	if *verboseFlag {
		logger = spasm.StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)}
	}

	if *pivotsOnlyFlag {
		p, qinv, npiv := spasm.FindPivots(a)
		fmt.Printf("%d x %d matrix over GF(%d): %d pivots found\n", a.N, a.M, a.P, npiv)
		if *outputSMSFlag != "" {
			return writeSMS(*outputSMSFlag, spasm.PermutePivots(a, p, qinv, npiv))
		}
		return nil
	}

	opts := spasm.Options{
		KeepL:             *keepLFlag,
		Logger:            logger,
		DisableEarlyAbort: *noEarlyAbort,
	}
	f := spasm.Factorize(a, opts)
	fmt.Printf("%d x %d matrix over GF(%d): rank %d\n", a.N, a.M, a.P, f.Rank)

	if *outputSMSFlag != "" {
		return writeSMS(*outputSMSFlag, f.U)
	}
	return nil
}

func writeSMS(path string, a *spasm.CSR) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()
	if err := format.WriteSMS(out, a); err != nil {
		return fmt.Errorf("writing SMS: %w", err)
	}
	return nil
}
