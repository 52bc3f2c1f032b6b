// Copyright ©2026 The Spasm-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spasm-go/spasm/spasm"
)

// WritePBM writes a PBM (ASCII bitmap, "P1") image of a's nonzero pattern,
// one pixel per matrix entry: 1 where a has an entry, 0 elsewhere.
func WritePBM(w io.Writer, a *spasm.CSR) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P1\n%d %d\n", a.M, a.N); err != nil {
		return err
	}
	row := make([]bool, a.M)
	for i := 0; i < a.N; i++ {
		cols, _ := a.Row(i)
		for _, j := range cols {
			row[j] = true
		}
		for j := 0; j < a.M; j++ {
			bit := 0
			if row[j] {
				bit = 1
			}
			if _, err := fmt.Fprintf(bw, "%d ", bit); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		for _, j := range cols {
			row[j] = false
		}
	}
	return bw.Flush()
}

// WritePGM writes a PGM (ASCII graymap, "P2") image of a's nonzero pattern
// downsampled to width x height pixels. Each output pixel covers a tile of
// the matrix; its intensity is 255*(1 - count/expected), where count is the
// number of entries that landed in the tile and expected is the number
// that would land there under a uniform density, so denser tiles render
// darker. width and height are clamped to a's own dimensions.
func WritePGM(w io.Writer, a *spasm.CSR, width, height int) error {
	if width > a.M {
		width = a.M
	}
	if height > a.N {
		height = a.N
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("format: PGM dimensions must be positive, got %dx%d", width, height)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P2\n%d %d\n255\n", width, height); err != nil {
		return err
	}

	expected := (float64(a.M) / float64(width)) * (float64(a.N) / float64(height))

	count := make([]int, width)
	col := 0
	i := 0
	for tile := 0; tile < height; tile++ {
		end := ((tile + 1) * a.N) / height
		for ; i < end; i++ {
			cols, _ := a.Row(i)
			for _, j := range cols {
				count[(j*width)/a.M]++
			}
		}
		for j := 0; j < width; j++ {
			intensity := 1.0 - float64(count[j])/expected
			if intensity < 0 {
				intensity = 0
			}
			if intensity > 1 {
				intensity = 1
			}
			if _, err := fmt.Fprintf(bw, "%.0f ", 255.0*intensity); err != nil {
				return err
			}
			count[j] = 0
			col++
			if col&31 == 0 {
				if err := bw.WriteByte('\n'); err != nil {
					return err
				}
			}
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// palette cycles through a small set of colors for successive diagonal
// blocks, with the unfilled background rendered white and every explicit
// matrix entry punched through in black, mirroring the original renderer's
// block/background/entry layering. This is a simplified 10-entry,
// block-index-only coloring; it does not distinguish diagonal from
// off-diagonal block cells the way the original's full palette does.
var palette = [][3]byte{
	{0xFF, 0x00, 0x00},
	{0xFF, 0x66, 0x33},
	{0xCC, 0x00, 0x00},
	{0x99, 0x00, 0x00},
	{0xFF, 0xFF, 0x66},
	{0xFF, 0xCC, 0x00},
	{0xCC, 0x99, 0x00},
	{0x66, 0x99, 0x33},
	{0x99, 0xFF, 0x99},
	{0x33, 0xCC, 0x00},
}

// WritePPM writes a PPM (ASCII pixmap, "P3") image of a, one pixel per
// matrix entry position. Cells inside blocks[k] are tinted with
// palette[k%len(palette)]; cells outside every block are white; any
// explicit entry of a is then punched through in black on top, so the
// nonzero pattern is always visible against the block coloring.
func WritePPM(w io.Writer, a *spasm.CSR, blocks []spasm.Block) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", a.M, a.N); err != nil {
		return err
	}

	blockOf := make([]int, a.N)
	for i := range blockOf {
		blockOf[i] = -1
	}
	for k, b := range blocks {
		for i := b.I0; i < b.I1; i++ {
			blockOf[i] = k
		}
	}

	pixel := make([][3]byte, a.M)
	t := 0
	for i := 0; i < a.N; i++ {
		white := [3]byte{0xFF, 0xFF, 0xFF}
		for j := range pixel {
			pixel[j] = white
		}
		if k := blockOf[i]; k >= 0 {
			b := blocks[k]
			color := palette[k%len(palette)]
			for j := b.J0; j < b.J1; j++ {
				pixel[j] = color
			}
		}
		cols, _ := a.Row(i)
		for _, j := range cols {
			pixel[j] = [3]byte{0, 0, 0}
		}
		for _, px := range pixel {
			if _, err := fmt.Fprintf(bw, "%d %d %d ", px[0], px[1], px[2]); err != nil {
				return err
			}
			t++
			if t&7 == 0 {
				if err := bw.WriteByte('\n'); err != nil {
					return err
				}
			}
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}
