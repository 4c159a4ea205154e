// Package render draws wavefront grids as fixed-width text, one line per
// x row, three characters per cell.
//
//	blank   Empty
//	 R      Agent
//	 G      Goal
//	 W      Wall
//	012     wave distance, zero padded
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/wavefront/wavefront"
)

// cellText returns the three-character form of c.
func cellText(c wavefront.Cell) string {
	switch c {
	case wavefront.Empty:
		return "   "
	case wavefront.Agent:
		return " R "
	case wavefront.Goal:
		return " G "
	case wavefront.Wall:
		return " W "
	}
	return fmt.Sprintf("%03d", uint8(c))
}

// Format renders v, cells separated by a single space and each row
// terminated by a newline.
func Format(v wavefront.View) string {
	w, h := v.Size()
	var b strings.Builder
	b.Grow(w * (h*4 + 1))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if y > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cellText(v.Read(x, y)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Writer is a wavefront.Observer that prints every frame it receives,
// followed by a blank line.
type Writer struct {
	out    io.Writer
	frames int
	err    error
}

// NewWriter returns a Writer printing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Wave implements wavefront.Observer. After the first write error further
// frames are counted but not written.
func (w *Writer) Wave(v wavefront.View) {
	w.frames++
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.out, Format(v)+"\n")
}

// Frames returns the number of frames observed.
func (w *Writer) Frames() int { return w.frames }

// Err returns the first write error, if any.
func (w *Writer) Err() error { return w.err }
