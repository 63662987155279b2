package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/matrixtest"
)

// preview is a driver that renders every latched frame to a terminal with 24-bit ANSI colors.
type preview struct {
	*matrixtest.Recorder
	w      io.Writer
	frames int
}

func newPreview(w io.Writer) *preview {
	return &preview{
		Recorder: new(matrixtest.Recorder),
		w:        w,
	}
}

func (p *preview) String() string {
	return "terminal preview"
}

func (p *preview) Latch() error {
	if err := p.Recorder.Latch(); err != nil {
		return err
	}
	frame := p.LastFrame()
	p.Reset()
	p.frames++

	w := bufio.NewWriter(p.w)
	// Cursor home, so frames overwrite each other.
	fmt.Fprint(w, "\x1b[H")
	for y := 0; y < matrix.Height; y++ {
		for x := 0; x < matrix.Width; x++ {
			v := frame[y][x]
			fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm  ", v[0], v[1], v[2])
		}
		fmt.Fprint(w, "\x1b[0m\n")
	}
	fmt.Fprintf(w, "frame %d\x1b[K\n", p.frames)
	return w.Flush()
}

// Interface checks.
var (
	_ matrix.Driver  = (*preview)(nil)
	_ matrix.Latcher = (*preview)(nil)
)
