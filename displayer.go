package matrix

import (
	"image/color"

	"tinygo.org/x/drivers"

	"github.com/BeatGlow/matrix/pixel"
)

type displayer struct {
	m *Matrix
}

// Displayer returns a view of the matrix for TinyGo display libraries such as tinyfont and
// tinydraw. Its SetPixel does not refresh, Display calls Update.
func (m *Matrix) Displayer() drivers.Displayer {
	return displayer{m: m}
}

func (d displayer) Size() (x, y int16) {
	return Width, Height
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.m.SetPixel(int(x), int(y), pixel.RGB(c.R, c.G, c.B))
}

func (d displayer) Display() error {
	return d.m.Update()
}
