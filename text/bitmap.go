package text

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/BeatGlow/matrix/draw"
)

// Bitmap renders text with a tinyfont bitmap font.
type Bitmap struct {
	font tinyfont.Fonter
}

// NewBitmap returns a bitmap font renderer. A nil font selects the 3×5 pixel Tom Thumb font.
func NewBitmap(font tinyfont.Fonter) *Bitmap {
	if font == nil {
		font = &tinyfont.TomThumb
	}
	return &Bitmap{font: font}
}

func (b *Bitmap) DrawString(dst draw.Image, x, y int, s string, c color.Color) {
	tinyfont.WriteLine(displayer{dst}, b.font, int16(x), int16(y), s, color.RGBAModel.Convert(c).(color.RGBA))
}

func (b *Bitmap) Width(s string) int {
	_, outbox := tinyfont.LineWidth(b.font, s)
	return int(outbox)
}

func (b *Bitmap) Height() int {
	return int(b.font.GetYAdvance())
}

// displayer adapts a draw.Image to the TinyGo display interface.
type displayer struct {
	dst draw.Image
}

func (d displayer) Size() (x, y int16) {
	r := d.dst.Bounds()
	return int16(r.Max.X), int16(r.Max.Y)
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.dst.Set(int(x), int(y), c)
}

func (d displayer) Display() error {
	return nil
}

// Interface checks.
var (
	_ Renderer          = (*Bitmap)(nil)
	_ drivers.Displayer = displayer{}
)
