package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/matrix/draw"
)

// Grid is a fixed-size frame buffer of packed colors, one per pixel, in row-major order.
//
// Writes outside of the bounding box are ignored and reads outside of it return Black.
type Grid struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []Color

	// Stride is the Pix stride (in pixels) between vertically adjacent pixels.
	Stride int
}

// NewGrid returns a w×h grid with every pixel set to Black.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]Color, w*h),
		Stride: w,
	}
}

func (p *Grid) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Grid) ColorModel() color.Model {
	return RGBModel
}

// PixOffset returns the index of the pixel at (x, y) in Pix.
func (p *Grid) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

func (p *Grid) At(x, y int) color.Color {
	return p.Pixel(x, y)
}

// Pixel returns the packed color at (x, y), or Black if out of bounds.
func (p *Grid) Pixel(x, y int) Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return Black
	}
	return p.Pix[p.PixOffset(x, y)]
}

func (p *Grid) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, Convert(c))
}

// SetPixel stores c at (x, y); out of bounds coordinates are silently ignored.
func (p *Grid) SetPixel(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = c & 0xFFFFFF
}

func (p *Grid) Fill(c color.Color) {
	value := Convert(c) & 0xFFFFFF
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

func (p *Grid) Clear() {
	for i := range p.Pix {
		p.Pix[i] = Black
	}
}

// Interface checks.
var (
	_ draw.Image = (*Grid)(nil)
)
