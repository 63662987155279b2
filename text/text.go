// Package text renders strings onto an LED matrix, or any other draw.Image.
//
// Two renderers are provided: Bitmap uses TinyGo bitmap fonts, which stay crisp at the sizes
// that fit an 8 pixel tall display, and Vector rasterizes TrueType fonts with freetype.
package text

import (
	"image/color"

	"github.com/BeatGlow/matrix/draw"
)

// Renderer draws text.
type Renderer interface {
	// DrawString draws s with its baseline starting at (x, y). Pixels outside of dst are
	// clipped by dst.
	DrawString(dst draw.Image, x, y int, s string, c color.Color)

	// Width of s in pixels.
	Width(s string) int

	// Height of a line in pixels.
	Height() int
}
