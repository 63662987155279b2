package text

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/BeatGlow/matrix/draw"
)

// DefaultTTF is the Go Mono TrueType font.
var DefaultTTF = gomono.TTF

// DefaultSize is the default font size in points, at 72 DPI one point is one pixel.
const DefaultSize = 8

// Vector renders text with a TrueType font.
type Vector struct {
	font *truetype.Font
	face font.Face
	size float64
}

// NewVector parses a TrueType font. A nil ttf selects DefaultTTF, a size of zero selects
// DefaultSize.
func NewVector(ttf []byte, size float64) (*Vector, error) {
	if ttf == nil {
		ttf = DefaultTTF
	}
	if size <= 0 {
		size = DefaultSize
	}
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return &Vector{
		font: f,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
		size: size,
	}, nil
}

func (v *Vector) context(dst draw.Image, c color.Color) *freetype.Context {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(v.font)
	ctx.SetFontSize(v.size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))
	return ctx
}

func (v *Vector) DrawString(dst draw.Image, x, y int, s string, c color.Color) {
	// The context always has a font, so DrawString can not fail.
	_, _ = v.context(dst, c).DrawString(s, freetype.Pt(x, y))
}

func (v *Vector) Width(s string) int {
	return font.MeasureString(v.face, s).Ceil()
}

func (v *Vector) Height() int {
	return v.face.Metrics().Height.Ceil()
}

// Interface checks.
var (
	_ Renderer = (*Vector)(nil)
)
