package pixel

import (
	"fmt"
	"image/color"
)

// RGBModel converts any color to a packed 24-bit Color, dropping alpha.
var RGBModel color.Model = color.ModelFunc(rgbModel)

// Named colors.
const (
	Black   Color = 0x000000
	Red     Color = 0xFF0000
	Green   Color = 0x00FF00
	Blue    Color = 0x0000FF
	Yellow  Color = 0xFFFF00
	Cyan    Color = 0x00FFFF
	Magenta Color = 0xFF00FF
	White   Color = 0xFFFFFF
)

// Color is a packed 24-bit color, ordered R<<16 | G<<8 | B.
type Color uint32

// RGB packs three 8-bit channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// RGB unpacks the red, green and blue channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements [color.Color]. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	red, grn, blu := c.RGB()
	r = uint32(red)
	r |= r << 8
	g = uint32(grn)
	g |= g << 8
	b = uint32(blu)
	b |= b << 8
	return r, g, b, 0xffff
}

// Scale dims every channel by brightness/255, truncating.
func (c Color) Scale(brightness uint8) Color {
	r, g, b := c.RGB()
	return RGB(Scale(r, brightness), Scale(g, brightness), Scale(b, brightness))
}

func (c Color) String() string {
	return fmt.Sprintf("#%06X", uint32(c&0xFFFFFF))
}

// Scale returns v*brightness/255 using integer division.
func Scale(v, brightness uint8) uint8 {
	return uint8(uint16(v) * uint16(brightness) / 255)
}

// Blend interpolates linearly from c1 (t=0) to c2 (t=255), per channel.
//
// Each channel is (c1*(255-t) + c2*t) / 255 with integer truncation, so intermediate
// values may come out one unit low. Callers rely on this exact rounding.
func Blend(c1, c2 Color, t uint8) Color {
	r1, g1, b1 := c1.RGB()
	r2, g2, b2 := c2.RGB()
	return RGB(
		lerp(r1, r2, t),
		lerp(g1, g2, t),
		lerp(b1, b2, t),
	)
}

func lerp(a, b, t uint8) uint8 {
	return uint8((uint32(a)*uint32(255-t) + uint32(b)*uint32(t)) / 255)
}

func rgbModel(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v & 0xFFFFFF
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Convert returns c as a packed Color.
func Convert(c color.Color) Color {
	return rgbModel(c).(Color)
}
