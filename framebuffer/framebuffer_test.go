package framebuffer

import (
	"encoding/binary"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/pixel"
)

func TestFormatEncode(t *testing.T) {
	tests := []struct {
		Format  Format
		R, G, B uint8
		Want    []byte
	}{
		{RGB565, 0xff, 0, 0, []byte{0x00, 0xf8}},
		{RGB565, 0, 0xff, 0, []byte{0xe0, 0x07}},
		{BGR565, 0xff, 0, 0, []byte{0x1f, 0x00}},
		{RGB555, 0, 0, 0xff, []byte{0x1f, 0x00}},
		{BGR555, 0, 0, 0xff, []byte{0x00, 0x7c}},
		{XRGB8888, 0x12, 0x34, 0x56, []byte{0x56, 0x34, 0x12, 0xff}},
		{XBGR8888, 0x12, 0x34, 0x56, []byte{0x12, 0x34, 0x56, 0xff}},
	}
	for _, test := range tests {
		t.Run(test.Format.String(), func(it *testing.T) {
			b := make([]byte, test.Format.BytesPerPixel())
			test.Format.encode(b, binary.LittleEndian, test.R, test.G, test.B)
			assert.Equal(it, test.Want, b)
		})
	}
}

func newMirror(format Format, scale int) *Mirror {
	w, h := matrix.Width*scale, matrix.Height*scale
	bpp := format.BytesPerPixel()
	return &Mirror{
		Pix:    make([]byte, w*h*bpp),
		Rect:   image.Rect(0, 0, w, h),
		Stride: w * bpp,
		Format: format,
		Scale:  scale,
	}
}

func (m *Mirror) at(x, y int) []byte {
	bpp := m.Format.BytesPerPixel()
	i := y*m.Stride + x*bpp
	return m.Pix[i : i+bpp]
}

func TestMirror(t *testing.T) {
	fb := newMirror(XRGB8888, 2)
	mx := matrix.New(fb, &matrix.Config{Brightness: 255})
	require.NoError(t, mx.Begin())
	assert.Equal(t, []byte{0, 0, 0, 0xff}, fb.at(0, 0), "blanked")

	mx.SetPixel(1, 0, pixel.Red)
	mx.SetPixel(7, 7, pixel.Blue)
	require.NoError(t, mx.Update())

	// LED (1,0) covers pixels (2..3, 0..1).
	for _, p := range []image.Point{{2, 0}, {3, 0}, {2, 1}, {3, 1}} {
		assert.Equal(t, []byte{0, 0, 0xff, 0xff}, fb.at(p.X, p.Y), "pixel %s", p)
	}
	assert.Equal(t, []byte{0, 0, 0, 0xff}, fb.at(1, 0))
	assert.Equal(t, []byte{0, 0, 0, 0xff}, fb.at(4, 0))
	assert.Equal(t, []byte{0xff, 0, 0, 0xff}, fb.at(15, 15))
}

func TestMirrorClip(t *testing.T) {
	// Screen smaller than the scaled matrix.
	fb := newMirror(RGB565, 1)
	fb.Scale = 3
	mx := matrix.New(fb, &matrix.Config{Brightness: 255})
	require.NoError(t, mx.Begin())

	mx.Fill(pixel.White)
	assert.Equal(t, []byte{0xff, 0xff}, fb.at(7, 7))
}

func TestMirrorUnsupported(t *testing.T) {
	fb := &Mirror{}
	assert.Error(t, fb.ConfigurePins())
	assert.Error(t, fb.Latch())

	fb = newMirror(RGB565, 1)
	fb.Scale = 0
	require.NoError(t, fb.ConfigurePins())
	assert.Equal(t, DefaultScale, fb.Scale)
	assert.Error(t, fb.WriteChannel(matrix.Channel(3), 0))
}
