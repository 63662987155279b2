package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BeatGlow/matrix/draw"
)

// fillable is an image that can be filled and cleared as a whole.
type fillable interface {
	draw.Image
	Clear()
	Fill(color.Color)
}

func TestGrid(t *testing.T) {
	testImage(t, func(size image.Point) fillable {
		return NewGrid(size.X, size.Y)
	}, RGBModel)
}

func TestGridInitiallyBlack(t *testing.T) {
	g := NewGrid(8, 8)
	assert.Len(t, g.Pix, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, Black, g.Pixel(x, y))
		}
	}
}

func TestGridClipping(t *testing.T) {
	g := NewGrid(8, 8)
	g.Fill(Red)

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {8, 8}, {100, 3}, {3, 100}} {
		g.SetPixel(p.X, p.Y, White)
		assert.Equal(t, Black, g.Pixel(p.X, p.Y), "read at %s", p)
	}
	for i, c := range g.Pix {
		assert.Equal(t, Red, c, "pixel %d was modified", i)
	}
}

func TestGridMasksHighBits(t *testing.T) {
	g := NewGrid(2, 2)

	g.Fill(Color(0xAB123456))
	for i, c := range g.Pix {
		assert.Equal(t, Color(0x123456), c, "pixel %d", i)
	}

	g.SetPixel(1, 1, Color(0xFF00FF00))
	assert.Equal(t, Green, g.Pixel(1, 1))
	assert.Equal(t, Red, Convert(Color(0xFF000000)|Red))
}

func TestGridRowMajor(t *testing.T) {
	g := NewGrid(8, 8)
	g.SetPixel(3, 2, Green)
	assert.Equal(t, 2*8+3, g.PixOffset(3, 2))
	assert.Equal(t, Green, g.Pix[19])
}

func testImage(t *testing.T, f func(image.Point) fillable, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(8, 8),
		image.Pt(16, 8),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						in := (image.Point{X: x, Y: y}).In(i.Bounds())
						i.Set(x, y, testRandomColor())
						if !in {
							if v := i.At(x, y); v != Black {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected black", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						if v := i.At(x, y); v != Black {
							itt.Fatalf("pixel (%d,%d) is not black", x, y)
						}
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
