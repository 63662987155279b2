package draw

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var on = color.RGBA{R: 0xff, A: 0xff}

func lit(img *image.RGBA) map[image.Point]bool {
	out := make(map[image.Point]bool)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == on {
				out[image.Pt(x, y)] = true
			}
		}
	}
	return out
}

func points(pts ...image.Point) map[image.Point]bool {
	out := make(map[image.Point]bool, len(pts))
	for _, p := range pts {
		out[p] = true
	}
	return out
}

func TestHorizontalLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	HorizontalLine(img, 5, 1, 6, on)
	assert.Equal(t, points(image.Pt(5, 1), image.Pt(6, 1), image.Pt(7, 1)), lit(img))

	img = image.NewRGBA(image.Rect(0, 0, 8, 8))
	HorizontalLine(img, 2, 2, 0, on)
	assert.Empty(t, lit(img))
}

func TestVerticalLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	VerticalLine(img, 0, -1, 3, on)
	assert.Equal(t, points(image.Pt(0, 0), image.Pt(0, 1)), lit(img))
}

func TestLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Line(img, image.Pt(3, 3), image.Pt(0, 0), on)
	assert.Equal(t, points(image.Pt(0, 0), image.Pt(1, 1), image.Pt(2, 2), image.Pt(3, 3)), lit(img))

	img = image.NewRGBA(image.Rect(0, 0, 8, 8))
	Line(img, image.Pt(0, 7), image.Pt(7, 4), on)
	got := lit(img)
	assert.True(t, got[image.Pt(0, 7)])
	assert.True(t, got[image.Pt(7, 4)])
	assert.Len(t, got, 8)
}

func TestRectangle(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Rectangle(img, image.Rect(1, 1, 4, 4), on)
	assert.Equal(t, points(
		image.Pt(1, 1), image.Pt(2, 1), image.Pt(3, 1),
		image.Pt(1, 2), image.Pt(3, 2),
		image.Pt(1, 3), image.Pt(2, 3), image.Pt(3, 3),
	), lit(img))
}

func TestBox(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Box(img, image.Rect(6, 6, 10, 10), on)
	assert.Equal(t, points(image.Pt(6, 6), image.Pt(7, 6), image.Pt(6, 7), image.Pt(7, 7)), lit(img))
}

func TestCircle(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Circle(img, image.Pt(4, 4), 0, on)
	assert.Equal(t, points(image.Pt(4, 4)), lit(img))

	img = image.NewRGBA(image.Rect(0, 0, 8, 8))
	Circle(img, image.Pt(4, 4), 1, on)
	assert.Equal(t, points(image.Pt(5, 4), image.Pt(3, 4), image.Pt(4, 5), image.Pt(4, 3)), lit(img))
}

func TestDisc(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Disc(img, image.Pt(0, 0), 1, on)
	assert.Equal(t, points(image.Pt(0, 0), image.Pt(1, 0), image.Pt(0, 1)), lit(img))

	img = image.NewRGBA(image.Rect(0, 0, 8, 8))
	Disc(img, image.Pt(4, 4), 2, on)
	assert.Len(t, lit(img), 13)
}
