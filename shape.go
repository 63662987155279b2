package matrix

import (
	"image"

	"github.com/BeatGlow/matrix/draw"
	"github.com/BeatGlow/matrix/pixel"
)

// The shape primitives below touch the frame buffer pixel by pixel, then refresh the
// hardware exactly once.

// DrawHLine draws a horizontal line of length pixels starting at (x, y).
func (m *Matrix) DrawHLine(x, y, length int, c pixel.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draw.HorizontalLine(m.grid, x, y, length, c)
	m.flush()
}

// DrawVLine draws a vertical line of length pixels starting at (x, y).
func (m *Matrix) DrawVLine(x, y, length int, c pixel.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draw.VerticalLine(m.grid, x, y, length, c)
	m.flush()
}

// DrawRect draws the outline of a w×h rectangle with its top left corner at (x, y).
func (m *Matrix) DrawRect(x, y, w, h int, c pixel.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w > 0 && h > 0 {
		draw.Rectangle(m.grid, image.Rect(x, y, x+w, y+h), c)
	}
	m.flush()
}

// FillRect fills a w×h rectangle with its top left corner at (x, y).
func (m *Matrix) FillRect(x, y, w, h int, c pixel.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w > 0 && h > 0 {
		draw.Box(m.grid, image.Rect(x, y, x+w, y+h), c)
	}
	m.flush()
}

// DrawCircle draws a circle outline around (cx, cy).
func (m *Matrix) DrawCircle(cx, cy, radius int, c pixel.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draw.Circle(m.grid, image.Pt(cx, cy), radius, c)
	m.flush()
}

// FillCircle draws a filled circle around (cx, cy).
func (m *Matrix) FillCircle(cx, cy, radius int, c pixel.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draw.Disc(m.grid, image.Pt(cx, cy), radius, c)
	m.flush()
}
