// Package framebuffer mirrors an LED matrix onto the operating system's native framebuffer.
//
// This requires framebuffer device support in the operating system. The device is opened with
// [Open] and implements [matrix.Driver]: every LED is painted as a square block of pixels, so
// a small TFT or an HDMI screen can stand in for the real matrix.
package framebuffer

import (
	"encoding/binary"
	"fmt"
	"image"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/matrix"
)

// DefaultScale is the default size of one LED block, in framebuffer pixels.
const DefaultScale = 16

// Format is a framebuffer pixel format, named from the most to the least significant bits.
type Format int

// Supported formats.
const (
	UnknownFormat Format = iota
	RGB555
	BGR555
	RGB565
	BGR565
	XRGB8888
	XBGR8888
)

func (f Format) String() string {
	switch f {
	case RGB555:
		return "RGB555"
	case BGR555:
		return "BGR555"
	case RGB565:
		return "RGB565"
	case BGR565:
		return "BGR565"
	case XRGB8888:
		return "XRGB8888"
	case XBGR8888:
		return "XBGR8888"
	default:
		return "unknown"
	}
}

// BytesPerPixel is the storage size of one pixel.
func (f Format) BytesPerPixel() int {
	switch f {
	case RGB555, BGR555, RGB565, BGR565:
		return 2
	case XRGB8888, XBGR8888:
		return 4
	default:
		return 0
	}
}

func (f Format) encode(b []byte, order binary.ByteOrder, r, g, bl uint8) {
	switch f {
	case RGB555:
		order.PutUint16(b, uint16(r>>3)<<10|uint16(g>>3)<<5|uint16(bl>>3))
	case BGR555:
		order.PutUint16(b, uint16(bl>>3)<<10|uint16(g>>3)<<5|uint16(r>>3))
	case RGB565:
		order.PutUint16(b, uint16(r>>3)<<11|uint16(g>>2)<<5|uint16(bl>>3))
	case BGR565:
		order.PutUint16(b, uint16(bl>>3)<<11|uint16(g>>2)<<5|uint16(r>>3))
	case XRGB8888:
		order.PutUint32(b, 0xff<<24|uint32(r)<<16|uint32(g)<<8|uint32(bl))
	case XBGR8888:
		order.PutUint32(b, 0xff<<24|uint32(bl)<<16|uint32(g)<<8|uint32(r))
	}
}

// Mirror paints matrix frames into a pixel buffer. It implements matrix.Driver,
// matrix.Selector and matrix.Latcher.
type Mirror struct {
	// Pix is the pixel buffer, typically memory mapped from the device.
	Pix []byte

	// Rect is the visible area of Pix.
	Rect image.Rectangle

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int

	// Format of the pixels in Pix.
	Format Format

	// Order of the bytes within a pixel.
	Order binary.ByteOrder

	// Scale is the size of one LED block.
	Scale int

	x, y  int
	frame [matrix.Height][matrix.Width][3]uint8
}

func (m *Mirror) String() string {
	return fmt.Sprintf("framebuffer %dx%d %s", m.Rect.Dx(), m.Rect.Dy(), m.Format)
}

// ConfigurePins blanks the buffer.
func (m *Mirror) ConfigurePins() error {
	if m.Format.BytesPerPixel() == 0 {
		return fmt.Errorf("framebuffer: unsupported pixel format %s", m.Format)
	}
	if m.Order == nil {
		m.Order = binary.LittleEndian
	}
	if m.Scale <= 0 {
		m.Scale = DefaultScale
	}
	m.frame = [matrix.Height][matrix.Width][3]uint8{}
	return m.Latch()
}

// ConfigurePWM is a no-op, the framebuffer shows every intensity as is.
func (m *Mirror) ConfigurePWM(_ physic.Frequency, _ uint8) error {
	return nil
}

func (m *Mirror) Select(x, y int) error {
	m.x, m.y = x, y
	return nil
}

func (m *Mirror) WriteChannel(ch matrix.Channel, intensity uint8) error {
	if int(ch) >= 3 {
		return fmt.Errorf("framebuffer: invalid channel %d", ch)
	}
	if m.x < 0 || m.x >= matrix.Width || m.y < 0 || m.y >= matrix.Height {
		return nil
	}
	m.frame[m.y][m.x][ch] = intensity
	return nil
}

// Latch paints the collected frame.
func (m *Mirror) Latch() error {
	bpp := m.Format.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("framebuffer: unsupported pixel format %s", m.Format)
	}
	for y := 0; y < matrix.Height; y++ {
		for x := 0; x < matrix.Width; x++ {
			v := m.frame[y][x]
			block := image.Rect(x*m.Scale, y*m.Scale, (x+1)*m.Scale, (y+1)*m.Scale).
				Add(m.Rect.Min).
				Intersect(m.Rect)
			for py := block.Min.Y; py < block.Max.Y; py++ {
				for px := block.Min.X; px < block.Max.X; px++ {
					i := py*m.Stride + px*bpp
					if i+bpp > len(m.Pix) {
						continue
					}
					m.Format.encode(m.Pix[i:i+bpp], m.Order, v[0], v[1], v[2])
				}
			}
		}
	}
	return nil
}

// Close is a no-op, devices returned by Open release their mapping.
func (m *Mirror) Close() error {
	return nil
}

// Interface checks.
var (
	_ matrix.Driver   = (*Mirror)(nil)
	_ matrix.Selector = (*Mirror)(nil)
	_ matrix.Latcher  = (*Mirror)(nil)
)
