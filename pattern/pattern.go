// Package pattern contains demo animations for an LED matrix.
//
// Patterns only use the public drawing API, and block until the animation is done. Between
// frames they call a Delay, which may abort the animation by returning an error.
package pattern

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/draw"
	"github.com/BeatGlow/matrix/pixel"
	"github.com/BeatGlow/matrix/text"
)

// Canvas is the drawing API used by the patterns, it is implemented by *matrix.Matrix.
type Canvas interface {
	draw.Image

	SetPixel(x, y int, c pixel.Color)
	Clear()
	Fill(c pixel.Color)
	FillCircle(cx, cy, radius int, c pixel.Color)
	SetBrightness(v uint8)
	Update() error
	Err() error
}

// Delay waits between two frames.
type Delay func(time.Duration) error

// Sleep returns a Delay that waits on a timer, and returns the context error once ctx is done.
func Sleep(ctx context.Context) Delay {
	return func(d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
}

// Pattern is an animation.
type Pattern func(c Canvas, delay Delay) error

// ErrInvalid is returned for out of range pattern parameters.
var ErrInvalid = errors.New("pattern: invalid parameter")

var rainbow = [...]pixel.Color{
	0xFF0000, // red
	0xFF7F00, // orange
	0xFFFF00, // yellow
	0x00FF00, // green
	0x0000FF, // blue
	0x4B0082, // indigo
	0x9400D3, // violet
}

// RainbowColor returns color i of the 7 color rainbow, i wraps around.
func RainbowColor(i int) pixel.Color {
	i %= len(rainbow)
	if i < 0 {
		i += len(rainbow)
	}
	return rainbow[i]
}

// HueColor returns the fully saturated color with hue h, in degrees.
func HueColor(h float64) pixel.Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return pixel.RGB(colorful.Hsv(h, 1, 1).RGB255())
}

func size(c Canvas) (w, h int) {
	b := c.Bounds()
	return b.Dx(), b.Dy()
}

// show refreshes c and waits.
func show(c Canvas, delay Delay, d time.Duration) error {
	if err := c.Update(); err != nil {
		return err
	}
	return delay(d)
}

// Rainbow cycles diagonal rainbow stripes, one frame per rainbow color.
func Rainbow(speed time.Duration) Pattern {
	return func(c Canvas, delay Delay) error {
		w, h := size(c)
		for offset := 0; offset < len(rainbow); offset++ {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					c.SetPixel(x, y, RainbowColor(x+y+offset))
				}
			}
			if err := show(c, delay, speed); err != nil {
				return err
			}
		}
		return nil
	}
}

// BrightnessPulse fills the display with white and ramps the brightness from 50 up to 250 and
// from 255 down to 55 in steps of 10. The default brightness is restored afterwards.
func BrightnessPulse(speed time.Duration) Pattern {
	return func(c Canvas, delay Delay) (err error) {
		defer c.SetBrightness(matrix.DefaultBrightness)

		c.Fill(pixel.White)
		for v := 50; v <= 255; v += 10 {
			c.SetBrightness(uint8(v))
			if err = show(c, delay, speed); err != nil {
				return
			}
		}
		for v := 255; v >= 50; v -= 10 {
			c.SetBrightness(uint8(v))
			if err = show(c, delay, speed); err != nil {
				return
			}
		}
		return
	}
}

// BouncingFrames is the number of frames animated by BouncingDots.
const BouncingFrames = 100

type dot struct {
	x, y   int
	dx, dy int
	color  pixel.Color
}

// interior picks a start coordinate away from the edges, so a dot moving outward bounces
// on its first step instead of leaving the grid.
func interior(rng *rand.Rand, n int) int {
	if n <= 2 {
		return rng.Intn(n)
	}
	return 1 + rng.Intn(n-2)
}

// BouncingDots moves n dots diagonally, bouncing off the edges. Start positions and directions
// are drawn from rng; a nil rng uses a time seeded source.
func BouncingDots(n int, speed time.Duration, rng *rand.Rand) Pattern {
	return func(c Canvas, delay Delay) error {
		if n < 0 {
			return ErrInvalid
		}
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}

		w, h := size(c)
		dots := make([]dot, n)
		for i := range dots {
			dots[i] = dot{
				x:     interior(rng, w),
				y:     interior(rng, h),
				dx:    direction(rng),
				dy:    direction(rng),
				color: RainbowColor(i),
			}
		}

		for frame := 0; frame < BouncingFrames; frame++ {
			c.Clear()
			for i := range dots {
				d := &dots[i]
				d.x += d.dx
				d.y += d.dy
				if d.x <= 0 || d.x >= w-1 {
					d.dx = -d.dx
				}
				if d.y <= 0 || d.y >= h-1 {
					d.dy = -d.dy
				}
				c.SetPixel(d.x, d.y, d.color)
			}
			if err := show(c, delay, speed); err != nil {
				return err
			}
		}
		return nil
	}
}

func direction(rng *rand.Rand) int {
	if rng.Intn(2) == 1 {
		return 1
	}
	return -1
}

// CheckerboardInterval is the time between two checkerboard frames.
const CheckerboardInterval = 300 * time.Millisecond

// Checkerboard alternates two white checkerboards until duration has elapsed. Elapsed time is
// the sum of the frame delays.
func Checkerboard(duration time.Duration) Pattern {
	return func(c Canvas, delay Delay) error {
		w, h := size(c)
		for elapsed, phase := time.Duration(0), 0; elapsed < duration; elapsed += CheckerboardInterval {
			c.Clear()
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if (x+y+phase)%2 == 0 {
						c.SetPixel(x, y, pixel.White)
					}
				}
			}
			phase = (phase + 1) % 2
			if err := show(c, delay, CheckerboardInterval); err != nil {
				return err
			}
		}
		return nil
	}
}

// WavePhases is the number of frames animated by Wave.
const WavePhases = 32

// Wave draws rainbow colored columns whose height follows a travelling sine wave.
func Wave(amplitude uint8, speed time.Duration) Pattern {
	return func(c Canvas, delay Delay) error {
		w, h := size(c)
		for phase := 0; phase < WavePhases; phase++ {
			c.Clear()
			for x := 0; x < w; x++ {
				top := waveHeight(x, phase, amplitude, w, h)
				for y := 0; y <= top; y++ {
					c.SetPixel(x, y, RainbowColor(x+y))
				}
			}
			if err := show(c, delay, speed); err != nil {
				return err
			}
		}
		return nil
	}
}

func waveHeight(x, phase int, amplitude uint8, w, h int) int {
	y := int(float64(h/2) + float64(amplitude)*math.Sin(float64(x+phase)*math.Pi/4)/float64(w))
	if y < 0 {
		return 0
	}
	if y >= h {
		return h - 1
	}
	return y
}

// FillPause is the pause between the growing and the shrinking phase of FillAnimation.
const FillPause = 300 * time.Millisecond

// FillAnimation grows a cyan disc from the center, pauses, then shrinks a magenta disc.
func FillAnimation(speed time.Duration) Pattern {
	return func(c Canvas, delay Delay) error {
		w, h := size(c)
		cx, cy := w/2, h/2
		radius := max(cx, cy)

		c.Clear()
		for r := 0; r <= radius; r++ {
			c.FillCircle(cx, cy, r, pixel.Cyan)
			if err := frame(c, delay, speed); err != nil {
				return err
			}
		}

		if err := delay(FillPause); err != nil {
			return err
		}

		for r := radius; r > 0; r-- {
			c.Clear()
			c.FillCircle(cx, cy, r, pixel.Magenta)
			if err := frame(c, delay, speed); err != nil {
				return err
			}
		}
		return nil
	}
}

// frame waits after a primitive that already refreshed the display.
func frame(c Canvas, delay Delay, d time.Duration) error {
	if err := c.Err(); err != nil {
		return err
	}
	return delay(d)
}

// Hue rotates a smooth diagonal hue gradient around the color wheel, step degrees per frame.
func Hue(step float64, speed time.Duration) Pattern {
	return func(c Canvas, delay Delay) error {
		if step <= 0 || step > 360 {
			return ErrInvalid
		}
		w, h := size(c)
		spread := 360 / float64(w+h)
		for base := 0.0; base < 360; base += step {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					c.SetPixel(x, y, HueColor(base+float64(x+y)*spread))
				}
			}
			if err := show(c, delay, speed); err != nil {
				return err
			}
		}
		return nil
	}
}

// Marquee scrolls s from right to left, one pixel per frame, until it has left the display.
func Marquee(r text.Renderer, s string, color pixel.Color, speed time.Duration) Pattern {
	return func(c Canvas, delay Delay) error {
		w, h := size(c)
		width := r.Width(s)
		baseline := (h + r.Height()) / 2
		if baseline >= h {
			baseline = h - 1
		}
		for x := w; x >= -width; x-- {
			c.Clear()
			r.DrawString(c, x, baseline, s, color)
			if err := show(c, delay, speed); err != nil {
				return err
			}
		}
		return nil
	}
}
