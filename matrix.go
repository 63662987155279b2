// Package matrix contains a display manager for small RGB LED matrices.
//
// A [Matrix] owns the frame buffer and the global brightness, and pushes the buffer to a
// hardware [Driver] on [Matrix.Update]. Pixel writes are clipped silently, so animation code
// never has to check bounds.
package matrix

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/matrix/draw"
	"github.com/BeatGlow/matrix/pixel"
)

// Matrix geometry and timing.
const (
	// Width of the matrix in pixels.
	Width = 8

	// Height of the matrix in pixels.
	Height = 8

	// Pixels is the total number of pixels.
	Pixels = Width * Height

	// ScanLines is the number of multiplexed rows selected by the address lines.
	ScanLines = 4

	// ColorDepth is the number of bits per color channel.
	ColorDepth = 8

	// DefaultBrightness is the brightness of a newly constructed matrix.
	DefaultBrightness uint8 = 200

	// PWMFrequency is the default PWM frequency for LED dimming.
	PWMFrequency = 5 * physic.KiloHertz

	// PWMResolution is the default PWM resolution in bits.
	PWMResolution uint8 = 8
)

// Errors
var (
	ErrClosed       = errors.New("matrix: closed")
	ErrPin          = errors.New("matrix: invalid GPIO pin")
	ErrResolution   = errors.New("matrix: unsupported PWM resolution")
	ErrNotSupported = errors.New("matrix: not supported on this platform")
)

// Config is the display manager configuration.
type Config struct {
	// Brightness is the initial brightness. It is used as is, zero turns all LEDs off.
	Brightness uint8

	// PWMFrequency of the color channels, zero selects the package default.
	PWMFrequency physic.Frequency

	// PWMResolution of the color channels in bits, zero selects the package default.
	PWMResolution uint8
}

// DefaultConfig is the configuration used when none is given.
var DefaultConfig = Config{
	Brightness:    DefaultBrightness,
	PWMFrequency:  PWMFrequency,
	PWMResolution: PWMResolution,
}

// Matrix is the display manager. It owns an in-memory frame buffer which is only sent to
// the hardware by Update, or by one of the bulk mutators and shape primitives which end
// with exactly one Update before returning.
//
// All methods are safe for concurrent use; a primitive and its refresh run under a single
// lock so frames are never torn.
type Matrix struct {
	mu         sync.Mutex
	drv        Driver
	grid       *pixel.Grid
	brightness uint8
	config     Config
	err        error
}

// New returns a matrix driving drv. The frame buffer starts out black. Call [Matrix.Begin]
// before drawing, otherwise the hardware output is undefined.
func New(drv Driver, config *Config) *Matrix {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	m := &Matrix{
		drv:        drv,
		grid:       pixel.NewGrid(Width, Height),
		brightness: config.Brightness,
		config:     *config,
	}
	if m.config.PWMFrequency == 0 {
		m.config.PWMFrequency = DefaultConfig.PWMFrequency
	}
	if m.config.PWMResolution == 0 {
		m.config.PWMResolution = DefaultConfig.PWMResolution
	}
	return m
}

func (m *Matrix) String() string {
	return fmt.Sprintf("LED matrix %dx%d", Width, Height)
}

// Begin configures the pins and PWM channels, then clears the display.
//
// A non-nil error means the hardware could not be initialized and the display is unusable.
func (m *Matrix) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.drv == nil {
		return ErrClosed
	}
	if err := m.drv.ConfigurePins(); err != nil {
		return fmt.Errorf("matrix: configure pins: %w", err)
	}
	if err := m.drv.ConfigurePWM(m.config.PWMFrequency, m.config.PWMResolution); err != nil {
		return fmt.Errorf("matrix: configure PWM: %w", err)
	}
	logger.Debug().
		Stringer("frequency", m.config.PWMFrequency).
		Uint8("resolution", m.config.PWMResolution).
		Msg("hardware configured")

	m.grid.Clear()
	m.err = m.refresh()
	return m.err
}

// Bounds is the matrix bounding box.
func (m *Matrix) Bounds() image.Rectangle {
	return m.grid.Bounds()
}

// ColorModel used by the matrix.
func (m *Matrix) ColorModel() color.Model {
	return pixel.RGBModel
}

// At returns the color of the pixel at (x, y).
func (m *Matrix) At(x, y int) color.Color {
	return m.Pixel(x, y)
}

// Set the pixel color at (x, y). Like SetPixel it does not refresh.
func (m *Matrix) Set(x, y int, c color.Color) {
	m.SetPixel(x, y, pixel.Convert(c))
}

// SetPixel writes c at (x, y) in the frame buffer. Out of range coordinates are ignored.
func (m *Matrix) SetPixel(x, y int, c pixel.Color) {
	m.mu.Lock()
	m.grid.SetPixel(x, y, c)
	m.mu.Unlock()
}

// Pixel returns the stored color at (x, y), or black if out of range.
func (m *Matrix) Pixel(x, y int) pixel.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.grid.Pixel(x, y)
}

// Clear sets every pixel to black and refreshes.
func (m *Matrix) Clear() {
	m.ClearColor(pixel.Black)
}

// ClearColor sets every pixel to c and refreshes.
func (m *Matrix) ClearColor(c pixel.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grid.Fill(c)
	m.flush()
}

// Fill paints the whole canvas with c and refreshes.
func (m *Matrix) Fill(c pixel.Color) {
	m.ClearColor(c)
}

// DrawImage copies src, aligned with sp, over the whole matrix and refreshes.
func (m *Matrix) DrawImage(src image.Image, sp image.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if src == m {
		// Drawing the matrix onto itself reads from a copy of the grid.
		snapshot := *m.grid
		snapshot.Pix = append([]pixel.Color(nil), m.grid.Pix...)
		src = &snapshot
	}
	draw.Draw(m.grid, m.grid.Bounds(), src, sp, draw.Src)
	m.flush()
}

// SetBrightness sets the global brightness. It takes effect on the next Update.
func (m *Matrix) SetBrightness(v uint8) {
	m.mu.Lock()
	m.brightness = v
	m.mu.Unlock()
}

// Brightness returns the global brightness.
func (m *Matrix) Brightness() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brightness
}

// Update sends the frame buffer to the hardware, scaling every channel by the brightness.
func (m *Matrix) Update() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = m.refresh()
	return m.err
}

// Err returns the error of the most recent refresh, or nil once a refresh
// has succeeded again.
func (m *Matrix) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Close turns all LEDs off and releases the driver.
func (m *Matrix) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.drv == nil {
		return nil
	}
	m.grid.Clear()
	err := m.refresh()
	if cerr := m.drv.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("matrix: close driver: %w", cerr))
	}
	m.drv = nil
	return err
}

// flush refreshes on behalf of a mutator that can not return an error.
func (m *Matrix) flush() {
	if err := m.refresh(); err != nil {
		logger.Error().Err(err).Msg("refresh failed")
		m.err = err
		return
	}
	m.err = nil
}

func (m *Matrix) refresh() error {
	if m.drv == nil {
		return ErrClosed
	}

	selector, _ := m.drv.(Selector)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			r, g, b := m.grid.Pix[m.grid.PixOffset(x, y)].RGB()

			if selector != nil {
				if err := selector.Select(x, y); err != nil {
					return fmt.Errorf("matrix: select (%d,%d): %w", x, y, err)
				}
			}
			for ch, v := range [...]uint8{r, g, b} {
				if err := m.drv.WriteChannel(Channel(ch), pixel.Scale(v, m.brightness)); err != nil {
					return fmt.Errorf("matrix: write %s channel: %w", Channel(ch), err)
				}
			}
		}
	}

	if latcher, ok := m.drv.(Latcher); ok {
		if err := latcher.Latch(); err != nil {
			return fmt.Errorf("matrix: latch: %w", err)
		}
	}
	return nil
}

// Interface checks.
var (
	_ draw.Image = (*Matrix)(nil)
)
