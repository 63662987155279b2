package matrix

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

// GPIOConfig describes the pin assignments of a directly wired matrix, by periph pin name.
type GPIOConfig struct {
	// Red, Green and Blue are the PWM capable color channel pins.
	Red   string
	Green string
	Blue  string

	// Address lines A, B, C and D select the scan line. Unused lines may be left empty.
	Address [4]string

	// OE is the output enable pin (active low).
	OE string

	// CLK is the column clock pin.
	CLK string

	// LAT is the latch pin.
	LAT string
}

// DefaultGPIOConfig are the default pin assignments.
var DefaultGPIOConfig = GPIOConfig{
	Red:     "GPIO8",
	Green:   "GPIO9",
	Blue:    "GPIO46",
	Address: [4]string{"GPIO4", "GPIO5", "GPIO6", "GPIO7"},
	OE:      "GPIO1",
	CLK:     "GPIO2",
	LAT:     "GPIO42",
}

type gpioDriver struct {
	channels [3]gpio.PinOut
	address  [4]gpio.PinOut
	oe       gpio.PinOut
	clk      gpio.PinOut
	lat      gpio.PinOut
	freq     physic.Frequency
	levels   uint32
	row      int
}

// OpenGPIO returns a driver using the periph.io GPIO registry. The host drivers must have
// been initialized (host.Init) before calling.
func OpenGPIO(config *GPIOConfig) (Driver, error) {
	if config == nil {
		config = new(GPIOConfig)
		*config = DefaultGPIOConfig
	}

	var (
		d   = &gpioDriver{row: -1}
		err error
	)
	for ch, name := range [...]string{config.Red, config.Green, config.Blue} {
		if d.channels[ch], err = lookupPin(Channel(ch).String(), name); err != nil {
			return nil, err
		}
	}
	for i, name := range config.Address {
		if name == "" {
			continue
		}
		if d.address[i], err = lookupPin(fmt.Sprintf("address %c", 'A'+i), name); err != nil {
			return nil, err
		}
	}
	if d.oe, err = lookupPin("output enable", config.OE); err != nil {
		return nil, err
	}
	if d.clk, err = lookupPin("clock", config.CLK); err != nil {
		return nil, err
	}
	if d.lat, err = lookupPin("latch", config.LAT); err != nil {
		return nil, err
	}
	return d, nil
}

func lookupPin(role, name string) (gpio.PinOut, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no %s pin", ErrPin, role)
	}
	p := gpioreg.ByName(name)
	if p == nil || p == gpio.INVALID {
		return nil, fmt.Errorf("%w: %s pin %q not found", ErrPin, role, name)
	}
	return p, nil
}

func (d *gpioDriver) String() string {
	return fmt.Sprintf("GPIO R=%s G=%s B=%s", d.channels[RedChannel], d.channels[GreenChannel], d.channels[BlueChannel])
}

func (d *gpioDriver) ConfigurePins() (err error) {
	// Output disabled until the first latch.
	if err = d.oe.Out(gpio.High); err != nil {
		return
	}
	if err = d.clk.Out(gpio.Low); err != nil {
		return
	}
	if err = d.lat.Out(gpio.Low); err != nil {
		return
	}
	for _, p := range d.address {
		if p == nil {
			continue
		}
		if err = p.Out(gpio.Low); err != nil {
			return
		}
	}
	for _, p := range d.channels {
		if err = p.Out(gpio.Low); err != nil {
			return
		}
	}
	d.row = 0
	return
}

func (d *gpioDriver) ConfigurePWM(freq physic.Frequency, resolution uint8) error {
	if resolution == 0 || resolution > 16 {
		return fmt.Errorf("%w: %d bits", ErrResolution, resolution)
	}
	if freq <= 0 {
		return fmt.Errorf("matrix: invalid PWM frequency %s", freq)
	}
	d.freq = freq
	d.levels = 1<<resolution - 1
	for ch, p := range d.channels {
		if err := p.PWM(0, freq); err != nil {
			return fmt.Errorf("matrix: %s channel PWM: %w", Channel(ch), err)
		}
	}
	return nil
}

// duty maps an 8-bit intensity to a duty cycle quantized to the PWM resolution.
func (d *gpioDriver) duty(intensity uint8) gpio.Duty {
	level := uint64(intensity) * uint64(d.levels) / 255
	return gpio.Duty(level * uint64(gpio.DutyMax) / uint64(d.levels))
}

func (d *gpioDriver) WriteChannel(ch Channel, intensity uint8) error {
	if int(ch) >= len(d.channels) {
		return fmt.Errorf("matrix: invalid channel %d", ch)
	}
	if d.freq == 0 {
		return errors.New("matrix: PWM not configured")
	}
	return d.channels[ch].PWM(d.duty(intensity), d.freq)
}

// Select drives the scan line of y on the address lines and clocks in one column.
func (d *gpioDriver) Select(x, y int) error {
	if row := y % ScanLines; row != d.row {
		for i, p := range d.address {
			if p == nil {
				continue
			}
			if err := p.Out(gpio.Level(row&(1<<i) != 0)); err != nil {
				return err
			}
		}
		d.row = row
	}
	if err := d.clk.Out(gpio.High); err != nil {
		return err
	}
	return d.clk.Out(gpio.Low)
}

// Latch blanks the output while the shifted data is latched, then enables it again.
func (d *gpioDriver) Latch() (err error) {
	if err = d.oe.Out(gpio.High); err != nil {
		return
	}
	if err = d.lat.Out(gpio.High); err != nil {
		return
	}
	if err = d.lat.Out(gpio.Low); err != nil {
		return
	}
	return d.oe.Out(gpio.Low)
}

func (d *gpioDriver) Close() error {
	var errs []error
	errs = append(errs, d.oe.Out(gpio.High))
	for _, p := range d.channels {
		errs = append(errs, p.Out(gpio.Low), p.Halt())
	}
	return errors.Join(errs...)
}

// Interface checks.
var (
	_ Driver   = (*gpioDriver)(nil)
	_ Selector = (*gpioDriver)(nil)
	_ Latcher  = (*gpioDriver)(nil)
)
