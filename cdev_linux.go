//go:build linux

package matrix

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/physic"
)

const cdevConsumer = "ledmatrix"

type cdevDriver struct {
	config   CdevConfig
	channels [3]*gpiocdev.Line
	address  [4]*gpiocdev.Line
	oe       *gpiocdev.Line
	clk      *gpiocdev.Line
	lat      *gpiocdev.Line
	row      int
}

// OpenCdev returns a driver for a matrix wired to a GPIO character device. The lines are
// requested by ConfigurePins.
func OpenCdev(config *CdevConfig) (Driver, error) {
	if config == nil {
		config = new(CdevConfig)
		*config = DefaultCdevConfig
	}
	if config.Chip == "" {
		return nil, errors.New("matrix: no GPIO chip")
	}

	d := &cdevDriver{
		config: *config,
		row:    -1,
	}
	if d.config.Threshold == 0 {
		d.config.Threshold = DefaultCdevConfig.Threshold
	}
	for _, offset := range []int{config.Red, config.Green, config.Blue, config.OE, config.CLK, config.LAT} {
		if offset < 0 {
			return nil, fmt.Errorf("%w: negative line offset %d", ErrPin, offset)
		}
	}
	return d, nil
}

func (d *cdevDriver) String() string {
	return fmt.Sprintf("GPIO character device %s", d.config.Chip)
}

func (d *cdevDriver) request(offset, value int) (*gpiocdev.Line, error) {
	l, err := gpiocdev.RequestLine(d.config.Chip, offset, gpiocdev.AsOutput(value), gpiocdev.WithConsumer(cdevConsumer))
	if err != nil {
		return nil, fmt.Errorf("matrix: request line %d on %s: %w", offset, d.config.Chip, err)
	}
	return l, nil
}

func (d *cdevDriver) ConfigurePins() (err error) {
	// Lines held from an earlier call are released before requesting them again.
	if err = d.Close(); err != nil {
		return fmt.Errorf("matrix: release lines: %w", err)
	}
	defer func() {
		if err != nil {
			_ = d.Close()
		}
	}()

	// Output disabled until the first latch.
	if d.oe, err = d.request(d.config.OE, 1); err != nil {
		return
	}
	if d.clk, err = d.request(d.config.CLK, 0); err != nil {
		return
	}
	if d.lat, err = d.request(d.config.LAT, 0); err != nil {
		return
	}
	for i, offset := range d.config.Address {
		if offset < 0 {
			continue
		}
		if d.address[i], err = d.request(offset, 0); err != nil {
			return
		}
	}
	for ch, offset := range [...]int{d.config.Red, d.config.Green, d.config.Blue} {
		if d.channels[ch], err = d.request(offset, 0); err != nil {
			return
		}
	}
	d.row = 0
	return
}

func (d *cdevDriver) ConfigurePWM(freq physic.Frequency, resolution uint8) error {
	logger.Debug().
		Stringer("frequency", freq).
		Uint8("resolution", resolution).
		Uint8("threshold", d.config.Threshold).
		Msg("character device has no PWM, color channels are on/off")
	return nil
}

func (d *cdevDriver) WriteChannel(ch Channel, intensity uint8) error {
	if int(ch) >= len(d.channels) {
		return fmt.Errorf("matrix: invalid channel %d", ch)
	}
	l := d.channels[ch]
	if l == nil {
		return errors.New("matrix: pins not configured")
	}
	if intensity >= d.config.Threshold {
		return l.SetValue(1)
	}
	return l.SetValue(0)
}

func (d *cdevDriver) Select(x, y int) error {
	if d.clk == nil {
		return errors.New("matrix: pins not configured")
	}
	if row := y % ScanLines; row != d.row {
		for i, l := range d.address {
			if l == nil {
				continue
			}
			if err := l.SetValue((row >> i) & 1); err != nil {
				return err
			}
		}
		d.row = row
	}
	if err := d.clk.SetValue(1); err != nil {
		return err
	}
	return d.clk.SetValue(0)
}

func (d *cdevDriver) Latch() (err error) {
	if d.oe == nil {
		return errors.New("matrix: pins not configured")
	}
	if err = d.oe.SetValue(1); err != nil {
		return
	}
	if err = d.lat.SetValue(1); err != nil {
		return
	}
	if err = d.lat.SetValue(0); err != nil {
		return
	}
	return d.oe.SetValue(0)
}

func (d *cdevDriver) Close() error {
	var errs []error
	lines := append([]*gpiocdev.Line{d.oe, d.clk, d.lat}, d.address[:]...)
	lines = append(lines, d.channels[:]...)
	for _, l := range lines {
		if l != nil {
			errs = append(errs, l.Close())
		}
	}
	d.channels = [3]*gpiocdev.Line{}
	d.address = [4]*gpiocdev.Line{}
	d.oe, d.clk, d.lat = nil, nil, nil
	return errors.Join(errs...)
}

// Interface checks.
var (
	_ Driver   = (*cdevDriver)(nil)
	_ Selector = (*cdevDriver)(nil)
	_ Latcher  = (*cdevDriver)(nil)
)
