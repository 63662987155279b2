package matrix

import (
	"periph.io/x/conn/v3/physic"
)

// Channel identifies one of the color PWM channels.
type Channel uint8

// Color channels, in the order they are emitted for every pixel.
const (
	RedChannel Channel = iota
	GreenChannel
	BlueChannel
)

func (ch Channel) String() string {
	switch ch {
	case RedChannel:
		return "red"
	case GreenChannel:
		return "green"
	case BlueChannel:
		return "blue"
	default:
		return "invalid"
	}
}

// Driver is the hardware interface the display manager depends on.
//
// The lifecycle is: ConfigurePins, ConfigurePWM, any number of WriteChannel calls, Close.
type Driver interface {
	// ConfigurePins sets the direction and initial level of every pin.
	ConfigurePins() error

	// ConfigurePWM sets up the color channels with the given PWM frequency and
	// resolution (in bits).
	ConfigurePWM(freq physic.Frequency, resolution uint8) error

	// WriteChannel emits an already brightness-scaled intensity on a color channel.
	WriteChannel(ch Channel, intensity uint8) error

	// Close releases the hardware.
	Close() error
}

// Selector is implemented by drivers with row/column address lines. Select is called
// before the color channels of each pixel are written.
type Selector interface {
	Select(x, y int) error
}

// Latcher is implemented by drivers that need a strobe once a full frame has been written.
type Latcher interface {
	Latch() error
}
