// Package config loads the runtime configuration of the matrix-test command.
package config

import (
	"fmt"
	"os"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/framebuffer"
	"github.com/BeatGlow/matrix/pixel"
)

// Driver kinds.
const (
	DriverGPIO = "gpio"
	DriverCdev = "cdev"
	DriverSim  = "sim"
	DriverFB   = "fb"
)

type PWM struct {
	FrequencyHz int   `yaml:"frequency_hz"`
	Resolution  uint8 `yaml:"resolution"`
}

type GPIO struct {
	Red     string    `yaml:"red"`
	Green   string    `yaml:"green"`
	Blue    string    `yaml:"blue"`
	Address [4]string `yaml:"address"` // A, B, C, D; empty when not wired
	OE      string    `yaml:"oe"`
	CLK     string    `yaml:"clk"`
	LAT     string    `yaml:"lat"`
}

type Cdev struct {
	Chip      string `yaml:"chip"` // e.g. gpiochip0
	Red       int    `yaml:"red"`
	Green     int    `yaml:"green"`
	Blue      int    `yaml:"blue"`
	Address   [4]int `yaml:"address"` // -1 when not wired
	OE        int    `yaml:"oe"`
	CLK       int    `yaml:"clk"`
	LAT       int    `yaml:"lat"`
	Threshold uint8  `yaml:"threshold"`
}

type Framebuffer struct {
	Device string `yaml:"device"` // e.g. /dev/fb0
	Scale  int    `yaml:"scale"`  // pixels per LED
}

type Text struct {
	Message string  `yaml:"message"`
	Font    string  `yaml:"font"` // "bitmap" | "vector"
	Size    float64 `yaml:"size,omitempty"`
	Color   string  `yaml:"color"` // e.g. #00ff00
}

type Config struct {
	Driver     string        `yaml:"driver"` // "gpio" | "cdev" | "fb" | "sim"
	Brightness uint8         `yaml:"brightness"`
	Speed      time.Duration `yaml:"speed"`
	Patterns   []string      `yaml:"patterns"`

	PWM         PWM         `yaml:"pwm"`
	GPIO        GPIO        `yaml:"gpio"`
	Cdev        Cdev        `yaml:"cdev"`
	Framebuffer Framebuffer `yaml:"framebuffer"`
	Text        Text        `yaml:"text"`
}

// Default returns the configuration matching the matrix package defaults.
func Default() *Config {
	var (
		g = matrix.DefaultGPIOConfig
		c = matrix.DefaultCdevConfig
	)
	return &Config{
		Driver:     DriverGPIO,
		Brightness: matrix.DefaultBrightness,
		Speed:      100 * time.Millisecond,
		Patterns:   []string{"rainbow", "pulse", "dots", "checkerboard", "wave", "fill", "hue", "marquee"},
		PWM: PWM{
			FrequencyHz: int(matrix.PWMFrequency / physic.Hertz),
			Resolution:  matrix.PWMResolution,
		},
		GPIO: GPIO{
			Red:     g.Red,
			Green:   g.Green,
			Blue:    g.Blue,
			Address: g.Address,
			OE:      g.OE,
			CLK:     g.CLK,
			LAT:     g.LAT,
		},
		Cdev: Cdev{
			Chip:      c.Chip,
			Red:       c.Red,
			Green:     c.Green,
			Blue:      c.Blue,
			Address:   c.Address,
			OE:        c.OE,
			CLK:       c.CLK,
			LAT:       c.LAT,
			Threshold: c.Threshold,
		},
		Framebuffer: Framebuffer{
			Device: "/dev/fb0",
			Scale:  framebuffer.DefaultScale,
		},
		Text: Text{
			Message: "HELLO",
			Font:    "bitmap",
			Color:   "#00ff00",
		},
	}
}

// Load reads a YAML file, keys missing from the file keep their Default value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate checks the values that can not be checked by the drivers.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverGPIO, DriverCdev, DriverFB, DriverSim:
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.Speed < 0 {
		return fmt.Errorf("negative speed %s", c.Speed)
	}
	if c.Framebuffer.Scale < 0 {
		return fmt.Errorf("negative framebuffer scale %d", c.Framebuffer.Scale)
	}
	if c.PWM.FrequencyHz < 0 {
		return fmt.Errorf("negative PWM frequency %d", c.PWM.FrequencyHz)
	}
	switch c.Text.Font {
	case "bitmap", "vector":
	default:
		return fmt.Errorf("unknown font %q", c.Text.Font)
	}
	if _, err := c.Text.RGB(); err != nil {
		return err
	}
	return nil
}

// Matrix returns the display manager configuration.
func (c *Config) Matrix() *matrix.Config {
	return &matrix.Config{
		Brightness:    c.Brightness,
		PWMFrequency:  physic.Frequency(c.PWM.FrequencyHz) * physic.Hertz,
		PWMResolution: c.PWM.Resolution,
	}
}

func (c *Config) GPIOConfig() *matrix.GPIOConfig {
	return &matrix.GPIOConfig{
		Red:     c.GPIO.Red,
		Green:   c.GPIO.Green,
		Blue:    c.GPIO.Blue,
		Address: c.GPIO.Address,
		OE:      c.GPIO.OE,
		CLK:     c.GPIO.CLK,
		LAT:     c.GPIO.LAT,
	}
}

func (c *Config) CdevConfig() *matrix.CdevConfig {
	return &matrix.CdevConfig{
		Chip:      c.Cdev.Chip,
		Red:       c.Cdev.Red,
		Green:     c.Cdev.Green,
		Blue:      c.Cdev.Blue,
		Address:   c.Cdev.Address,
		OE:        c.Cdev.OE,
		CLK:       c.Cdev.CLK,
		LAT:       c.Cdev.LAT,
		Threshold: c.Cdev.Threshold,
	}
}

// RGB parses the text color.
func (t Text) RGB() (pixel.Color, error) {
	c, err := colorful.Hex(t.Color)
	if err != nil {
		return pixel.Black, fmt.Errorf("text color: %w", err)
	}
	return pixel.RGB(c.RGB255()), nil
}
