package matrix

// CdevConfig describes a matrix wired to a Linux GPIO character device, by line offset.
//
// The character device has no PWM, so color channels are switched on when the scaled
// intensity reaches Threshold.
type CdevConfig struct {
	// Chip is the GPIO chip name or path, such as "gpiochip0".
	Chip string

	// Red, Green and Blue are the color channel line offsets.
	Red   int
	Green int
	Blue  int

	// Address lines A, B, C and D. Use -1 for unused lines.
	Address [4]int

	// OE, CLK and LAT are the output enable, clock and latch line offsets.
	OE  int
	CLK int
	LAT int

	// Threshold is the lowest intensity that lights a channel, zero selects 128.
	Threshold uint8
}

// DefaultCdevConfig are the default line assignments.
var DefaultCdevConfig = CdevConfig{
	Chip:      "gpiochip0",
	Red:       8,
	Green:     9,
	Blue:      46,
	Address:   [4]int{4, 5, 6, 7},
	OE:        1,
	CLK:       2,
	LAT:       42,
	Threshold: 128,
}
