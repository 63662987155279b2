// Package pixel implements the color and frame buffer types used by RGB LED matrices.
//
// Colors are packed 24-bit 0xRRGGBB values that satisfy Go's native [color.Color]
// interface, and [Grid] is a fixed-size frame buffer compatible with [image.Image] /
// [draw.Image].
package pixel
