//go:build !linux

package framebuffer

import (
	"github.com/BeatGlow/matrix"
)

// Open is only supported on Linux.
func Open(_ string, _ int) (matrix.Driver, error) {
	return nil, matrix.ErrNotSupported
}
