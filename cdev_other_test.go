//go:build !linux

package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenCdev(t *testing.T) {
	_, err := OpenCdev(nil)
	assert.ErrorIs(t, err, ErrNotSupported)
}
