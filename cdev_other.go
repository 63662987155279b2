//go:build !linux

package matrix

// OpenCdev is only supported on Linux.
func OpenCdev(_ *CdevConfig) (Driver, error) {
	return nil, ErrNotSupported
}
