package framebuffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"
	"syscall"
	"unsafe"

	"github.com/BeatGlow/matrix"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

type linuxFrameBuffer struct {
	Mirror
	f          *os.File
	fd         uintptr
	info       linuxFrameBufferInfo
	screenInfo linuxVarScreenInfo
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x]. Every LED is
// drawn as a scale×scale block, zero selects DefaultScale.
func Open(name string, scale int) (matrix.Driver, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	fb := &linuxFrameBuffer{
		f:  f,
		fd: f.Fd(),
	}
	if err = fb.ioctl(fbioGetFScreenInfo, unsafe.Pointer(&fb.info)); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = fb.ioctl(fbioGetVScreenInfo, unsafe.Pointer(&fb.screenInfo)); err != nil {
		_ = f.Close()
		return nil, err
	}
	if fb.Format, err = linuxParseFormat(&fb.screenInfo); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	if fb.Pix, err = syscall.Mmap(int(fb.fd), 0, int(fb.info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED); err != nil {
		_ = f.Close()
		return nil, err
	}

	fb.Rect = image.Rect(
		int(fb.screenInfo.Xoffset), int(fb.screenInfo.Yoffset),
		int(fb.screenInfo.Xoffset+fb.screenInfo.Xres), int(fb.screenInfo.Yoffset+fb.screenInfo.Yres),
	)
	fb.Stride = int(fb.info.LineLength)
	fb.Order = binary.LittleEndian
	fb.Scale = scale
	return fb, nil
}

func (fb *linuxFrameBuffer) String() string {
	return fmt.Sprintf("%s on %s", &fb.Mirror, fb.f.Name())
}

// Close the framebuffer device
func (fb *linuxFrameBuffer) Close() error {
	if err := syscall.Munmap(fb.Pix); err != nil {
		return err
	}
	return fb.f.Close()
}

func (fb *linuxFrameBuffer) ioctl(cmd uintptr, arg unsafe.Pointer) (err error) {
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fb.fd, cmd, uintptr(arg)); errno != 0 {
		return &os.SyscallError{
			Syscall: "SYS_IOCTL",
			Err:     errno,
		}
	}
	return nil
}

type linuxFrameBufferInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

// linuxBitField for the color
type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// linuxVarScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

func field(f linuxBitField, offset, length uint32) bool {
	return f.Offset == offset && f.Length == length
}

func linuxParseFormat(info *linuxVarScreenInfo) (Format, error) {
	if info == nil {
		return UnknownFormat, errors.New("framebuffer: invalid VarScreenInfo")
	}

	switch info.BitsPerPixel {
	case 15, 16:
		switch {
		case field(info.Red, 10, 5) && field(info.Green, 5, 5) && field(info.Blue, 0, 5):
			return RGB555, nil
		case field(info.Blue, 10, 5) && field(info.Green, 5, 5) && field(info.Red, 0, 5):
			return BGR555, nil
		case field(info.Red, 11, 5) && field(info.Green, 5, 6) && field(info.Blue, 0, 5):
			return RGB565, nil
		case field(info.Blue, 11, 5) && field(info.Green, 5, 6) && field(info.Red, 0, 5):
			return BGR565, nil
		}

	case 32:
		switch {
		case field(info.Red, 16, 8) && field(info.Green, 8, 8) && field(info.Blue, 0, 8):
			return XRGB8888, nil
		case field(info.Blue, 16, 8) && field(info.Green, 8, 8) && field(info.Red, 0, 8):
			return XBGR8888, nil
		}
	}

	return UnknownFormat, fmt.Errorf("framebuffer: unsupported color model (%d bpp)", info.BitsPerPixel)
}
