// Package matrixtest implements fakes for testing code that drives an LED matrix.
package matrixtest

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/matrix"
)

// Write is a single channel write.
type Write struct {
	X, Y      int
	Channel   matrix.Channel
	Intensity uint8
}

// Recorder implements matrix.Driver, matrix.Selector and matrix.Latcher by recording every
// call in memory.
//
// Set the Fail* members to simulate hardware errors. Grab the Mutex before reading the
// recorded members while the matrix is in use.
type Recorder struct {
	sync.Mutex

	// FailPins, FailPWM and FailWrite are returned by the corresponding calls when set.
	FailPins  error
	FailPWM   error
	FailWrite error

	PinsConfigured int
	Frequency      physic.Frequency
	Resolution     uint8
	Writes         []Write
	Frames         int
	Closed         bool

	x, y  int
	frame []Write
	last  []Write
}

func (r *Recorder) String() string {
	return "recorder"
}

func (r *Recorder) ConfigurePins() error {
	r.Lock()
	defer r.Unlock()
	if r.FailPins != nil {
		return r.FailPins
	}
	r.PinsConfigured++
	return nil
}

func (r *Recorder) ConfigurePWM(freq physic.Frequency, resolution uint8) error {
	r.Lock()
	defer r.Unlock()
	if r.FailPWM != nil {
		return r.FailPWM
	}
	r.Frequency = freq
	r.Resolution = resolution
	return nil
}

func (r *Recorder) WriteChannel(ch matrix.Channel, intensity uint8) error {
	r.Lock()
	defer r.Unlock()
	if r.Closed {
		return errors.New("matrixtest: closed")
	}
	if r.FailWrite != nil {
		return r.FailWrite
	}
	w := Write{X: r.x, Y: r.y, Channel: ch, Intensity: intensity}
	r.Writes = append(r.Writes, w)
	r.frame = append(r.frame, w)
	return nil
}

func (r *Recorder) Select(x, y int) error {
	r.Lock()
	r.x, r.y = x, y
	r.Unlock()
	return nil
}

func (r *Recorder) Latch() error {
	r.Lock()
	defer r.Unlock()
	r.Frames++
	r.last, r.frame = r.frame, nil
	return nil
}

func (r *Recorder) Close() error {
	r.Lock()
	defer r.Unlock()
	r.Closed = true
	return nil
}

// LastFrame returns the intensities emitted by the last latched frame, indexed by [y][x]
// and then by channel.
func (r *Recorder) LastFrame() [matrix.Height][matrix.Width][3]uint8 {
	r.Lock()
	defer r.Unlock()
	var out [matrix.Height][matrix.Width][3]uint8
	for _, w := range r.last {
		if w.Y < 0 || w.Y >= matrix.Height || w.X < 0 || w.X >= matrix.Width || int(w.Channel) >= 3 {
			continue
		}
		out[w.Y][w.X][w.Channel] = w.Intensity
	}
	return out
}

// Reset forgets all recorded writes and frames.
func (r *Recorder) Reset() {
	r.Lock()
	defer r.Unlock()
	r.Writes = nil
	r.Frames = 0
	r.frame, r.last = nil, nil
}

// Summary returns a short description of the recorded activity.
func (r *Recorder) Summary() string {
	r.Lock()
	defer r.Unlock()
	return fmt.Sprintf("%d frames, %d writes at %s/%d bits", r.Frames, len(r.Writes), r.Frequency, r.Resolution)
}

// Interface checks.
var (
	_ matrix.Driver   = (*Recorder)(nil)
	_ matrix.Selector = (*Recorder)(nil)
	_ matrix.Latcher  = (*Recorder)(nil)
)
