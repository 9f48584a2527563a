// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"fmt"
	"math"
)

// Echo adds a delayed copy of the signal held in a circular buffer:
//
//	y[n] = x[n] + gain*x[n-D]   (feed forward)
//	y[n] = x[n] + gain*y[n-D]   (feedback)
type Echo struct {
	buf      []float32
	pos      int
	gain     float32
	feedback bool
}

// NewEcho returns an echo with a delay of delay samples.
func NewEcho(delay int, gain float32, feedback bool) (*Echo, error) {
	if delay < 1 {
		return nil, fmt.Errorf("%w: echo delay must be at least one sample, got %d", ErrInvalidParams, delay)
	}
	if feedback && (gain <= -1 || gain >= 1) {
		return nil, fmt.Errorf("%w: feedback gain %g is unstable", ErrInvalidParams, gain)
	}

	return &Echo{
		buf:      make([]float32, delay),
		gain:     gain,
		feedback: feedback,
	}, nil
}

func (e *Echo) Process(x float32) float32 {
	y := x + e.gain*e.buf[e.pos]

	if e.feedback {
		e.buf[e.pos] = y
	} else {
		e.buf[e.pos] = x
	}
	e.pos = (e.pos + 1) % len(e.buf)

	return y
}

// FractionalDelay delays the signal by a non-integer number of samples,
// interpolating linearly between the two nearest stored samples.
type FractionalDelay struct {
	buf   []float32
	pos   int
	whole int
	frac  float32
}

// NewFractionalDelay returns a delay line of delay samples (delay >= 0).
func NewFractionalDelay(delay float64) (*FractionalDelay, error) {
	if delay < 0 || math.IsNaN(delay) || math.IsInf(delay, 0) {
		return nil, fmt.Errorf("%w: delay %g samples", ErrInvalidParams, delay)
	}

	whole := int(math.Floor(delay))
	return &FractionalDelay{
		buf:   make([]float32, whole+2),
		whole: whole,
		frac:  float32(delay - float64(whole)),
	}, nil
}

func (d *FractionalDelay) Process(x float32) float32 {
	n := len(d.buf)
	d.buf[d.pos] = x

	a := d.buf[(d.pos-d.whole+n)%n]
	b := d.buf[(d.pos-d.whole-1+n)%n]
	d.pos = (d.pos + 1) % n

	return a + d.frac*(b-a)
}
