// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"fmt"
	"math"
)

// Canonical is an IIR filter in direct form II (canonical form):
//
//	w[n] = x[n] - a1*w[n-1] - ... - aN*w[n-N]
//	y[n] = b0*w[n] + b1*w[n-1] + ... + bN*w[n-N]
//
// The coefficients are normalized so that a0 == 1.
type Canonical struct {
	b []float64 // feed forward
	a []float64 // feedback, a[0] == 1
	w []float64 // delay line, w[0] is w[n-1]
}

// NewCanonical builds a filter from feed forward (b) and feedback (a)
// coefficients. An empty a is treated as {1}, giving an FIR filter.
func NewCanonical(b, a []float64) (*Canonical, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: no b coefficients", ErrInvalidParams)
	}
	if len(a) == 0 {
		a = []float64{1}
	}
	if a[0] == 0 {
		return nil, fmt.Errorf("%w: a[0] must not be zero", ErrInvalidParams)
	}

	order := max(len(a), len(b))
	c := &Canonical{
		b: make([]float64, order),
		a: make([]float64, order),
		w: make([]float64, order-1),
	}
	for i, v := range b {
		c.b[i] = v / a[0]
	}
	for i, v := range a {
		c.a[i] = v / a[0]
	}

	return c, nil
}

func (c *Canonical) Process(x float32) float32 {
	w0 := float64(x)
	for k, d := range c.w {
		w0 -= c.a[k+1] * d
	}

	y := c.b[0] * w0
	for k, d := range c.w {
		y += c.b[k+1] * d
	}

	if len(c.w) > 0 {
		copy(c.w[1:], c.w[:len(c.w)-1])
		c.w[0] = w0
	}

	return float32(y)
}

// Reset clears the delay line.
func (c *Canonical) Reset() {
	clear(c.w)
}

// NewLowpass designs a second order low-pass biquad (RBJ cookbook) with
// cutoff frequency fc in Hz and quality factor q.
func NewLowpass(sampleRate int, fc, q float64) (*Canonical, error) {
	cosw, alpha, err := biquadTerms(sampleRate, fc, q)
	if err != nil {
		return nil, err
	}

	return NewCanonical(
		[]float64{(1 - cosw) / 2, 1 - cosw, (1 - cosw) / 2},
		[]float64{1 + alpha, -2 * cosw, 1 - alpha},
	)
}

// NewHighpass designs a second order high-pass biquad (RBJ cookbook).
func NewHighpass(sampleRate int, fc, q float64) (*Canonical, error) {
	cosw, alpha, err := biquadTerms(sampleRate, fc, q)
	if err != nil {
		return nil, err
	}

	return NewCanonical(
		[]float64{(1 + cosw) / 2, -(1 + cosw), (1 + cosw) / 2},
		[]float64{1 + alpha, -2 * cosw, 1 - alpha},
	)
}

func biquadTerms(sampleRate int, fc, q float64) (cosw, alpha float64, err error) {
	if sampleRate <= 0 {
		return 0, 0, fmt.Errorf("%w: sample rate %d", ErrInvalidParams, sampleRate)
	}
	if fc <= 0 || fc >= float64(sampleRate)/2 {
		return 0, 0, fmt.Errorf("%w: cutoff %g Hz outside (0, %d)", ErrInvalidParams, fc, sampleRate/2)
	}
	if q <= 0 {
		return 0, 0, fmt.Errorf("%w: q must be positive, got %g", ErrInvalidParams, q)
	}

	w0 := 2 * math.Pi * fc / float64(sampleRate)
	return math.Cos(w0), math.Sin(w0) / (2 * q), nil
}
