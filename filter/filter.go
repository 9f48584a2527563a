// SPDX-License-Identifier: EPL-2.0

package filter

// Filter transforms one normalized sample. Process is called once per
// frame, in frame order, and may update internal state.
type Filter interface {
	Process(x float32) float32
}

// Func adapts a plain function to Filter.
type Func func(x float32) float32

func (f Func) Process(x float32) float32 { return f(x) }

// Identity passes samples through unchanged.
type Identity struct{}

func (Identity) Process(x float32) float32 { return x }

// Gain scales every sample by a constant factor.
type Gain float32

func (g Gain) Process(x float32) float32 { return float32(g) * x }

// Chain runs filters in series, first to last.
type Chain []Filter

func (c Chain) Process(x float32) float32 {
	for _, f := range c {
		x = f.Process(x)
	}
	return x
}
