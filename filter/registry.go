// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
)

// Params carries the settings a Factory may use. Durations are seconds.
type Params struct {
	Gain     float64
	Delay    float64
	Feedback bool
	Mix      float64
	Cutoff   float64
	Q        float64
	B        []float64
	A        []float64
}

// Factory builds a filter for a stream with the given sample rate.
type Factory func(sampleRate int, p Params) (Filter, error)

// Registry maps filter names to factories. Names are case-insensitive.
type Registry struct {
	factories map[string]Factory

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		mtx:       &sync.Mutex{},
	}
}

// DefaultRegistry returns a registry with the built-in filters:
// identity, gain, echo, delay, lowpass, highpass and iir.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("identity", func(int, Params) (Filter, error) {
		return Identity{}, nil
	})
	r.Register("gain", func(_ int, p Params) (Filter, error) {
		return Gain(p.Gain), nil
	})
	r.Register("echo", func(sampleRate int, p Params) (Filter, error) {
		return NewEcho(int(math.Round(p.Delay*float64(sampleRate))), float32(p.Mix), p.Feedback)
	})
	r.Register("delay", func(sampleRate int, p Params) (Filter, error) {
		return NewFractionalDelay(p.Delay * float64(sampleRate))
	})
	r.Register("lowpass", func(sampleRate int, p Params) (Filter, error) {
		return NewLowpass(sampleRate, p.Cutoff, p.Q)
	})
	r.Register("highpass", func(sampleRate int, p Params) (Filter, error) {
		return NewHighpass(sampleRate, p.Cutoff, p.Q)
	})
	r.Register("iir", func(_ int, p Params) (Filter, error) {
		return NewCanonical(p.B, p.A)
	})

	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.factories[strings.ToLower(name)] = f
}

// New builds the filter registered under name.
func (r *Registry) New(name string, sampleRate int, p Params) (Filter, error) {
	r.mtx.Lock()
	f, ok := r.factories[strings.ToLower(name)]
	r.mtx.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}

	return f(sampleRate, p)
}

// Names returns the registered filter names in sorted order.
func (r *Registry) Names() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	slices.Sort(names)

	return names
}
