// SPDX-License-Identifier: EPL-2.0

// Package filter defines the sample-by-sample processing interface used by
// the conversion engine, together with a few stateful implementations.
//
// A Filter sees one normalized float32 sample per frame, in order:
//
//	type Filter interface {
//	    Process(x float32) float32
//	}
//
// Implementations own their state (delay lines, coefficients) and are not
// safe for concurrent use. A filter instance should serve one stream.
//
// # Built-in Filters
//
//   - Identity, Gain and Chain for simple pipelines
//   - Canonical: direct form II IIR filter, with NewLowpass and
//     NewHighpass biquad designs
//   - Echo: circular buffer comb, feed forward or feedback
//   - FractionalDelay: delay line with linear interpolation
//
// Plain functions can be adapted with Func:
//
//	half := filter.Func(func(x float32) float32 { return x / 2 })
//
// # Registry
//
// Registry maps names to factories so filters can be chosen from
// configuration:
//
//	f, err := filter.DefaultRegistry().New("echo", 48000, filter.Params{
//	    Delay: 0.25,
//	    Mix:   0.5,
//	})
package filter
