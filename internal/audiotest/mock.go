// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio.Source implementations for
// tests.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of one channel at one frame index.
type Waveform func(frame, channel int) float32

// Source generates a fixed number of frames from a Waveform. It satisfies
// audio.Source without importing it.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform
	err        error // returned once pos reaches failAt
	failAt     int
	closed     bool
}

func NewSource(sampleRate, channels, frames int, wave Waveform) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
		failAt:     -1,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, frames int) *Source {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewConstantSource generates the same value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// NewSineSource generates a sine of the given frequency on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewSliceSource plays back interleaved values.
func NewSliceSource(sampleRate, channels int, values []float32) *Source {
	return NewSource(sampleRate, channels, len(values)/channels, func(frame, ch int) float32 {
		return values[frame*channels+ch]
	})
}

// FailAfter makes ReadSamples return err once frame has been produced.
func (s *Source) FailAfter(frame int, err error) *Source {
	s.failAt = frame
	s.err = err
	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Closed() bool    { return s.closed }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Reset rewinds the source to its first frame.
func (s *Source) Reset() {
	s.pos = 0
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.failAt >= 0 && s.pos >= s.failAt {
		return 0, s.err
	}
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	end := min(s.pos+len(dst)/s.channels, s.frames)
	if s.failAt >= 0 {
		end = min(end, s.failAt)
	}

	n := 0
	for frame := s.pos; frame < end; frame++ {
		for ch := range s.channels {
			dst[n] = s.wave(frame, ch)
			n++
		}
	}
	s.pos = end

	if s.pos >= s.frames {
		return n, io.EOF
	}

	return n, nil
}
