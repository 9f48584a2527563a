// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"io"
	"testing"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing. Like the
// real reader it returns interleaved values, always whole frames.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf, m.samples[m.offset:])
	n -= n % m.channels
	m.offset += n

	return n, nil
}

func newTestSource(sampleRate, channels int, samples []float32) *source {
	return &source{
		dec:        &mockOggVorbisReader{sampleRate: sampleRate, channels: channels, samples: samples},
		sampleRate: sampleRate,
		channels:   channels,
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("This is not Ogg Vorbis data")))

	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	if _, err := decoder.Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newTestSource(48000, 2, nil)

	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		dstLen   int
		wantN    int
	}{
		{"mono", 1, []float32{0.1, 0.2, 0.3}, 8, 3},
		{"stereo", 2, []float32{0.1, -0.1, 0.2, -0.2}, 8, 4},
		{"stereo odd dst trimmed", 2, []float32{0.1, -0.1, 0.2, -0.2}, 3, 2},
		{"dst smaller than a frame", 3, []float32{0.1, 0.2, 0.3}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newTestSource(44100, tt.channels, tt.samples)
			dst := make([]float32, tt.dstLen)

			n, err := src.ReadSamples(dst)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != tt.wantN {
				t.Fatalf("ReadSamples() n = %d, want %d", n, tt.wantN)
			}
			for i := range n {
				if dst[i] != tt.samples[i] {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], tt.samples[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newTestSource(44100, 1, []float32{0.5})
	buf := make([]float32, 4)

	if n, err := src.ReadSamples(buf); n != 1 || err != nil {
		t.Fatalf("first ReadSamples() = (%d, %v), want (1, nil)", n, err)
	}
	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("second ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newTestSource(44100, 1, nil)
	src.dec.(*mockOggVorbisReader).err = io.ErrUnexpectedEOF

	if _, err := src.ReadSamples(make([]float32, 4)); err != io.ErrUnexpectedEOF {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}
