// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log/slog"
	"math"
	"testing"
	"testing/iotest"
	"time"

	"github.com/ik5/wavefmt/filter"
	"github.com/ik5/wavefmt/formats/wav"
	"github.com/ik5/wavefmt/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcmInput(rate uint32, samples ...int16) (wav.Header, *bytes.Reader) {
	b := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(s))
	}
	return wav.NewHeader(wav.FormatPCM, 1, rate, 16, uint32(len(samples))), bytes.NewReader(b)
}

func floatInput(rate uint32, values ...float32) (wav.Header, *bytes.Reader) {
	b := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return wav.NewHeader(wav.FormatIEEEFloat, 1, rate, 32, uint32(len(values))), bytes.NewReader(b)
}

// parse splits a converted stream into its header and decoded samples.
func parse(t *testing.T, data []byte) (wav.Header, []float64) {
	t.Helper()

	h, off, err := wav.ReadHeader(bytes.NewReader(data))
	require.NoError(t, err)

	payload := data[off:]
	require.Len(t, payload, int(h.DataSize))

	var out []float64
	switch {
	case h.IsPCM16():
		for i := 0; i+2 <= len(payload); i += 2 {
			out = append(out, float64(int16(binary.LittleEndian.Uint16(payload[i:]))))
		}
	case h.IsFloat32():
		for i := 0; i+4 <= len(payload); i += 4 {
			out = append(out, float64(math.Float32frombits(binary.LittleEndian.Uint32(payload[i:]))))
		}
	default:
		t.Fatalf("unexpected output format %+v", h)
	}

	return h, out
}

func TestConvert_Codecs(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 1, -1, 16384, -16384, 32767, -32767}
	floats := []float32{0, 0.5, -0.5, 1, -1, 0.123}

	pcmAsFloat := make([]float64, len(samples))
	for i, s := range samples {
		pcmAsFloat[i] = float64(utils.Int16ToFloat32(s))
	}
	floatAsPCM := make([]float64, len(floats))
	floatsAsFloat := make([]float64, len(floats))
	for i, v := range floats {
		floatAsPCM[i] = float64(utils.Float32ToInt16(v))
		floatsAsFloat[i] = float64(v)
	}
	pcmAsPCM := make([]float64, len(samples))
	for i, s := range samples {
		pcmAsPCM[i] = float64(s)
	}

	tests := []struct {
		name   string
		input  func() (wav.Header, *bytes.Reader)
		format wav.AudioFormat
		want   []float64
	}{
		{"pcm to pcm", func() (wav.Header, *bytes.Reader) { return pcmInput(8000, samples...) }, wav.FormatPCM, pcmAsPCM},
		{"pcm to float", func() (wav.Header, *bytes.Reader) { return pcmInput(8000, samples...) }, wav.FormatIEEEFloat, pcmAsFloat},
		{"float to pcm", func() (wav.Header, *bytes.Reader) { return floatInput(8000, floats...) }, wav.FormatPCM, floatAsPCM},
		{"float to float", func() (wav.Header, *bytes.Reader) { return floatInput(8000, floats...) }, wav.FormatIEEEFloat, floatsAsFloat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, r := tt.input()
			var out bytes.Buffer

			hdr, err := Convert(in, r, &out, nil, Options{Format: tt.format})
			require.NoError(t, err)

			got, values := parse(t, out.Bytes())
			assert.Equal(t, hdr, got)
			assert.Equal(t, tt.format, got.AudioFormat)
			assert.Equal(t, in.SampleRate, got.SampleRate)
			assert.Equal(t, uint16(1), got.NumChannels)
			assert.Equal(t, in.Frames(), got.Frames())
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestConvert_Clamp(t *testing.T) {
	t.Parallel()

	nan := float32(math.NaN())
	in, r := floatInput(8000, 1.5, -2, nan, float32(math.Inf(1)), 0.25)

	var pcm bytes.Buffer
	_, err := Convert(in, r, &pcm, nil, Options{Format: wav.FormatPCM})
	require.NoError(t, err)
	_, values := parse(t, pcm.Bytes())
	assert.Equal(t, []float64{32767, -32767, 0, 32767, 8192}, values)

	in, r = floatInput(8000, 1.5, -2, nan, float32(math.Inf(1)), 0.25)
	var flt bytes.Buffer
	_, err = Convert(in, r, &flt, nil, Options{Format: wav.FormatIEEEFloat})
	require.NoError(t, err)
	_, values = parse(t, flt.Bytes())
	assert.Equal(t, []float64{1, -1, 0, 1, 0.25}, values)
}

func TestConvert_ClampsFilterOutput(t *testing.T) {
	t.Parallel()

	in, r := pcmInput(8000, 20000, -20000, 100)
	var out bytes.Buffer

	_, err := Convert(in, r, &out, filter.Gain(4), Options{Format: wav.FormatPCM})
	require.NoError(t, err)

	_, values := parse(t, out.Bytes())
	assert.Equal(t, []float64{32767, -32767, float64(utils.Float32ToInt16(4 * utils.Int16ToFloat32(100)))}, values)
}

func TestConvert_MinInt16(t *testing.T) {
	t.Parallel()

	// -32768 decodes slightly below -1 and is clamped on the way out
	in, r := pcmInput(8000, math.MinInt16)
	var out bytes.Buffer

	_, err := Convert(in, r, &out, nil, Options{Format: wav.FormatPCM})
	require.NoError(t, err)

	_, values := parse(t, out.Bytes())
	assert.Equal(t, []float64{-32767}, values)
}

func TestConvert_Extend(t *testing.T) {
	t.Parallel()

	in, r := pcmInput(1000, 100, 200, 300, 400)
	var out bytes.Buffer

	hdr, err := Convert(in, r, &out, nil, Options{Format: wav.FormatPCM, Duration: 10 * time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, uint32(10), hdr.Frames())
	assert.Equal(t, uint32(20), hdr.DataSize)
	assert.Equal(t, uint32(56), hdr.RIFFSize)
	assert.Equal(t, wav.HeaderSize+20, out.Len())

	_, values := parse(t, out.Bytes())
	assert.Equal(t, []float64{100, 200, 300, 400, 0, 0, 0, 0, 0, 0}, values)
}

func TestConvert_ExtendRingsOut(t *testing.T) {
	t.Parallel()

	echo, err := filter.NewEcho(3, 0.5, true)
	require.NoError(t, err)

	in, r := pcmInput(1000, 32767)
	var out bytes.Buffer

	_, err = Convert(in, r, &out, echo, Options{Format: wav.FormatIEEEFloat, Duration: 8 * time.Millisecond})
	require.NoError(t, err)

	_, values := parse(t, out.Bytes())
	assert.Equal(t, []float64{1, 0, 0, 0.5, 0, 0, 0.25, 0}, values)
}

func TestConvert_Truncate(t *testing.T) {
	t.Parallel()

	in, r := pcmInput(1000, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	var out bytes.Buffer

	hdr, err := Convert(in, r, &out, nil, Options{Format: wav.FormatPCM, Duration: 3 * time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, uint32(3), hdr.Frames())
	_, values := parse(t, out.Bytes())
	assert.Equal(t, []float64{1, 2, 3}, values)

	// reading stops after the last frame needed
	assert.Equal(t, 14, r.Len())
}

func TestConvert_ZeroFrames(t *testing.T) {
	t.Parallel()

	in, r := pcmInput(8000)
	var out bytes.Buffer

	hdr, err := Convert(in, r, &out, nil, Options{Format: wav.FormatIEEEFloat})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), hdr.DataSize)
	assert.Equal(t, wav.HeaderSize, out.Len())
}

func TestConvert_Preconditions(t *testing.T) {
	t.Parallel()

	mono16 := wav.NewHeader(wav.FormatPCM, 1, 8000, 16, 4)

	tests := []struct {
		name string
		in   wav.Header
		opts Options
		want error
	}{
		{"stereo", wav.NewHeader(wav.FormatPCM, 2, 8000, 16, 4), Options{Format: wav.FormatPCM}, wav.ErrUnsupportedChannelLayout},
		{"stereo 24 bit", wav.NewHeader(wav.FormatPCM, 2, 8000, 24, 4), Options{Format: wav.FormatPCM}, wav.ErrUnsupportedChannelLayout},
		{"no channels", wav.Header{}, Options{Format: wav.FormatPCM}, wav.ErrUnsupportedChannelLayout},
		{"24 bit", wav.NewHeader(wav.FormatPCM, 1, 8000, 24, 4), Options{Format: wav.FormatPCM}, wav.ErrUnsupportedFormat},
		{"mu-law input", wav.NewHeader(wav.FormatMuLaw, 1, 8000, 8, 4), Options{Format: wav.FormatPCM}, wav.ErrUnsupportedFormat},
		{"float 64", wav.NewHeader(wav.FormatIEEEFloat, 1, 8000, 64, 4), Options{Format: wav.FormatPCM}, wav.ErrUnsupportedFormat},
		{"a-law output", mono16, Options{Format: wav.FormatALaw}, wav.ErrUnsupportedFormat},
		{"no output format", mono16, Options{}, wav.ErrUnsupportedFormat},
		{"negative duration", mono16, Options{Format: wav.FormatPCM, Duration: -time.Second}, ErrNegativeDuration},
		{"too long", mono16, Options{Format: wav.FormatPCM, Duration: 1000 * time.Hour}, ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			hdr, err := Convert(tt.in, bytes.NewReader(make([]byte, 64)), &out, nil, tt.opts)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, wav.Header{}, hdr)
			assert.Zero(t, out.Len(), "nothing is written when a precondition fails")

			_, err = OutputHeader(tt.in, tt.opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConvert_ShortInput(t *testing.T) {
	t.Parallel()

	// header promises 4 frames, 3 bytes follow
	in := wav.NewHeader(wav.FormatPCM, 1, 8000, 16, 4)
	var out bytes.Buffer

	_, err := Convert(in, bytes.NewReader([]byte{1, 0, 2}), &out, nil, Options{Format: wav.FormatPCM})
	require.ErrorIs(t, err, wav.ErrIO)
	assert.Contains(t, err.Error(), "frame 1 of 4")
}

func TestConvert_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("network down")
	in := wav.NewHeader(wav.FormatPCM, 1, 8000, 16, 4)

	_, err := Convert(in, iotest.ErrReader(boom), &bytes.Buffer{}, nil, Options{Format: wav.FormatPCM})
	assert.ErrorIs(t, err, wav.ErrIO)
	assert.ErrorIs(t, err, boom)
}

type limitWriter struct {
	n   int
	err error
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.n < len(p) {
		return 0, w.err
	}
	w.n -= len(p)
	return len(p), nil
}

func TestConvert_WriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")

	in, r := pcmInput(8000, 1, 2, 3)
	_, err := Convert(in, r, &limitWriter{n: 0, err: boom}, nil, Options{Format: wav.FormatPCM})
	assert.ErrorIs(t, err, wav.ErrIO, "header write")

	in, r = pcmInput(8000, 1, 2, 3)
	_, err = Convert(in, r, &limitWriter{n: wav.HeaderSize + 2, err: boom}, nil, Options{Format: wav.FormatPCM})
	assert.ErrorIs(t, err, wav.ErrIO, "frame write")
	assert.ErrorIs(t, err, boom)
}

func TestTargetFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate uint32
		d    time.Duration
		want uint32
	}{
		{44100, time.Second, 44100},
		{44100, time.Millisecond, 44},
		{1000, 2600 * time.Microsecond, 3},
		{1000, 2400 * time.Microsecond, 2},
		{48000, 0, 0},
		{8000, 10 * time.Minute, 4_800_000},
	}

	for _, tt := range tests {
		got, err := targetFrames(tt.rate, tt.d)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%d Hz for %s", tt.rate, tt.d)
	}
}

func TestOutputHeader(t *testing.T) {
	t.Parallel()

	in := wav.NewHeader(wav.FormatPCM, 1, 22050, 16, 100)

	got, err := OutputHeader(in, Options{Format: wav.FormatIEEEFloat})
	require.NoError(t, err)
	assert.Equal(t, wav.NewHeader(wav.FormatIEEEFloat, 1, 22050, 32, 100), got)

	got, err = OutputHeader(in, Options{Format: wav.FormatPCM, Duration: 2 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, uint32(44100), got.Frames())
	assert.Equal(t, got.DataSize, got.Frames()*uint32(got.BlockAlign))
}

func TestConvert_Logs(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	in, r := pcmInput(8000, 1, 2)
	_, err := Convert(in, r, &bytes.Buffer{}, nil, Options{Format: wav.FormatIEEEFloat, Logger: logger})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "converting")
	assert.Contains(t, logs.String(), "output_frames=2")
}

func BenchmarkConvert_PCMToFloat(b *testing.B) {
	samples := make([]int16, 48000)
	for i := range samples {
		samples[i] = int16(i)
	}
	in, r := pcmInput(48000, samples...)
	lp, _ := filter.NewLowpass(48000, 1000, 0.7071)

	var out bytes.Buffer
	out.Grow(wav.HeaderSize + 4*len(samples))

	b.ReportAllocs()

	for b.Loop() {
		_, _ = r.Seek(0, 0)
		out.Reset()
		_, _ = Convert(in, r, &out, lp, Options{Format: wav.FormatIEEEFloat})
	}
}
