// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/ik5/wavefmt/audio"
	"github.com/ik5/wavefmt/utils"
	"github.com/zaf/g711"
)

type wavSource struct {
	r          io.Reader // limited to the data chunk
	sampleRate int
	channels   int
	format     AudioFormat
	width      int // bytes per sample
	buf        []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * s.width
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.r, s.buf)
	samples := n / s.width
	for i := range samples {
		dst[i] = s.decode(s.buf[i*s.width : (i+1)*s.width])
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, nil
	default:
		return samples, fmt.Errorf("%w: %w", ErrIO, err)
	}
}

func (s *wavSource) decode(b []byte) float32 {
	switch s.format {
	case FormatIEEEFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	case FormatALaw:
		return utils.Int16ToFloat32(g711.DecodeAlawFrame(b[0]))
	case FormatMuLaw:
		return utils.Int16ToFloat32(g711.DecodeUlawFrame(b[0]))
	default:
		return utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(b)))
	}
}

// Decoder decodes WAVE streams into an audio.Source. Extra chunks in the
// header are skipped; Logger receives the parser diagnostics.
type Decoder struct {
	Logger *slog.Logger
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	h, _, err := ReadHeader(r, WithLogger(d.Logger))
	if err != nil {
		return nil, err
	}

	return NewSource(h, r)
}

// NewSource returns a source reading the data chunk described by h from r,
// which must be positioned at the first data byte. 16-bit PCM, 32-bit
// float, A-law and mu-law samples are supported.
func NewSource(h Header, r io.Reader) (audio.Source, error) {
	width, err := sampleWidth(h)
	if err != nil {
		return nil, err
	}
	if h.NumChannels == 0 {
		return nil, fmt.Errorf("%w: zero channels", ErrUnsupportedChannelLayout)
	}

	return &wavSource{
		r:          io.LimitReader(r, int64(h.DataSize)),
		sampleRate: int(h.SampleRate),
		channels:   int(h.NumChannels),
		format:     h.AudioFormat,
		width:      width,
		buf:        make([]byte, 4096),
	}, nil
}

func sampleWidth(h Header) (int, error) {
	switch {
	case h.IsPCM16():
		return 2, nil
	case h.IsFloat32():
		return 4, nil
	case (h.AudioFormat == FormatALaw || h.AudioFormat == FormatMuLaw) && h.BitsPerSample == 8:
		return 1, nil
	}

	return 0, fmt.Errorf("%w: %s with %d bits per sample", ErrUnsupportedFormat, h.AudioFormat, h.BitsPerSample)
}
