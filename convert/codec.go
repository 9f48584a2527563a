// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/wavefmt/filter"
	"github.com/ik5/wavefmt/formats/wav"
	"github.com/ik5/wavefmt/utils"
)

// codec reads or writes one mono frame.
type codec struct {
	width  int
	bits   uint16
	decode func(b []byte) float32
	encode func(b []byte, y float32)
}

var (
	pcm16 = codec{
		width: 2,
		bits:  16,
		decode: func(b []byte) float32 {
			return utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(b)))
		},
		encode: func(b []byte, y float32) {
			binary.LittleEndian.PutUint16(b, uint16(utils.Float32ToInt16(y)))
		},
	}

	float32le = codec{
		width: 4,
		bits:  32,
		decode: func(b []byte) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(b))
		},
		encode: func(b []byte, y float32) {
			binary.LittleEndian.PutUint32(b, math.Float32bits(y))
		},
	}
)

// inputCodec selects the decoder for a source header.
func inputCodec(h wav.Header) (codec, error) {
	switch {
	case h.IsPCM16():
		return pcm16, nil
	case h.IsFloat32():
		return float32le, nil
	}

	return codec{}, fmt.Errorf("%w: input is %s with %d bits per sample, want PCM 16 or float 32",
		wav.ErrUnsupportedFormat, h.AudioFormat, h.BitsPerSample)
}

// outputCodec selects the encoder for a target format.
func outputCodec(f wav.AudioFormat) (codec, error) {
	switch f {
	case wav.FormatPCM:
		return pcm16, nil
	case wav.FormatIEEEFloat:
		return float32le, nil
	}

	return codec{}, fmt.Errorf("%w: output format %d", wav.ErrUnsupportedFormat, uint16(f))
}

// frameWriter runs one sample through the filter, clamps it and writes the
// encoded frame.
type frameWriter struct {
	w   io.Writer
	enc codec
	f   filter.Filter
	buf [4]byte
	n   uint32 // frames written
}

func (fw *frameWriter) process(x float32) error {
	y := float32(utils.Clamp(float64(fw.f.Process(x))))

	fw.enc.encode(fw.buf[:fw.enc.width], y)
	if _, err := fw.w.Write(fw.buf[:fw.enc.width]); err != nil {
		return fmt.Errorf("%w: writing frame %d: %w", wav.ErrIO, fw.n, err)
	}
	fw.n++

	return nil
}
