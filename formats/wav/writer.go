// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// WriteHeader writes h in the canonical 44 byte layout: RIFF descriptor,
// a 16 byte fmt chunk and the data chunk header. The tags and the fmt
// size are always the canonical literals; every numeric field is written
// as given, nothing is derived.
func WriteHeader(w io.Writer, h Header) error {
	var header [HeaderSize]byte

	// RIFF header (12 bytes)
	copy(header[0:4], riff.RiffID[:])
	binary.LittleEndian.PutUint32(header[4:8], h.RIFFSize)
	copy(header[8:12], riff.WavFormatID[:])

	// fmt chunk (24 bytes)
	copy(header[12:16], riff.FmtID[:])
	binary.LittleEndian.PutUint32(header[16:20], fmtBodySize)
	binary.LittleEndian.PutUint16(header[20:22], uint16(h.AudioFormat))
	binary.LittleEndian.PutUint16(header[22:24], h.NumChannels)
	binary.LittleEndian.PutUint32(header[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(header[28:32], h.ByteRate)
	binary.LittleEndian.PutUint16(header[32:34], h.BlockAlign)
	binary.LittleEndian.PutUint16(header[34:36], h.BitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], riff.DataFormatID[:])
	binary.LittleEndian.PutUint32(header[40:44], h.DataSize)

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("%w: writing header: %w", ErrIO, err)
	}

	return nil
}
