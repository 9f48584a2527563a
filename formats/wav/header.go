// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/go-audio/riff"
)

// AudioFormat is the format code stored in the fmt chunk.
type AudioFormat uint16

const (
	FormatPCM       AudioFormat = 1
	FormatIEEEFloat AudioFormat = 3
	FormatALaw      AudioFormat = 6
	FormatMuLaw     AudioFormat = 7
)

// HeaderSize is the size of the canonical header written by WriteHeader.
const HeaderSize = 44

// fmtBodySize is the size of the canonical fmt chunk body.
const fmtBodySize = 16

// String returns the label used by PrintHeader.
func (f AudioFormat) String() string {
	switch f {
	case FormatPCM:
		return "PCM"
	case FormatIEEEFloat:
		return "IEEE float"
	case FormatALaw:
		return "8 bit A-law"
	case FormatMuLaw:
		return "8 bit mu-law"
	default:
		return fmt.Sprintf("unknown %d", uint16(f))
	}
}

// Known reports whether f is one of the named format codes.
func (f AudioFormat) Known() bool {
	switch f {
	case FormatPCM, FormatIEEEFloat, FormatALaw, FormatMuLaw:
		return true
	}
	return false
}

// Header is the metadata of one WAVE file: the RIFF descriptor, the fmt
// chunk and the size of the data chunk.
type Header struct {
	RIFFTag  [4]byte
	RIFFSize uint32 // file length minus 8
	WAVETag  [4]byte

	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   AudioFormat
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	DataTag  [4]byte
	DataSize uint32 // payload bytes following the header
}

// NewHeader builds a canonical header for frames frames of the given
// encoding. All derived fields (block align, byte rate, sizes) are
// computed from the arguments.
func NewHeader(format AudioFormat, channels uint16, sampleRate uint32, bitsPerSample uint16, frames uint32) Header {
	blockAlign := channels * (bitsPerSample / 8)
	dataSize := frames * uint32(blockAlign)

	return Header{
		RIFFTag:       riff.RiffID,
		RIFFSize:      dataSize + HeaderSize - 8,
		WAVETag:       riff.WavFormatID,
		FmtTag:        riff.FmtID,
		FmtSize:       fmtBodySize,
		AudioFormat:   format,
		NumChannels:   channels,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: bitsPerSample,
		DataTag:       riff.DataFormatID,
		DataSize:      dataSize,
	}
}

// Frames returns the number of whole frames in the data chunk, or 0 when
// the block align is unknown.
func (h Header) Frames() uint32 {
	if h.BlockAlign == 0 {
		return 0
	}
	return h.DataSize / uint32(h.BlockAlign)
}

// FileSize is the total file length declared by the RIFF size field.
func (h Header) FileSize() uint64 {
	return uint64(h.RIFFSize) + 8
}

// IsPCM16 reports whether samples are 16-bit linear PCM.
func (h Header) IsPCM16() bool {
	return h.AudioFormat == FormatPCM && h.BitsPerSample == 16
}

// IsFloat32 reports whether samples are 32-bit IEEE floats.
func (h Header) IsFloat32() bool {
	return h.AudioFormat == FormatIEEEFloat && h.BitsPerSample == 32
}
