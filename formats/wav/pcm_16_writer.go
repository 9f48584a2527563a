// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteWAV16 writes a complete mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	h := NewHeader(FormatPCM, 1, uint32(sampleRate), 16, uint32(len(samples)))
	if err := WriteHeader(w, h); err != nil {
		return err
	}

	if len(samples) == 0 {
		return nil
	}

	// Write in 8KB chunks
	const chunkSize = 4096
	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	return nil
}
