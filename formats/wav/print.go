// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
)

// PrintHeader writes a human readable dump of h to w.
func PrintHeader(w io.Writer, h Header) error {
	lines := []struct {
		label string
		value any
	}{
		{"file length", h.FileSize()},
		{"format", h.AudioFormat},
		{"channels", h.NumChannels},
		{"sample rate", h.SampleRate},
		{"byte rate", h.ByteRate},
		{"block align", h.BlockAlign},
		{"bits per sample", h.BitsPerSample},
		{"data length (bytes)", h.DataSize},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %v\n", l.label, l.value); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	return nil
}
