// SPDX-License-Identifier: EPL-2.0

package wavefmt

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ik5/wavefmt/formats/wav"
)

// DumpOptions configures DumpFile.
type DumpOptions struct {
	Logger *slog.Logger
	// Chunks adds the list of top level RIFF chunks.
	Chunks bool
}

// DumpFile prints the WAVE header of the file at path followed by the
// offset of the first sample byte.
func DumpFile(w io.Writer, path string, opts DumpOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenFile, err)
	}
	defer f.Close()

	h, offset, err := wav.ReadHeader(f, wav.WithLogger(opts.Logger))
	if err != nil {
		return err
	}

	if err := wav.PrintHeader(w, h); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data seek start: 0x%08x\n", offset); err != nil {
		return fmt.Errorf("%w: %w", wav.ErrIO, err)
	}

	if !opts.Chunks {
		return nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", wav.ErrIO, err)
	}
	fileType, chunks, err := wav.ListChunks(f)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "chunks (%s):\n", fileType); err != nil {
		return fmt.Errorf("%w: %w", wav.ErrIO, err)
	}
	for _, c := range chunks {
		if _, err := fmt.Fprintf(w, "  %q %d\n", c.ID, c.Size); err != nil {
			return fmt.Errorf("%w: %w", wav.ErrIO, err)
		}
	}

	return nil
}
