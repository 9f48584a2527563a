// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-audio/riff"
)

// ReaderOption configures ReadHeader.
type ReaderOption func(*readerConfig)

type readerConfig struct {
	logger *slog.Logger
}

// WithLogger sends parser diagnostics (skipped or short chunks) to l.
func WithLogger(l *slog.Logger) ReaderOption {
	return func(c *readerConfig) {
		c.logger = l
	}
}

// ReadHeader parses the RIFF/WAVE header at the start of r and leaves r
// positioned at the first byte of sample data. It returns the header and
// the offset of that byte from the start of the stream.
//
// Chunks other than "fmt " and "data" are skipped by their declared size,
// and so are extension bytes at the end of the fmt chunk. The "data" chunk
// always ends the scan. When r implements io.Seeker skipping seeks instead
// of reading.
//
// On failure the zero Header and offset 0 are returned together with an
// error wrapping ErrMalformedHeader or ErrIO.
func ReadHeader(r io.Reader, opts ...ReaderOption) (Header, int64, error) {
	cfg := readerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	hr := &headerReader{r: r, log: cfg.logger}
	hr.seeker, _ = r.(io.Seeker)

	h, err := hr.parse()
	if err != nil {
		return Header{}, 0, err
	}

	return h, hr.n, nil
}

type headerReader struct {
	r      io.Reader
	seeker io.Seeker
	log    *slog.Logger
	n      int64 // bytes consumed so far
	buf    [4]byte
}

func (hr *headerReader) parse() (Header, error) {
	var h Header
	var err error

	if h.RIFFTag, err = hr.tag(); err != nil {
		return h, err
	}
	if h.RIFFTag != riff.RiffID {
		return h, fmt.Errorf("%w: expected chunk RIFF, got %q", ErrMalformedHeader, h.RIFFTag[:])
	}
	if h.RIFFSize, err = hr.u32(); err != nil {
		return h, err
	}
	if h.WAVETag, err = hr.tag(); err != nil {
		return h, err
	}
	if h.WAVETag != riff.WavFormatID {
		return h, fmt.Errorf("%w: expected chunk WAVE, got %q", ErrMalformedHeader, h.WAVETag[:])
	}

	seenFmt := false
	for {
		tag, err := hr.tag()
		if err != nil {
			if errors.Is(err, ErrMalformedHeader) {
				return h, fmt.Errorf("%w: no data chunk found", err)
			}
			return h, err
		}

		switch tag {
		case riff.FmtID:
			h.FmtTag = tag
			if err := hr.readFmt(&h); err != nil {
				return h, err
			}
			seenFmt = true
		case riff.DataFormatID:
			h.DataTag = tag
			if h.DataSize, err = hr.u32(); err != nil {
				return h, err
			}
			if !seenFmt {
				hr.log.Warn("data chunk found before fmt chunk", "offset", hr.n)
			}
			return h, nil
		default:
			size, err := hr.u32()
			if err != nil {
				return h, err
			}
			hr.log.Warn("ignoring chunk", "chunk", string(tag[:]), "size", size)
			if err := hr.skip(int64(size)); err != nil {
				return h, err
			}
		}
	}
}

// readFmt reads the fmt chunk body. The size field counts as consumed, so a
// chunk is fully read once FmtSize+4 bytes were taken from the stream.
func (hr *headerReader) readFmt(h *Header) error {
	var err error

	if h.FmtSize, err = hr.u32(); err != nil {
		return err
	}
	consumed := int64(4)

	if h.FmtSize < fmtBodySize {
		hr.log.Warn("fmt chunk too short", "want_min", fmtBodySize, "got", h.FmtSize)
	} else {
		format, err := hr.u16()
		if err != nil {
			return err
		}
		h.AudioFormat = AudioFormat(format)
		if h.NumChannels, err = hr.u16(); err != nil {
			return err
		}
		if h.SampleRate, err = hr.u32(); err != nil {
			return err
		}
		if h.ByteRate, err = hr.u32(); err != nil {
			return err
		}
		if h.BlockAlign, err = hr.u16(); err != nil {
			return err
		}
		if h.BitsPerSample, err = hr.u16(); err != nil {
			return err
		}
		consumed += fmtBodySize
	}

	if extra := int64(h.FmtSize) + 4 - consumed; extra > 0 {
		hr.log.Warn("skipping extra bytes at end of fmt chunk", "bytes", extra)
		return hr.skip(extra)
	}

	return nil
}

func (hr *headerReader) read(p []byte) error {
	n, err := io.ReadFull(hr.r, p)
	hr.n += int64(n)
	if err != nil {
		return streamError(err)
	}
	return nil
}

func (hr *headerReader) tag() ([4]byte, error) {
	var t [4]byte
	err := hr.read(t[:])
	return t, err
}

func (hr *headerReader) u32() (uint32, error) {
	if err := hr.read(hr.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(hr.buf[:4]), nil
}

func (hr *headerReader) u16() (uint16, error) {
	if err := hr.read(hr.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(hr.buf[:2]), nil
}

func (hr *headerReader) skip(n int64) error {
	if n == 0 {
		return nil
	}
	if hr.seeker != nil {
		if _, err := hr.seeker.Seek(n, io.SeekCurrent); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		hr.n += n
		return nil
	}

	copied, err := io.CopyN(io.Discard, hr.r, n)
	hr.n += copied
	if err != nil {
		return streamError(err)
	}
	return nil
}

// streamError classifies a read failure: running out of input while the
// header is incomplete is a malformed header, anything else is I/O.
func streamError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}
