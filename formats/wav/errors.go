// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrMalformedHeader is returned when the RIFF/WAVE tags do not match or
	// the stream ends before a data chunk is found.
	ErrMalformedHeader = errors.New("malformed WAV header")

	// ErrUnsupportedChannelLayout is returned when a mono stream is required.
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")

	// ErrUnsupportedFormat is returned for sample encodings that cannot be
	// decoded or produced.
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrIO wraps failures of the underlying reader or writer.
	ErrIO = errors.New("wav i/o error")
)
