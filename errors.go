// SPDX-License-Identifier: EPL-2.0

package wavefmt

import (
	"errors"

	"github.com/ik5/wavefmt/audio"
	"github.com/ik5/wavefmt/convert"
	"github.com/ik5/wavefmt/formats/aiff"
	"github.com/ik5/wavefmt/formats/wav"
)

var ErrOpenFile = errors.New("unable to open file")

// Process exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitOpen        = 2
	ExitParse       = 3
	ExitUnsupported = 4
)

// ExitCode classifies err into one of the Exit constants.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrOpenFile):
		return ExitOpen
	case errors.Is(err, wav.ErrMalformedHeader),
		errors.Is(err, aiff.ErrNotAiffFile):
		return ExitParse
	case errors.Is(err, wav.ErrUnsupportedFormat),
		errors.Is(err, wav.ErrUnsupportedChannelLayout),
		errors.Is(err, audio.ErrNoDecoder),
		errors.Is(err, aiff.ErrOnlyPCM16bitSupported),
		errors.Is(err, aiff.ErrUnsupportedAiffLayout),
		errors.Is(err, convert.ErrTooLong):
		return ExitUnsupported
	}

	return ExitFailure
}
