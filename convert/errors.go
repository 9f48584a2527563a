// SPDX-License-Identifier: EPL-2.0

package convert

import "errors"

var (
	// ErrNegativeDuration is returned when the target duration is below zero.
	ErrNegativeDuration = errors.New("negative target duration")
	// ErrTooLong is returned when the output would overflow the 32 bit RIFF size fields.
	ErrTooLong = errors.New("output does not fit in a WAV file")
)
