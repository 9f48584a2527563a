// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrMalformedHeader, "malformed WAV header"},
		{ErrUnsupportedChannelLayout, "unsupported channel layout"},
		{ErrUnsupportedFormat, "unsupported sample format"},
		{ErrIO, "wav i/o error"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("error message = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	all := []error{ErrMalformedHeader, ErrUnsupportedChannelLayout, ErrUnsupportedFormat, ErrIO}

	for i, err := range all {
		wrapped := fmt.Errorf("%w: context", err)
		for j, other := range all {
			if got := errors.Is(wrapped, other); got != (i == j) {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", wrapped, other, got, i == j)
			}
		}
	}
}
