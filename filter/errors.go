// SPDX-License-Identifier: EPL-2.0

package filter

import "errors"

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrInvalidParams = errors.New("invalid filter parameters")
)
