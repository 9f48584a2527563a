// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample codecs shared by the decoders and the
// conversion engine.
package utils
