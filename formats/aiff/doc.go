// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF files into an audio.Source.
//
// Decoding uses github.com/go-audio/aiff, which needs an io.ReadSeeker;
// other readers are buffered in memory first.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrOnlyPCM16bitSupported) {
//	    // 8, 24 and 32-bit files are rejected
//	}
//
// Samples are normalized by 32767 like the WAVE decoder, so a file run
// through convert.ConvertSource with an identity filter keeps its sample
// values.
package aiff
