// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into an audio.Source using
// github.com/jfreymuth/oggvorbis.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if src.Channels() > 1 {
//	    src = audio.NewMonoMixer(src)
//	}
//
// ReadSamples always returns whole frames.
package vorbis
