// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into an audio.Source using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved stereo, so the source reports two
// channels. Downmix it before filtering:
//
//	src, _ := mp3.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(src)
//	_, err := convert.ConvertSource(mono, out, f, opts)
package mp3
