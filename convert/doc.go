// SPDX-License-Identifier: EPL-2.0

// Package convert streams mono WAVE data through a filter.Filter while
// converting between 16-bit PCM and 32-bit IEEE float.
//
// # Converting a WAVE Stream
//
//	in, _ := os.Open("in.wav")
//	h, _, err := wav.ReadHeader(in)
//	out, _ := os.Create("out.wav")
//	bw := bufio.NewWriter(out)
//	_, err = convert.Convert(h, in, bw, myFilter, convert.Options{
//	    Format:   wav.FormatIEEEFloat,
//	    Duration: 3 * time.Second,
//	})
//	err = bw.Flush()
//
// Every frame is decoded to a float32 in [-1, 1], passed to the filter,
// clamped to [-1, 1] and encoded:
//
//	PCM 16 in:   x = s / 32767
//	float 32 in: x = s
//	PCM 16 out:  s = floor(32768.5 + 32767*y) - 32768
//	float 32 out: s = y
//
// # Output Length
//
// Options.Duration of zero keeps the input frame count. Otherwise the
// output has round(sampleRate * seconds) frames: a shorter output stops
// reading early, a longer one feeds zero samples to the filter after the
// input runs out, which lets delay lines and IIR filters decay.
//
// # Other Sources
//
// ConvertSource runs the same pipeline over any mono audio.Source, for
// example an MP3 or Ogg Vorbis decoder, and patches the header once the
// frame count is known.
//
// # Errors
//
// Precondition failures wrap wav.ErrUnsupportedChannelLayout or
// wav.ErrUnsupportedFormat; stream failures wrap wav.ErrIO.
package convert
