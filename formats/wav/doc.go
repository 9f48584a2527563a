// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE headers and decodes WAVE sample
// data.
//
// # Reading Headers
//
// ReadHeader walks the chunks of a WAVE stream and stops at the first byte
// of sample data:
//
//	file, _ := os.Open("audio.wav")
//	h, offset, err := wav.ReadHeader(file, wav.WithLogger(logger))
//	if err != nil {
//	    // errors.Is(err, wav.ErrMalformedHeader) for tag mismatches
//	}
//
// Unknown chunks (LIST, fact, cue, ...) and extension bytes at the end of
// the fmt chunk are skipped and reported to the logger. The data chunk is
// always treated as the last chunk; its payload is never read.
//
// # Writing Headers
//
// WriteHeader emits the canonical 44 byte header. Use NewHeader to build a
// header with consistent derived fields:
//
//	h := wav.NewHeader(wav.FormatIEEEFloat, 1, 48000, 32, frames)
//	err := wav.WriteHeader(out, h)
//
// WriteWAV16 writes a complete mono 16-bit file from a slice of samples.
//
// # Decoding Samples
//
// Decoder produces an audio.Source with float32 samples in [-1.0, 1.0].
// Supported encodings:
//   - PCM 16-bit
//   - IEEE float 32-bit
//   - A-law and mu-law 8-bit
//
// # Inspecting Files
//
// PrintHeader writes a human readable dump of a header and ListChunks
// returns the chunk inventory of a file.
//
// # Error Handling
//
//   - ErrMalformedHeader: tag mismatch or no data chunk
//   - ErrUnsupportedFormat: sample encoding not handled
//   - ErrUnsupportedChannelLayout: channel count not handled
//   - ErrIO: the underlying reader or writer failed
package wav
