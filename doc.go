// SPDX-License-Identifier: EPL-2.0

// Package wavefmt reads, writes and filters RIFF/WAVE audio files.
//
// The subpackages do the work:
//   - formats/wav parses and writes the 44 byte canonical WAVE header and
//     decodes WAV samples into an audio.Source
//   - convert streams mono PCM 16 or float 32 samples through a filter and
//     pads or truncates the output to a target duration
//   - filter holds the per-sample processing interface and a few IIR and
//     delay line filters
//   - formats/mp3, formats/vorbis and formats/aiff decode other inputs
//
// This package ties them to files on disk.
//
// # Filtering a File
//
//	lowpass, _ := filter.NewLowpass(48000, 1000, 0.707)
//	out, err := wavefmt.FilterFile("in.wav", "out.wav", lowpass, wavefmt.FileOptions{
//	    Options: convert.Options{
//	        Format:   wav.FormatIEEEFloat,
//	        Duration: 3 * time.Second,
//	    },
//	})
//
// WAV inputs are parsed with wav.ReadHeader, so extra chunks such as LIST
// are skipped, and converted with convert.Convert. Other registered formats
// are decoded and converted with convert.ConvertSource; those only accept
// mono unless FileOptions.Downmix is set.
//
// # Dumping a Header
//
//	err := wavefmt.DumpFile(os.Stdout, "in.wav", wavefmt.DumpOptions{Chunks: true})
//
// # Exit Codes
//
// ExitCode maps the errors of this module to process exit codes for
// command line front ends.
package wavefmt
