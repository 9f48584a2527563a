// SPDX-License-Identifier: EPL-2.0

// Package audio defines the decoded-stream abstraction shared by the format
// decoders.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples
// returns the number of values written; (0, io.EOF) ends the stream:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // use buf[:n]
//	}
//
// # Channel Mixing
//
// The conversion engine handles mono only. MonoMixer averages the channels
// of each frame when a caller explicitly wants a downmix:
//
//	mono := audio.NewMonoMixer(source)
//
// # Format Registry
//
// Registry maps format keys (file extensions) to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("take1.WAV")
package audio
