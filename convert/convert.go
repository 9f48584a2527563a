// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/ik5/wavefmt/audio"
	"github.com/ik5/wavefmt/filter"
	"github.com/ik5/wavefmt/formats/wav"
)

// Options selects the output of a conversion.
type Options struct {
	// Format is wav.FormatPCM (16-bit) or wav.FormatIEEEFloat (32-bit).
	Format wav.AudioFormat
	// Duration of the output. Zero keeps the input length; a longer
	// duration pads with zero input samples, a shorter one truncates.
	Duration time.Duration
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// maxFrames keeps dataSize + 36 inside the RIFF size field.
const maxFrames = (math.MaxUint32 - (wav.HeaderSize - 8)) / 4

// targetFrames returns round(sampleRate * d) frames.
func targetFrames(sampleRate uint32, d time.Duration) (uint32, error) {
	if d < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNegativeDuration, d)
	}

	frames := math.Round(float64(sampleRate) * d.Seconds())
	if frames > maxFrames {
		return 0, fmt.Errorf("%w: %s at %d Hz", ErrTooLong, d, sampleRate)
	}

	return uint32(frames), nil
}

// OutputHeader derives the header Convert writes for input in: mono,
// the input sample rate, the target encoding and the target frame count.
func OutputHeader(in wav.Header, opts Options) (wav.Header, error) {
	if in.NumChannels != 1 {
		return wav.Header{}, fmt.Errorf("%w: %d channels, want 1", wav.ErrUnsupportedChannelLayout, in.NumChannels)
	}

	enc, err := outputCodec(opts.Format)
	if err != nil {
		return wav.Header{}, err
	}
	if _, err := inputCodec(in); err != nil {
		return wav.Header{}, err
	}

	frames := in.Frames()
	if opts.Duration != 0 {
		if frames, err = targetFrames(in.SampleRate, opts.Duration); err != nil {
			return wav.Header{}, err
		}
	}

	return wav.NewHeader(opts.Format, 1, in.SampleRate, enc.bits, frames), nil
}

// Convert streams the data chunk described by in from r, runs every
// sample through f and writes a complete WAVE stream (header and samples)
// to w. r must be positioned at the first data byte, as left by
// wav.ReadHeader.
//
// Each input sample is normalized to [-1, 1] (PCM 16 by 32767, float 32
// unscaled), filtered, clamped to [-1, 1] and encoded in the target
// format. Frames past the end of the input are produced from a zero input
// sample so stateful filters can ring out. A nil f passes samples through.
//
// Convert writes one frame per call to w; wrap w in a bufio.Writer for
// throughput.
func Convert(in wav.Header, r io.Reader, w io.Writer, f filter.Filter, opts Options) (wav.Header, error) {
	out, err := OutputHeader(in, opts)
	if err != nil {
		return wav.Header{}, err
	}
	dec, _ := inputCodec(in)
	enc, _ := outputCodec(opts.Format)

	if f == nil {
		f = filter.Identity{}
	}

	inFrames, outFrames := in.Frames(), out.Frames()
	opts.logger().Debug("converting",
		"input_format", in.AudioFormat.String(),
		"output_format", out.AudioFormat.String(),
		"input_frames", inFrames,
		"output_frames", outFrames,
	)

	if err := wav.WriteHeader(w, out); err != nil {
		return out, err
	}

	fw := &frameWriter{w: w, enc: enc, f: f}
	var in4 [4]byte

	for n := range outFrames {
		var x float32
		if n < inFrames {
			if _, err := io.ReadFull(r, in4[:dec.width]); err != nil {
				return out, fmt.Errorf("%w: reading frame %d of %d: %w", wav.ErrIO, n, inFrames, err)
			}
			x = dec.decode(in4[:dec.width])
		}

		if err := fw.process(x); err != nil {
			return out, err
		}
	}

	return out, nil
}

// ConvertSource runs a decoded mono source through f and writes a WAVE
// stream to w. The number of frames is not known up front, so a
// provisional header is written first and rewritten once the last frame
// is out; w is left positioned at the end of the stream.
func ConvertSource(src audio.Source, w io.WriteSeeker, f filter.Filter, opts Options) (wav.Header, error) {
	if src.Channels() != 1 {
		return wav.Header{}, fmt.Errorf("%w: %d channels, want 1", wav.ErrUnsupportedChannelLayout, src.Channels())
	}
	if src.SampleRate() <= 0 {
		return wav.Header{}, fmt.Errorf("%w: sample rate %d", wav.ErrUnsupportedFormat, src.SampleRate())
	}

	enc, err := outputCodec(opts.Format)
	if err != nil {
		return wav.Header{}, err
	}

	rate := uint32(src.SampleRate())
	limited := opts.Duration != 0
	limit := uint32(maxFrames)
	if limited {
		if limit, err = targetFrames(rate, opts.Duration); err != nil {
			return wav.Header{}, err
		}
	}

	if f == nil {
		f = filter.Identity{}
	}

	start, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return wav.Header{}, fmt.Errorf("%w: %w", wav.ErrIO, err)
	}
	if err := wav.WriteHeader(w, wav.NewHeader(opts.Format, 1, rate, enc.bits, 0)); err != nil {
		return wav.Header{}, err
	}

	bw := bufio.NewWriter(w)
	fw := &frameWriter{w: bw, enc: enc, f: f}
	buf := make([]float32, 4096)

	for fw.n < limit {
		n, readErr := src.ReadSamples(buf)
		for _, x := range buf[:n] {
			if fw.n >= limit {
				break
			}
			if err := fw.process(x); err != nil {
				return wav.Header{}, err
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return wav.Header{}, fmt.Errorf("%w: reading source: %w", wav.ErrIO, readErr)
		}
	}

	if fw.n >= maxFrames && !limited {
		return wav.Header{}, fmt.Errorf("%w: source exceeds %d frames", ErrTooLong, uint32(maxFrames))
	}

	for limited && fw.n < limit {
		if err := fw.process(0); err != nil {
			return wav.Header{}, err
		}
	}

	if err := bw.Flush(); err != nil {
		return wav.Header{}, fmt.Errorf("%w: %w", wav.ErrIO, err)
	}

	out := wav.NewHeader(opts.Format, 1, rate, enc.bits, fw.n)
	opts.logger().Debug("converted source", "sample_rate", rate, "frames", fw.n)

	if _, err := w.Seek(start, io.SeekStart); err != nil {
		return out, fmt.Errorf("%w: %w", wav.ErrIO, err)
	}
	if err := wav.WriteHeader(w, out); err != nil {
		return out, err
	}
	if _, err := w.Seek(start+wav.HeaderSize+int64(out.DataSize), io.SeekStart); err != nil {
		return out, fmt.Errorf("%w: %w", wav.ErrIO, err)
	}

	return out, nil
}
