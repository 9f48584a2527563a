// SPDX-License-Identifier: EPL-2.0

package wavefmt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/wavefmt/audio"
	"github.com/ik5/wavefmt/convert"
	"github.com/ik5/wavefmt/filter"
	"github.com/ik5/wavefmt/formats/aiff"
	"github.com/ik5/wavefmt/formats/mp3"
	"github.com/ik5/wavefmt/formats/vorbis"
	"github.com/ik5/wavefmt/formats/wav"
)

// DefaultRegistry returns the decoders for every supported input format.
func DefaultRegistry(logger *slog.Logger) *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{Logger: logger})
	r.Register("wave", wav.Decoder{Logger: logger})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})

	return r
}

// FileOptions configures FilterFile.
type FileOptions struct {
	convert.Options

	// Downmix averages multichannel inputs to mono instead of rejecting
	// them.
	Downmix bool
	// Registry picks the decoder for non WAV inputs. Nil means
	// DefaultRegistry.
	Registry *audio.Registry
	// NewFilter builds the filter once the input sample rate is known.
	// When set it takes the place of the filter passed to FilterFile.
	NewFilter func(sampleRate int) (filter.Filter, error)
}

func (o FileOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o FileOptions) filter(sampleRate int, f filter.Filter) (filter.Filter, error) {
	if o.NewFilter == nil {
		return f, nil
	}
	return o.NewFilter(sampleRate)
}

// FilterFile converts the audio file at inPath into a mono WAVE file at
// outPath, running every sample through f. It returns the header written
// to outPath.
func FilterFile(inPath, outPath string, f filter.Filter, opts FileOptions) (hdr wav.Header, err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return wav.Header{}, fmt.Errorf("%w: %w", ErrOpenFile, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return wav.Header{}, fmt.Errorf("%w: %w", ErrOpenFile, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", wav.ErrIO, cerr)
		}
	}()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(inPath), "."))
	log := opts.logger().With("input", inPath, "output", outPath)

	if (ext == "wav" || ext == "wave") && !opts.Downmix {
		log.Debug("filtering wav")
		return filterWAV(in, out, f, opts)
	}

	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry(opts.Logger)
	}
	dec, err := reg.ForPath(inPath)
	if err != nil {
		return wav.Header{}, err
	}

	log.Debug("filtering decoded source", "format", ext)
	return filterSource(dec, in, out, f, opts)
}

func filterWAV(r io.Reader, w io.Writer, f filter.Filter, opts FileOptions) (wav.Header, error) {
	in, _, err := wav.ReadHeader(r, wav.WithLogger(opts.Logger))
	if err != nil {
		return wav.Header{}, err
	}

	if f, err = opts.filter(int(in.SampleRate), f); err != nil {
		return wav.Header{}, err
	}

	bw := bufio.NewWriter(w)
	hdr, err := convert.Convert(in, r, bw, f, opts.Options)
	if err != nil {
		return hdr, err
	}
	if err := bw.Flush(); err != nil {
		return hdr, fmt.Errorf("%w: %w", wav.ErrIO, err)
	}

	return hdr, nil
}

func filterSource(dec audio.Decoder, r io.Reader, w io.WriteSeeker, f filter.Filter, opts FileOptions) (hdr wav.Header, err error) {
	src, err := dec.Decode(r)
	if err != nil {
		return wav.Header{}, err
	}
	defer func() {
		err = errors.Join(err, src.Close())
	}()

	if opts.Downmix && src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}

	if f, err = opts.filter(src.SampleRate(), f); err != nil {
		return wav.Header{}, err
	}

	return convert.ConvertSource(src, w, f, opts.Options)
}
