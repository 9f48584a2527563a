// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ik5/wavefmt"
	"github.com/ik5/wavefmt/convert"
	"github.com/ik5/wavefmt/filter"
	"github.com/ik5/wavefmt/internal/config"
	"github.com/spf13/cobra"
)

func newFilterCmd() *cobra.Command {
	filters := filter.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "filter <in> <out>",
		Short: "Run an audio file through a filter into a mono WAVE file",
		Long: "Run an audio file through a filter into a mono WAVE file.\n\n" +
			"Inputs: " + strings.Join(wavefmt.DefaultRegistry(nil).Formats(), ", ") + ".\n" +
			"Filters: " + strings.Join(filters.Names(), ", ") + ".",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := fileOptions(activeCfg, filters, slog.Default())
			if err != nil {
				return err
			}

			hdr, err := wavefmt.FilterFile(args[0], args[1], nil, opts)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d Hz, %d frames\n",
				args[1], hdr.AudioFormat, hdr.SampleRate, hdr.Frames())
			return err
		},
	}

	return cmd
}

// fileOptions turns the loaded configuration into FilterFile options. The
// filter itself is built once the input sample rate is known.
func fileOptions(cfg config.Config, filters *filter.Registry, logger *slog.Logger) (wavefmt.FileOptions, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	format, err := config.ParseFormat(cfg.Output.Format)
	if err != nil {
		return wavefmt.FileOptions{}, err
	}

	name, params := cfg.Filter.Name, cfg.Filter.Params()

	return wavefmt.FileOptions{
		Options: convert.Options{
			Format:   format,
			Duration: cfg.Output.Duration,
			Logger:   logger,
		},
		Downmix: cfg.Output.Downmix,
		NewFilter: func(sampleRate int) (filter.Filter, error) {
			logger.Debug("building filter", "name", name, "sample_rate", sampleRate)
			return filters.New(name, sampleRate, params)
		},
	}, nil
}
