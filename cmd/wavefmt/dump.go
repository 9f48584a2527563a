// SPDX-License-Identifier: EPL-2.0

package main

import (
	"log/slog"

	"github.com/ik5/wavefmt"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var chunks bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the WAVE header of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wavefmt.DumpFile(cmd.OutOrStdout(), args[0], wavefmt.DumpOptions{
				Logger: slog.Default(),
				Chunks: chunks,
			})
		},
	}

	cmd.Flags().BoolVar(&chunks, "chunks", false, "Also list every top level RIFF chunk")

	return cmd
}
