// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/ik5/wavefmt"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(wavefmt.ExitCode(err))
	}
}
