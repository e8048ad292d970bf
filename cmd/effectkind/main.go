// Command effectkind decodes effect kind words, prints effect policies and
// self-tests the floating-point environment of the host.
package main

import (
	"fmt"
	"os"

	"github.com/on-the-ground/effect_ive_kinds/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "effectkind:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
