package main

import (
	"fmt"
	"os"

	"github.com/idelchi/filebyte/internal/cli"
)

// version is set at build time via ldflags.
//
//nolint:gochecknoglobals // Build metadata
var version = "dev"

func main() {
	if err := cli.NewCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
