// Package main is the entry point for the mentions composer.
package main

import (
	"os"

	"github.com/dshills/mentions/internal/cli"
	"github.com/dshills/mentions/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("%v", err)
		return 1
	}
	return 0
}
