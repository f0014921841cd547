// Package main is the entry point for the stakeview CLI.
package main

import (
	"os"

	"github.com/mrz1836/stakeview/internal/cli"
)

// Set by the linker at release build time.
//
//nolint:gochecknoglobals // build metadata
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
