// Package cmd contains cobra commands shared by the binaries of this module.
package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Version returns a `version` command to be added to any cobra (root) command.
func Version(name string) *cobra.Command {
	name = strings.TrimSpace(name)

	short := "Print version"
	if name != "" {
		short = "Print " + name + " version"
	}

	return &cobra.Command{
		Use:                   "version",
		Short:                 short,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, _ []string) {
			build := ReadBuild()

			prefix := ""
			if name != "" {
				prefix = name + " "
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%sversion: %s from %s\n", prefix, build.Hash, build.Time)
		},
	}
}

// Build describes the commit a binary is build from.
type Build struct {
	Hash     string
	Time     string
	Modified bool
}

// ReadBuild returns the last commit hash and commit timestamp of the binary.
// Binaries build from uncommitted changes, via `go run` or `go test` report `@latest` and the current time.
func ReadBuild() Build {
	build := Build{}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings { // empty if called from a Go test
			switch setting.Key {
			case "vcs.revision":
				build.Hash = setting.Value
			case "vcs.time":
				build.Time = setting.Value
			case "vcs.modified":
				build.Modified = setting.Value == "true"
			}
		}
	}

	if build.Modified || build.Hash == "" {
		build.Hash = "@latest"
		build.Time = time.Now().UTC().Format(time.RFC3339)
	}

	return build
}
