package main

import (
	"fmt"
	"runtime"
	runtimedebug "runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X main.version=..." on release builds.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString(version, buildRevision()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionString formats the version line; revision is omitted when unknown.
func versionString(v, revision string) string {
	s := fmt.Sprintf("mockinterview %s (%s)", v, runtime.Version())
	if revision != "" {
		s += " " + revision
	}
	return s
}

// buildRevision returns the short VCS revision stamped by the go tool, if any.
func buildRevision() string {
	info, ok := runtimedebug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			return setting.Value[:7]
		}
	}
	return ""
}
