// Package cli holds the wellnest cobra commands.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

const appName = "wellnest"

// Version is overridden at build time with -ldflags.
var Version = "0.1.0"

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Cycle and pregnancy tracker API",
		Long: `wellnest records daily cycle and pregnancy entries and derives
cycle statistics, gestational progress and symptom frequencies from them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newResetPasswordCommand(),
		newStatsCommand(),
		newWatchCommand(),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s/%s)\n", appName, Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
