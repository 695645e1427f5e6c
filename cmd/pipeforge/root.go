package main

import (
	"github.com/spf13/cobra"

	"github.com/pipeforge/core/internal/logging"
)

// rootFlags carries the flags spec.md §6 calls for: a config path, a
// script path, and a verbosity switch, mirroring cmd/streamy's root.go
// persistent-flags-plus-subcommands layout.
type rootFlags struct {
	configPath string
	scriptPath string
	verbose    bool
}

func newRootCmd(core *logging.Core) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "pipeforge",
		Short:         "PipeForge executes pipeline scripts against a pluggable agent and step registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.scriptPath == "" {
				return cmd.Help()
			}
			return runScript(cmd, core, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to the engine configuration file")
	cmd.PersistentFlags().StringVarP(&flags.scriptPath, "script", "s", "", "Path to the pipeline script to execute")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug-level logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDashboardCmd(core, flags))
	cmd.AddCommand(newLintCmd(flags))

	return cmd
}
