package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipeforge/core/internal/scriptvalidator"
)

// newLintCmd exposes the static Script Validator as a standalone gate,
// grounded on cmd/streamy's own verify-then-report subcommand shape: read
// the script, run every check, print the formatted report, and fail the
// process on any error-severity issue.
func newLintCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Run static checks over a pipeline script without executing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.scriptPath == "" {
				return fmt.Errorf("--script is required")
			}
			raw, err := os.ReadFile(flags.scriptPath)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}

			report := scriptvalidator.Validate(string(raw), flags.scriptPath, scriptvalidator.CompilationContext{}, scriptvalidator.ExecutionContext{})
			fmt.Fprintln(cmd.OutOrStdout(), report.FormattedText)

			if !report.ToResult().Valid {
				os.Exit(1)
			}
			return nil
		},
	}
}
