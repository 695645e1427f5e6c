package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	versionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	versionFieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// newVersionCmd prints build metadata, styled with the same lipgloss
// palette internal/dashboard uses for stage status (grounded on
// cmd/streamy's version.go, generalized from a components.Card render to
// a plain styled field list since this command has only the one render
// site and gains nothing from a reusable card component).
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, versionTitleStyle.Render("PipeForge"))
			fmt.Fprintln(out, "A pipeline execution engine for scripted CI/CD jobs")
			fmt.Fprintf(out, "%s %s\n", versionFieldStyle.Render("Version:"), version)
			fmt.Fprintf(out, "%s %s\n", versionFieldStyle.Render("Commit:"), commit)
			fmt.Fprintf(out, "%s %s\n", versionFieldStyle.Render("Built:"), date)
			return nil
		},
	}
}
