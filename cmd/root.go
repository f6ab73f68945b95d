// Package cmd wires the claudeup CLI: install, check, and uninstall.
package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "claudeup",
	Short: "claudeup — install and manage the Claude Code CLI",
	Long: "claudeup installs the Claude Code CLI together with its Node.js\n" +
		"runtime (via nvm) and keeps your shell startup files configured\n" +
		"across bash, zsh, fish, csh, and tcsh.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return errors.New("a command is required")
	},
}

func init() {
	rootCmd.SetVersionTemplate("claudeup {{ .Version }}\n")
	rootCmd.AddCommand(
		installCmd(),
		checkCmd(),
		uninstallCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
