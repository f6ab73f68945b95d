package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/claudeup/claudeup/internal/config"
	"github.com/claudeup/claudeup/internal/probe"
	"github.com/claudeup/claudeup/internal/runner"
	"github.com/claudeup/claudeup/internal/shellcfg"
	"github.com/claudeup/claudeup/internal/ui"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the Claude Code installation status",
		Run: func(cmd *cobra.Command, args []string) {
			r := runner.Exec{Verbose: verbose}
			if code := runCheck(r, config.DefaultPaths()); code != 0 {
				os.Exit(code)
			}
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	return cmd
}

// runCheck reports the installation status and returns the process
// exit code: 0 only when node, npm, and Claude Code are all usable.
func runCheck(r runner.Runner, paths config.Paths) int {
	ui.Banner("status check")

	allOK := true

	nodeOK, nodeMsg := probe.Node(r, paths)
	printStatus(nodeOK, nodeMsg)
	allOK = allOK && nodeOK

	npmOK, npmMsg := probe.Npm(r, paths)
	printStatus(npmOK, npmMsg)
	allOK = allOK && npmOK

	// nvm is informational; node can satisfy without it.
	if probe.NVM(paths) {
		ui.Good.Printf("  %s nvm installed at %s\n", ui.StatusIcon(true), paths.NvmDir)
	} else {
		ui.Warn.Printf("  %s nvm not installed\n", ui.WarnIcon())
	}

	installed, claudeVersion, claudePath := probe.Claude(r, paths)
	if installed {
		ui.Good.Printf("  %s Claude Code %s\n", ui.StatusIcon(true), claudeVersion)
		ui.Info.Printf("    %s\n", claudePath)
	} else {
		ui.Bad.Printf("  %s Claude Code not installed\n", ui.StatusIcon(false))
		allOK = false
	}

	fmt.Println("\n  Environment:")
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		ui.Good.Printf("  %s ANTHROPIC_API_KEY: %s\n", ui.StatusIcon(true), ui.Mask(key))
	} else {
		ui.Warn.Printf("  %s ANTHROPIC_API_KEY: not set\n", ui.WarnIcon())
	}
	for _, name := range []string{"AWS_BEARER_TOKEN_BEDROCK", "AWS_REGION", "AWS_PROFILE", "HTTP_PROXY"} {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if strings.Contains(name, "TOKEN") || strings.Contains(name, "KEY") {
			value = ui.Mask(value)
		}
		fmt.Printf("    %s: %s\n", name, value)
	}

	fmt.Println("\n  Shells:")
	current := probe.LoginShell()
	installedShells := probe.InstalledShells(shellcfg.Dialects())
	var rows [][]string
	for _, p := range shellcfg.All() {
		if !installedShells[p.Name] {
			continue
		}
		name := p.Name
		if p.Name == current {
			name += " (current)"
		}
		status := "not configured"
		if shellcfg.Configured(p, paths.Home) {
			status = "configured"
		}
		rows = append(rows, []string{name, status})
	}
	ui.Table([]string{"shell", "status"}, rows)

	fmt.Println()
	if allOK && installed {
		ui.Good.Printf("  %s Claude Code is ready to use\n", ui.StatusIcon(true))
		return 0
	}
	ui.Subtle.Println("  Run `claudeup install --token YOUR_TOKEN` to finish setup")
	return 1
}

func printStatus(ok bool, msg string) {
	if ok {
		ui.Good.Printf("  %s %s\n", ui.StatusIcon(true), msg)
	} else {
		ui.Bad.Printf("  %s %s\n", ui.StatusIcon(false), msg)
	}
}
