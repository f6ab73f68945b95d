package cmd

import (
	"fmt"
	"os"

	"github.com/claudeup/claudeup/internal/config"
	"github.com/claudeup/claudeup/internal/installer"
	"github.com/claudeup/claudeup/internal/probe"
	"github.com/claudeup/claudeup/internal/runner"
	"github.com/claudeup/claudeup/internal/shellcfg"
	"github.com/claudeup/claudeup/internal/ui"
	"github.com/spf13/cobra"
)

func uninstallCmd() *cobra.Command {
	var (
		keepNode bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall Claude Code and clean shell configuration",
		Run: func(cmd *cobra.Command, args []string) {
			r := runner.Exec{Verbose: verbose}
			if code := runUninstall(r, config.DefaultPaths(), keepNode); code != 0 {
				os.Exit(code)
			}
		},
	}

	cmd.Flags().BoolVar(&keepNode, "keep-node", false, "Keep Node.js and nvm installed")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	return cmd
}

// runUninstall removes Claude Code, optionally the runtime, and every
// configuration block. Individual failures are reported but the exit
// code is always 0.
func runUninstall(r runner.Runner, paths config.Paths, keepNode bool) int {
	in := installer.Installer{Runner: r, Cfg: config.Install{KeepNode: keepNode}, Paths: paths}

	ui.Banner("uninstall")

	fmt.Println("  Step 1: Removing Claude Code")
	in.UninstallClaude()

	if keepNode {
		fmt.Println("\n  Step 2: Keeping Node.js and nvm (--keep-node)")
	} else {
		fmt.Println("\n  Step 2: Removing nvm and Node.js")
		// Reported, but never fails the uninstall.
		if err := in.RemoveRuntime(); err != nil {
			ui.Bad.Printf("  %s %v\n", ui.StatusIcon(false), err)
		}
	}

	fmt.Println("\n  Step 3: Cleaning shell configuration")
	installedShells := probe.InstalledShells(shellcfg.Dialects())
	for _, p := range shellcfg.All() {
		if !installedShells[p.Name] {
			continue
		}
		cleaned, err := shellcfg.Remove(p, paths.Home)
		if err != nil {
			ui.Warn.Printf("  %s %s: %v\n", ui.WarnIcon(), p.Name, err)
			continue
		}
		for _, path := range cleaned {
			ui.Good.Printf("  %s cleaned %s\n", ui.StatusIcon(true), path)
		}
	}

	fmt.Println()
	ui.Good.Printf("  %s Uninstall complete — restart your terminal\n", ui.StatusIcon(true))
	return 0
}
