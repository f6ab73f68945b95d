package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/claudeup/claudeup/internal/config"
	"github.com/claudeup/claudeup/internal/installer"
	"github.com/claudeup/claudeup/internal/probe"
	"github.com/claudeup/claudeup/internal/runner"
	"github.com/claudeup/claudeup/internal/shellcfg"
	"github.com/claudeup/claudeup/internal/ui"
	"github.com/spf13/cobra"
)

func installCmd() *cobra.Command {
	var (
		token       string
		bedrock     bool
		awsRegion   string
		awsProfile  string
		proxy       string
		noProxy     bool
		nodeVersion string
		force       bool
		verbose     bool
	)

	defaults := config.LoadDefaults()

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install Claude Code, its Node.js runtime, and shell configuration",
		Run: func(cmd *cobra.Command, args []string) {
			kind := config.TokenAnthropic
			if bedrock {
				kind = config.TokenBedrock
			}
			cfg := config.Install{
				Token:       token,
				TokenKind:   kind,
				AWSRegion:   awsRegion,
				AWSProfile:  awsProfile,
				Proxy:       proxy,
				NodeVersion: nodeVersion,
				CABundle:    defaults.CABundle,
				SkipProxy:   noProxy,
				Force:       force,
				Verbose:     verbose,
			}
			r := runner.Exec{Verbose: verbose}
			if code := runInstall(r, cfg, config.DefaultPaths()); code != 0 {
				os.Exit(code)
			}
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "API token (Anthropic API key or Bedrock bearer token)")
	cmd.Flags().BoolVar(&bedrock, "bedrock", false, "Treat the token as an AWS Bedrock bearer token")
	cmd.Flags().StringVarP(&awsRegion, "aws-region", "r", defaults.AWSRegion, "AWS region for Bedrock")
	cmd.Flags().StringVar(&awsProfile, "aws-profile", defaults.AWSProfile, "AWS profile name")
	cmd.Flags().StringVarP(&proxy, "proxy", "p", defaults.Proxy, "HTTP proxy URL")
	cmd.Flags().BoolVar(&noProxy, "no-proxy", false, "Skip proxy configuration")
	cmd.Flags().StringVarP(&nodeVersion, "node-version", "n", defaults.NodeVersion, "Node.js version to install")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force reinstall")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	return cmd
}

// runInstall provisions nvm, Node.js, and Claude Code, then writes the
// shell configuration. A hard step failure returns 1.
func runInstall(r runner.Runner, cfg config.Install, paths config.Paths) int {
	in := installer.Installer{Runner: r, Cfg: cfg, Paths: paths}

	ui.Banner("install")

	if installed, claudeVersion, _ := probe.Claude(r, paths); installed && !cfg.Force {
		ui.Good.Printf("  %s Claude Code already installed: %s\n", ui.StatusIcon(true), claudeVersion)
		ui.Subtle.Println("  Use --force to reinstall")
		if cfg.Token != "" {
			fmt.Println("\n  Updating shell configuration with new settings...")
			configureShells(cfg, paths)
		}
		return 0
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Setting up nvm", in.EnsureNVM},
		{"Installing Node.js", in.EnsureNode},
		{"Installing Claude Code", in.EnsureClaude},
	}
	for i, step := range steps {
		fmt.Printf("\n  Step %d: %s\n", i+1, step.name)
		if err := step.fn(); err != nil {
			ui.Bad.Printf("\n  Install failed: %v\n", err)
			return 1
		}
	}

	fmt.Println("\n  Step 4: Configuring shells")
	configureShells(cfg, paths)

	fmt.Println("\n  Step 5: Verifying installation")
	installed, _, _ := probe.Claude(r, paths)
	current := probe.LoginShell()

	fmt.Println()
	if installed {
		ui.Good.Printf("  %s Installation complete\n", ui.StatusIcon(true))
	} else {
		ui.Warn.Printf("  %s Installation may require a shell restart\n", ui.WarnIcon())
	}
	fmt.Printf("\n  Your shell: %s\n", current)
	fmt.Println("  Restart your terminal or run:")
	fmt.Printf("      %s\n", sourceCommand(current))
	fmt.Println("  Then test: claude --version")

	if cfg.Token == "" {
		fmt.Println()
		ui.Warn.Printf("  %s No API token configured. Set one with:\n", ui.WarnIcon())
		fmt.Println("      export ANTHROPIC_API_KEY='your-token'")
	}
	return 0
}

// configureShells upserts the configuration block for every dialect
// installed on this machine.
func configureShells(cfg config.Install, paths config.Paths) {
	now := time.Now()
	installed := probe.InstalledShells(shellcfg.Dialects())
	for _, p := range shellcfg.All() {
		if !installed[p.Name] {
			continue
		}
		block := shellcfg.Render(p, cfg, paths, now)
		path, err := shellcfg.Upsert(p, block, paths.Home)
		if err != nil {
			ui.Warn.Printf("  %s %s: %v\n", ui.WarnIcon(), p.Name, err)
			continue
		}
		ui.Good.Printf("  %s %s: %s\n", ui.StatusIcon(true), p.Name, path)
	}
}

// sourceCommand returns the reload command for the current dialect.
func sourceCommand(shell string) string {
	switch shell {
	case "fish":
		return "source ~/.config/fish/conf.d/claude.fish"
	case "zsh":
		return "source ~/.zshrc"
	case "csh", "tcsh":
		return fmt.Sprintf("source ~/.%src", shell)
	default:
		return "source ~/.bashrc"
	}
}
