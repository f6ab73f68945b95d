// Package installer provisions nvm, Node.js, and the Claude Code CLI
// through external installers. Every step is idempotent, and success
// is verified by re-probing rather than by trusting subprocess exit
// codes.
package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/claudeup/claudeup/internal/config"
	"github.com/claudeup/claudeup/internal/probe"
	"github.com/claudeup/claudeup/internal/runner"
	"github.com/claudeup/claudeup/internal/ui"
)

// Package is the npm package this tool manages.
const Package = "@anthropic-ai/claude-code"

// nvmRelease pins the nvm bootstrap script to a known release tag.
const nvmRelease = "v0.40.3"

// Installer drives the provisioning steps through an injected runner.
type Installer struct {
	Runner runner.Runner
	Cfg    config.Install
	Paths  config.Paths
}

func (in Installer) nvmScript() string {
	return filepath.Join(in.Paths.NvmDir, "nvm.sh")
}

func (in Installer) nvmPresent() bool {
	_, err := os.Stat(in.nvmScript())
	return err == nil
}

// EnsureNVM installs nvm unless its init script already exists. The
// bootstrap's own exit status is not trusted; success means nvm.sh
// exists afterwards.
func (in Installer) EnsureNVM() error {
	if in.nvmPresent() {
		fmt.Printf("  %s nvm already installed\n", ui.StatusIcon(true))
		return nil
	}

	fmt.Printf("  Installing nvm %s...\n", nvmRelease)
	// The nvm installer writes informational noise to stderr.
	script := fmt.Sprintf(`
export NVM_DIR=%q
curl -s -o- https://raw.githubusercontent.com/nvm-sh/nvm/%s/install.sh | bash 2>&1 | grep -v "already in" | grep -v "^=>" || true
`, in.Paths.NvmDir, nvmRelease)
	runner.Bash(in.Runner, script)

	if !in.nvmPresent() {
		return fmt.Errorf("nvm bootstrap did not produce %s", in.nvmScript())
	}
	fmt.Printf("  %s nvm installed\n", ui.StatusIcon(true))
	return nil
}

// EnsureNode installs the configured Node.js version through nvm and
// makes it the default. A satisfying install is left alone unless
// Force is set.
func (in Installer) EnsureNode() error {
	if ok, msg := probe.Node(in.Runner, in.Paths); ok && !in.Cfg.Force {
		fmt.Printf("  %s %s\n", ui.StatusIcon(true), msg)
		return nil
	}

	if err := in.EnsureNVM(); err != nil {
		return err
	}

	v := in.Cfg.NodeVersion
	fmt.Printf("  Installing Node.js v%s...\n", v)
	script := fmt.Sprintf(`
export NVM_DIR=%q
[ -s "$NVM_DIR/nvm.sh" ] && . "$NVM_DIR/nvm.sh"
nvm install %s --latest-npm 2>&1 | grep -v "already in" | grep -v "^=>" || true
nvm use %s > /dev/null 2>&1
nvm alias default %s > /dev/null 2>&1
node --version
`, in.Paths.NvmDir, v, v, v)
	runner.Bash(in.Runner, script)

	ok, msg := probe.Node(in.Runner, in.Paths)
	if !ok {
		return fmt.Errorf("Node.js install did not verify: %s", msg)
	}
	fmt.Printf("  %s %s\n", ui.StatusIcon(true), msg)
	return nil
}

// EnsureClaude installs the Claude Code package globally through npm,
// preferring a user-owned prefix under ~/.npm-global. If that install
// does not succeed it retries once against nvm's own global location;
// both failing is a hard failure.
func (in Installer) EnsureClaude() error {
	if installed, version, _ := probe.Claude(in.Runner, in.Paths); installed && !in.Cfg.Force {
		fmt.Printf("  %s Claude Code already installed: %s\n", ui.StatusIcon(true), version)
		return nil
	}

	fmt.Printf("  Installing %s...\n", Package)
	for _, sub := range []string{"bin", "lib", "share"} {
		if err := os.MkdirAll(filepath.Join(in.Paths.NpmGlobalDir, sub), 0o755); err != nil {
			return fmt.Errorf("prepare %s: %w", in.Paths.NpmGlobalDir, err)
		}
	}

	if _, ok := runner.Bash(in.Runner, in.prefixedInstallScript()); ok {
		fmt.Printf("  %s Claude Code installed\n", ui.StatusIcon(true))
		return nil
	}

	fmt.Println("  Retrying without custom npm prefix...")
	if _, ok := runner.Bash(in.Runner, in.fallbackInstallScript()); ok {
		fmt.Printf("  %s Claude Code installed (nvm global)\n", ui.StatusIcon(true))
		return nil
	}

	return fmt.Errorf("npm install of %s failed with and without custom prefix", Package)
}

func (in Installer) prefixedInstallScript() string {
	var b strings.Builder
	fmt.Fprintf(&b, `
export NVM_DIR=%q
[ -s "$NVM_DIR/nvm.sh" ] && . "$NVM_DIR/nvm.sh"

mkdir -p %q %q %q

npm config set prefix %q
`,
		in.Paths.NvmDir,
		filepath.Join(in.Paths.NpmGlobalDir, "bin"),
		filepath.Join(in.Paths.NpmGlobalDir, "lib"),
		filepath.Join(in.Paths.NpmGlobalDir, "share"),
		in.Paths.NpmGlobalDir,
	)
	if in.Cfg.Proxy != "" && !in.Cfg.SkipProxy {
		fmt.Fprintf(&b, "npm config set proxy %s\nnpm config set https-proxy %s\n", in.Cfg.Proxy, in.Cfg.Proxy)
	}
	fmt.Fprintf(&b, "npm install -g %s\n", Package)
	return b.String()
}

func (in Installer) fallbackInstallScript() string {
	return fmt.Sprintf(`
export NVM_DIR=%q
[ -s "$NVM_DIR/nvm.sh" ] && . "$NVM_DIR/nvm.sh"
npm install -g %s
`, in.Paths.NvmDir, Package)
}

// UninstallClaude removes the npm package, best-effort. The true
// install location is not known in advance, so both the prefixed and
// the default global locations are tried and failures are ignored.
func (in Installer) UninstallClaude() {
	runner.Bash(in.Runner, fmt.Sprintf(`
export NVM_DIR=%q
[ -s "$NVM_DIR/nvm.sh" ] && . "$NVM_DIR/nvm.sh"
npm config set prefix %q
npm uninstall -g %s 2>/dev/null
`, in.Paths.NvmDir, in.Paths.NpmGlobalDir, Package))

	runner.Bash(in.Runner, fmt.Sprintf(`
export NVM_DIR=%q
[ -s "$NVM_DIR/nvm.sh" ] && . "$NVM_DIR/nvm.sh"
npm uninstall -g %s 2>/dev/null
`, in.Paths.NvmDir, Package))

	fmt.Printf("  %s Claude Code uninstalled\n", ui.StatusIcon(true))
}

// RemoveRuntime deletes the nvm root and the npm global prefix.
// Losing the nvm root is an error; losing the npm prefix directory is
// only a warning.
func (in Installer) RemoveRuntime() error {
	if _, err := os.Stat(in.Paths.NvmDir); err == nil {
		if err := os.RemoveAll(in.Paths.NvmDir); err != nil {
			return fmt.Errorf("remove %s: %w", in.Paths.NvmDir, err)
		}
		fmt.Printf("  %s removed %s\n", ui.StatusIcon(true), in.Paths.NvmDir)
	}

	if _, err := os.Stat(in.Paths.NpmGlobalDir); err == nil {
		if err := os.RemoveAll(in.Paths.NpmGlobalDir); err != nil {
			ui.Warn.Printf("  %s could not remove %s: %v\n", ui.WarnIcon(), in.Paths.NpmGlobalDir, err)
		} else {
			fmt.Printf("  %s removed %s\n", ui.StatusIcon(true), in.Paths.NpmGlobalDir)
		}
	}
	return nil
}
