// Package probe discovers the installed state of Node.js, npm, nvm,
// and the Claude Code CLI. Probes never fail hard; they report status
// text and let the caller decide what to do.
package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/claudeup/claudeup/internal/config"
	"github.com/claudeup/claudeup/internal/runner"
)

// MinNodeMajor is the oldest Node.js major version Claude Code supports.
const MinNodeMajor = 18

var nodeVersionRe = regexp.MustCompile(`v(\d+)\.(\d+)\.(\d+)`)

// Node reports whether a usable Node.js is reachable, preferring the
// nvm-managed install over whatever is on PATH. The message
// distinguishes "not found", "unparseable", and "too old".
func Node(r runner.Runner, p config.Paths) (bool, string) {
	out := versionVia(r, p, "node --version")
	if out == "" {
		out = bareVersion(r, "node")
	}
	if out == "" {
		return false, "Node.js not found"
	}

	m := nodeVersionRe.FindStringSubmatch(out)
	if m == nil {
		return false, fmt.Sprintf("could not parse Node.js version: %s", out)
	}
	major, _ := strconv.Atoi(m[1])
	if major < MinNodeMajor {
		return false, fmt.Sprintf("Node.js %s (too old, need >=%d)", out, MinNodeMajor)
	}
	return true, fmt.Sprintf("Node.js %s (OK, >=%d)", out, MinNodeMajor)
}

// Npm reports whether npm is reachable. Any version string counts.
func Npm(r runner.Runner, p config.Paths) (bool, string) {
	out := versionVia(r, p, "npm --version")
	if out == "" {
		out = bareVersion(r, "npm")
	}
	if out == "" {
		return false, "npm not found"
	}
	return true, "npm v" + out
}

// NVM reports whether the nvm init script exists.
func NVM(p config.Paths) bool {
	_, err := os.Stat(filepath.Join(p.NvmDir, "nvm.sh"))
	return err == nil
}

// Claude locates the claude executable and its version. The nvm-aware
// PATH search is tried first, then a short list of well-known
// locations. A binary that will not report a version is still
// installed; its version is "unknown".
func Claude(r runner.Runner, p config.Paths) (installed bool, version, path string) {
	script := fmt.Sprintf(`
export NVM_DIR=%q
[ -s "$NVM_DIR/nvm.sh" ] && . "$NVM_DIR/nvm.sh"
export PATH="%s:$PATH"
command -v claude 2>/dev/null
`, p.NvmDir, filepath.Join(p.NpmGlobalDir, "bin"))
	if out, ok := runner.Bash(r, script); ok {
		path = strings.TrimSpace(out)
	}

	if path == "" {
		for _, cand := range fallbackPaths(p) {
			if _, err := os.Stat(cand); err == nil {
				path = cand
				break
			}
		}
	}
	if path == "" {
		return false, "", ""
	}

	version = "unknown"
	verScript := fmt.Sprintf(`
export NVM_DIR=%q
[ -s "$NVM_DIR/nvm.sh" ] && . "$NVM_DIR/nvm.sh"
%q --version 2>/dev/null
`, p.NvmDir, path)
	if out, ok := runner.Bash(r, verScript); ok && strings.TrimSpace(out) != "" {
		version = strings.TrimSpace(out)
	}
	return true, version, path
}

func fallbackPaths(p config.Paths) []string {
	return []string{
		filepath.Join(p.NpmGlobalDir, "bin", "claude"),
		filepath.Join(p.Home, ".local", "bin", "claude"),
		"/usr/local/bin/claude",
		"/usr/bin/claude",
	}
}

// versionVia asks for a version string with nvm's environment sourced.
func versionVia(r runner.Runner, p config.Paths, probe string) string {
	script := fmt.Sprintf(`
export NVM_DIR=%q
[ -s "$NVM_DIR/nvm.sh" ] && . "$NVM_DIR/nvm.sh"
%s 2>/dev/null
`, p.NvmDir, probe)
	out, ok := runner.Bash(r, script)
	if !ok {
		return ""
	}
	return strings.TrimSpace(out)
}

func bareVersion(r runner.Runner, name string) string {
	out, ok := r.Run(name, "--version")
	if !ok {
		return ""
	}
	return strings.TrimSpace(out)
}
