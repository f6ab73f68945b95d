// Package runner abstracts external process execution so the installer
// and prober can be driven by a fake in tests.
package runner

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/claudeup/claudeup/internal/ui"
)

// Runner executes an external command and reports its standard output
// along with whether it exited successfully. Execution errors never
// propagate; a failed or missing command is simply not ok.
type Runner interface {
	Run(name string, args ...string) (output string, ok bool)
}

// Bash runs a script through bash -c.
func Bash(r Runner, script string) (string, bool) {
	return r.Run("bash", "-c", script)
}

// Exec runs commands on the host. When Verbose is set it echoes each
// command line and the truncated output of failures.
type Exec struct {
	Verbose bool
}

func (e Exec) Run(name string, args ...string) (string, bool) {
	if e.Verbose {
		ui.Subtle.Printf("  $ %s\n", commandLine(name, args))
	}

	// Only stdout feeds the callers that parse version strings; stderr
	// is kept aside for diagnostics so shell noise never pollutes them.
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	text := strings.TrimSpace(stdout.String())
	if err != nil {
		if e.Verbose {
			ui.Subtle.Printf("    command failed: %v\n", err)
			for _, line := range truncateLines(strings.TrimSpace(stderr.String()), 5) {
				ui.Subtle.Printf("    %s\n", line)
			}
		}
		return text, false
	}
	return text, true
}

// commandLine renders a command for verbose echo, shortening scripts
// passed through bash -c to their first meaningful line.
func commandLine(name string, args []string) string {
	full := name + " " + strings.Join(args, " ")
	if name != "bash" || len(args) != 2 || args[0] != "-c" {
		return full
	}
	for _, line := range strings.Split(args[1], "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return "bash -c " + line + " ..."
		}
	}
	return full
}

// truncateLines splits text into lines and returns at most n lines.
func truncateLines(s string, n int) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return lines
	}
	out := lines[:n]
	out = append(out, fmt.Sprintf("... (%d more lines)", len(lines)-n))
	return out
}
