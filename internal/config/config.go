// Package config holds the immutable per-run configuration and the
// filesystem locations claudeup manages.
package config

import (
	"os"
	"path/filepath"
)

// TokenKind selects which credential variable the shell block exports.
type TokenKind string

const (
	// TokenAnthropic exports the token as ANTHROPIC_API_KEY.
	TokenAnthropic TokenKind = "anthropic"
	// TokenBedrock exports the token as an AWS Bedrock bearer token.
	TokenBedrock TokenKind = "bedrock"
)

// Built-in defaults, overridable via the defaults file.
const (
	DefaultNodeVersion = "22"
	DefaultCABundle    = "/etc/ssl/certs/ca-certificates.crt"
)

// Install is the configuration for a single run. It is built once from
// CLI flags layered over the optional defaults file, threaded as a
// parameter into every operation, and never mutated.
type Install struct {
	Token       string
	TokenKind   TokenKind
	AWSRegion   string
	AWSProfile  string
	Proxy       string
	NodeVersion string
	CABundle    string
	SkipProxy   bool
	KeepNode    bool
	Force       bool
	Verbose     bool
}

// Paths locates the directories claudeup manages under a home
// directory.
type Paths struct {
	Home         string
	NvmDir       string
	NpmGlobalDir string
}

// DefaultPaths returns the managed paths under the current user's home.
func DefaultPaths() Paths {
	home, _ := os.UserHomeDir()
	return PathsIn(home)
}

// PathsIn returns the managed paths under an explicit home directory.
func PathsIn(home string) Paths {
	return Paths{
		Home:         home,
		NvmDir:       filepath.Join(home, ".nvm"),
		NpmGlobalDir: filepath.Join(home, ".npm-global"),
	}
}
