package shellcfg

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/claudeup/claudeup/internal/config"
)

// Render produces the delimited configuration block for one dialect.
// The block is self-contained: nvm/PATH preamble, credential exports,
// AWS and proxy settings, and the CA bundle path.
func Render(p Profile, cfg config.Install, paths config.Paths, now time.Time) string {
	lines := []string{
		StartMarker,
		"# Generated on " + now.Format("2006-01-02 15:04:05"),
		"",
	}
	lines = append(lines, preamble(p, paths)...)
	lines = append(lines, "")

	if cfg.Token != "" {
		if cfg.TokenKind == config.TokenBedrock {
			lines = append(lines,
				p.env("AWS_BEARER_TOKEN_BEDROCK", cfg.Token),
				p.env("CLAUDE_CODE_USE_BEDROCK", "1"),
			)
		} else {
			lines = append(lines, p.env("ANTHROPIC_API_KEY", cfg.Token))
		}
	}

	if cfg.AWSRegion != "" {
		lines = append(lines, p.env("AWS_REGION", cfg.AWSRegion))
		if cfg.TokenKind == config.TokenBedrock {
			lines = append(lines, p.env("ANTHROPIC_BEDROCK_REGION", cfg.AWSRegion))
		}
	}
	if cfg.AWSProfile != "" {
		lines = append(lines, p.env("AWS_PROFILE", cfg.AWSProfile))
	}

	if cfg.Proxy != "" && !cfg.SkipProxy {
		lines = append(lines,
			p.env("HTTP_PROXY", cfg.Proxy),
			p.env("HTTPS_PROXY", cfg.Proxy),
			p.env("http_proxy", cfg.Proxy),
			p.env("https_proxy", cfg.Proxy),
		)
	}

	lines = append(lines,
		p.env("NODE_EXTRA_CA_CERTS", cfg.CABundle),
		"",
		EndMarker,
	)
	return strings.Join(lines, "\n") + "\n"
}

// preamble emits the nvm initialization for the dialect. bash and zsh
// source nvm at startup; fish resolves the newest node version with a
// startup loop; csh/tcsh have no sourcing hook, so the newest version
// directory found right now is baked into the PATH line.
func preamble(p Profile, paths config.Paths) []string {
	npmBin := filepath.Join(paths.NpmGlobalDir, "bin")

	switch p.Name {
	case "fish":
		return []string{
			p.env("NVM_DIR", paths.NvmDir),
			"",
			"# Add nvm Node.js to PATH",
			`if test -d "$NVM_DIR/versions/node"`,
			`    for version_dir in (ls -d "$NVM_DIR/versions/node"/* 2>/dev/null | sort -V -r)`,
			`        if test -d "$version_dir/bin"`,
			`            fish_add_path "$version_dir/bin"`,
			`            break`,
			`        end`,
			`    end`,
			`end`,
			"",
			p.path(npmBin),
		}
	case "csh", "tcsh":
		lines := []string{
			p.env("NVM_DIR", paths.NvmDir),
			"",
			"# Add nvm Node.js to PATH (resolved at install time)",
		}
		if latest := latestNodeDir(paths.NvmDir); latest != "" {
			lines = append(lines,
				`if ( -d "`+latest+`/bin" ) then`,
				`    setenv PATH "`+latest+`/bin:$PATH"`,
				"endif",
			)
		}
		return append(lines, p.path(npmBin))
	default: // bash, zsh
		return []string{
			p.env("NVM_DIR", paths.NvmDir),
			`[ -s "$NVM_DIR/nvm.sh" ] && \. "$NVM_DIR/nvm.sh"`,
			`[ -s "$NVM_DIR/bash_completion" ] && \. "$NVM_DIR/bash_completion"`,
			"",
			p.path(npmBin),
		}
	}
}

var versionDirRe = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)$`)

// latestNodeDir returns the newest installed node version directory
// under the nvm root, or "" when none is installed.
func latestNodeDir(nvmDir string) string {
	dir := filepath.Join(nvmDir, "versions", "node")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	best := ""
	var bestV [3]int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, ok := parseVersionDir(e.Name())
		if !ok {
			continue
		}
		if best == "" || versionLess(bestV, v) {
			best, bestV = e.Name(), v
		}
	}
	if best == "" {
		return ""
	}
	return filepath.Join(dir, best)
}

func parseVersionDir(name string) ([3]int, bool) {
	m := versionDirRe.FindStringSubmatch(name)
	if m == nil {
		return [3]int{}, false
	}
	var v [3]int
	for i := range v {
		v[i], _ = strconv.Atoi(m[i+1])
	}
	return v, true
}

func versionLess(a, b [3]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
