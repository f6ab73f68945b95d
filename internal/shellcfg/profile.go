// Package shellcfg renders and maintains the delimited Claude Code
// configuration block inside shell rc files, one dialect at a time.
package shellcfg

import "fmt"

// Markers delimiting the managed block. At most one block exists per
// rc file; the upsert always removes an old block before appending.
const (
	StartMarker = "# >>> Claude Code Configuration >>>"
	EndMarker   = "# <<< Claude Code Configuration <<<"
)

// Profile describes how one shell dialect is configured: where its rc
// files live and how it spells environment and PATH lines.
type Profile struct {
	Name    string
	RCFiles []string // relative to home, priority order
	EnvFmt  string   // key, value
	PathFmt string   // directory
	ConfDir bool     // single synthesized conf.d file, always written
}

var profiles = []Profile{
	{
		Name:    "bash",
		RCFiles: []string{".bashrc", ".bash_profile", ".profile"},
		EnvFmt:  `export %s="%s"`,
		PathFmt: `export PATH="%s:$PATH"`,
	},
	{
		Name:    "zsh",
		RCFiles: []string{".zshrc", ".zprofile"},
		EnvFmt:  `export %s="%s"`,
		PathFmt: `export PATH="%s:$PATH"`,
	},
	{
		Name:    "fish",
		RCFiles: []string{".config/fish/conf.d/claude.fish"},
		EnvFmt:  `set -gx %s "%s"`,
		PathFmt: `fish_add_path "%s"`,
		ConfDir: true,
	},
	{
		Name:    "csh",
		RCFiles: []string{".cshrc", ".login"},
		EnvFmt:  `setenv %s "%s"`,
		PathFmt: `setenv PATH "%s:$PATH"`,
	},
	{
		Name:    "tcsh",
		RCFiles: []string{".tcshrc", ".cshrc", ".login"},
		EnvFmt:  `setenv %s "%s"`,
		PathFmt: `setenv PATH "%s:$PATH"`,
	},
}

// All returns the supported profiles in display order.
func All() []Profile {
	return profiles
}

// Dialects returns the supported dialect names in display order.
func Dialects() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the profile for a dialect name.
func Lookup(name string) (Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

func (p Profile) env(key, value string) string {
	return fmt.Sprintf(p.EnvFmt, key, value)
}

func (p Profile) path(dir string) string {
	return fmt.Sprintf(p.PathFmt, dir)
}
