package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults are optional flag presets read from the defaults file.
// claudeup only ever reads this file; it is never written.
type Defaults struct {
	NodeVersion string `toml:"node_version"`
	CABundle    string `toml:"ca_bundle"`
	Proxy       string `toml:"proxy"`
	AWSRegion   string `toml:"aws_region"`
	AWSProfile  string `toml:"aws_profile"`
}

// BuiltinDefaults returns the compiled-in defaults.
func BuiltinDefaults() Defaults {
	return Defaults{
		NodeVersion: DefaultNodeVersion,
		CABundle:    DefaultCABundle,
	}
}

// ConfigDir returns the claudeup config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "claudeup")
}

func defaultsPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadDefaults reads the defaults file layered over the builtins. A
// missing or malformed file yields the builtins.
func LoadDefaults() Defaults {
	d := BuiltinDefaults()

	data, err := os.ReadFile(defaultsPath())
	if err != nil {
		return d
	}

	_ = toml.Unmarshal(data, &d)
	if d.NodeVersion == "" {
		d.NodeVersion = DefaultNodeVersion
	}
	if d.CABundle == "" {
		d.CABundle = DefaultCABundle
	}
	return d
}
