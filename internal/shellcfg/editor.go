package shellcfg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Upsert writes the rendered block into the dialect's rc file,
// replacing any existing block. Running it twice with the same block
// yields a byte-identical file. It returns the path that was written.
func Upsert(p Profile, block, home string) (string, error) {
	target := p.target(home)
	if p.ConfDir {
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return "", err
		}
	}

	existing := ""
	if data, err := os.ReadFile(target); err == nil {
		existing = string(data)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	remainder, _ := stripBlock(existing)
	remainder = strings.TrimSpace(remainder)
	content := block
	if remainder != "" {
		content = remainder + "\n\n" + block
	}

	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return "", err
	}
	return target, nil
}

// Remove strips the block from every candidate rc file that contains
// it, normalizing each to a single trailing newline. It returns the
// paths that were cleaned; files without the markers are untouched.
func Remove(p Profile, home string) ([]string, error) {
	var cleaned []string
	for _, rel := range p.RCFiles {
		path := filepath.Join(home, rel)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return cleaned, err
		}

		rest, had := stripBlock(string(data))
		if !had {
			continue
		}
		if err := os.WriteFile(path, []byte(rest+"\n"), 0o644); err != nil {
			return cleaned, err
		}
		cleaned = append(cleaned, path)
	}
	return cleaned, nil
}

// Configured reports whether any candidate rc file carries the block.
func Configured(p Profile, home string) bool {
	for _, rel := range p.RCFiles {
		data, err := os.ReadFile(filepath.Join(home, rel))
		if err == nil && strings.Contains(string(data), StartMarker) {
			return true
		}
	}
	return false
}

// target picks the rc file to edit: the first candidate that exists,
// or the first candidate when none do. fish always uses its single
// conf.d path.
func (p Profile) target(home string) string {
	first := filepath.Join(home, p.RCFiles[0])
	if p.ConfDir {
		return first
	}
	for _, rel := range p.RCFiles {
		path := filepath.Join(home, rel)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return first
}
