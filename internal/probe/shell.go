package probe

import (
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

const passwdFile = "/etc/passwd"

// LoginShell returns the dialect name of the user's login shell,
// preferring the user-account database over the SHELL variable.
func LoginShell() string {
	if name := loginShellFromPasswd(); name != "" {
		return name
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return filepath.Base(sh)
	}
	return "bash"
}

func loginShellFromPasswd() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(passwdFile)
	if err != nil {
		return ""
	}
	return shellFromPasswd(string(data), u.Username)
}

// shellFromPasswd scans passwd-format data for an exact username match
// and returns the basename of its shell field.
func shellFromPasswd(data, username string) string {
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Split(strings.TrimSpace(line), ":")
		if len(fields) >= 7 && fields[0] == username && fields[6] != "" {
			return filepath.Base(fields[6])
		}
	}
	return ""
}

// InstalledShells reports, for each dialect name, whether an
// executable by that name is on PATH.
func InstalledShells(names []string) map[string]bool {
	installed := make(map[string]bool, len(names))
	for _, name := range names {
		_, err := exec.LookPath(name)
		installed[name] = err == nil
	}
	return installed
}
