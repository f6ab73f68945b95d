package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claudeup/claudeup/internal/config"
)

// fakeRunner answers each command by substring match against the full
// command line and optionally runs a side effect, so tests can imitate
// what the real installers leave on disk.
type fakeRunner struct {
	rules []rule
	calls []string
}

type rule struct {
	match  string
	out    string
	ok     bool
	effect func()
}

func (f *fakeRunner) Run(name string, args ...string) (string, bool) {
	line := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, line)
	for _, r := range f.rules {
		if strings.Contains(line, r.match) {
			if r.effect != nil {
				r.effect()
			}
			return r.out, r.ok
		}
	}
	return "", false
}

func (f *fakeRunner) callsMatching(substr string) int {
	n := 0
	for _, c := range f.calls {
		if strings.Contains(c, substr) {
			n++
		}
	}
	return n
}

func newInstaller(t *testing.T, r *fakeRunner) Installer {
	t.Helper()
	paths := config.PathsIn(t.TempDir())
	return Installer{
		Runner: r,
		Cfg: config.Install{
			TokenKind:   config.TokenAnthropic,
			NodeVersion: config.DefaultNodeVersion,
			CABundle:    config.DefaultCABundle,
		},
		Paths: paths,
	}
}

func writeNvmScript(t *testing.T, p config.Paths) {
	t.Helper()
	if err := os.MkdirAll(p.NvmDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(p.NvmDir, "nvm.sh"), []byte("# nvm"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureNVM_AlreadyInstalled(t *testing.T) {
	r := &fakeRunner{}
	in := newInstaller(t, r)
	writeNvmScript(t, in.Paths)

	if err := in.EnsureNVM(); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 0 {
		t.Errorf("no commands should run when nvm.sh exists, got %v", r.calls)
	}
}

func TestEnsureNVM_BootstrapVerifiedByScriptPresence(t *testing.T) {
	var in Installer
	r := &fakeRunner{rules: []rule{
		// Bootstrap claims success only via its side effect on disk.
		{match: "install.sh", ok: true, effect: func() { writeNvmScript(t, in.Paths) }},
	}}
	in = newInstaller(t, r)

	if err := in.EnsureNVM(); err != nil {
		t.Fatal(err)
	}
	if r.callsMatching(nvmRelease) != 1 {
		t.Errorf("bootstrap must be pinned to %s, calls: %v", nvmRelease, r.calls)
	}
}

func TestEnsureNVM_ExitCodeNotTrusted(t *testing.T) {
	// Bootstrap exits 0 but never produces nvm.sh.
	r := &fakeRunner{rules: []rule{{match: "install.sh", ok: true}}}
	in := newInstaller(t, r)

	if err := in.EnsureNVM(); err == nil {
		t.Fatal("missing nvm.sh after bootstrap must fail")
	}
}

func TestEnsureNode_SatisfiedIsNoOp(t *testing.T) {
	r := &fakeRunner{rules: []rule{
		{match: "node --version", out: "v22.4.0", ok: true},
	}}
	in := newInstaller(t, r)

	if err := in.EnsureNode(); err != nil {
		t.Fatal(err)
	}
	if r.callsMatching("nvm install") != 0 {
		t.Error("satisfying node must not be reinstalled")
	}
}

func TestEnsureNode_ForceReinstalls(t *testing.T) {
	r := &fakeRunner{rules: []rule{
		{match: "nvm install", out: "v22.4.0", ok: true},
		{match: "node --version", out: "v22.4.0", ok: true},
	}}
	in := newInstaller(t, r)
	in.Cfg.Force = true
	writeNvmScript(t, in.Paths)

	if err := in.EnsureNode(); err != nil {
		t.Fatal(err)
	}
	if r.callsMatching("nvm install "+in.Cfg.NodeVersion) != 1 {
		t.Errorf("expected one nvm install call, calls: %v", r.calls)
	}
}

func TestEnsureNode_VerifiedByReprobe(t *testing.T) {
	// nvm install "succeeds" but the re-probe still sees nothing.
	r := &fakeRunner{rules: []rule{
		{match: "nvm install", ok: true},
	}}
	in := newInstaller(t, r)
	writeNvmScript(t, in.Paths)

	err := in.EnsureNode()
	if err == nil {
		t.Fatal("unverified node install must fail")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error should carry the probe verdict, got %v", err)
	}
}

func TestEnsureClaude_AlreadyInstalled(t *testing.T) {
	r := &fakeRunner{rules: []rule{
		{match: "command -v claude", out: "/usr/local/bin/claude", ok: true},
		{match: "--version", out: "2.0.1", ok: true},
	}}
	in := newInstaller(t, r)

	if err := in.EnsureClaude(); err != nil {
		t.Fatal(err)
	}
	if r.callsMatching("npm install") != 0 {
		t.Error("installed claude must not be reinstalled")
	}
}

func TestEnsureClaude_PrefixedInstall(t *testing.T) {
	r := &fakeRunner{rules: []rule{
		{match: "npm config set prefix", ok: true},
	}}
	in := newInstaller(t, r)
	in.Cfg.Force = true

	if err := in.EnsureClaude(); err != nil {
		t.Fatal(err)
	}

	// The global prefix tree is prepared up front.
	for _, sub := range []string{"bin", "lib", "share"} {
		if _, err := os.Stat(filepath.Join(in.Paths.NpmGlobalDir, sub)); err != nil {
			t.Errorf("missing %s under npm global dir", sub)
		}
	}
	if r.callsMatching("npm install -g "+Package) != 1 {
		t.Errorf("expected one install attempt, calls: %v", r.calls)
	}
}

func TestEnsureClaude_FallbackWithoutPrefix(t *testing.T) {
	prefixed := 0
	r := &fakeRunner{}
	r.rules = []rule{
		{match: "npm config set prefix", ok: false, effect: func() { prefixed++ }},
		{match: "npm install", ok: true},
	}
	in := newInstaller(t, r)
	in.Cfg.Force = true

	if err := in.EnsureClaude(); err != nil {
		t.Fatal(err)
	}
	if prefixed != 1 {
		t.Errorf("expected one prefixed attempt, got %d", prefixed)
	}
	if len(r.calls) < 3 {
		// probe, prefixed attempt, fallback attempt
		t.Errorf("expected a fallback attempt, calls: %v", r.calls)
	}
}

func TestEnsureClaude_BothAttemptsFailing(t *testing.T) {
	r := &fakeRunner{}
	in := newInstaller(t, r)
	in.Cfg.Force = true

	err := in.EnsureClaude()
	if err == nil {
		t.Fatal("double install failure must be a hard error")
	}
	if !strings.Contains(err.Error(), Package) {
		t.Errorf("error should name the package, got %v", err)
	}
}

func TestEnsureClaude_ProxyConfiguredWhenSet(t *testing.T) {
	r := &fakeRunner{rules: []rule{{match: "npm", ok: true}}}
	in := newInstaller(t, r)
	in.Cfg.Force = true
	in.Cfg.Proxy = "http://proxy:8080"

	if err := in.EnsureClaude(); err != nil {
		t.Fatal(err)
	}
	if r.callsMatching("npm config set proxy http://proxy:8080") != 1 {
		t.Errorf("proxy should be configured, calls: %v", r.calls)
	}

	// Suppressed proxy must not leak into the install script.
	r2 := &fakeRunner{rules: []rule{{match: "npm", ok: true}}}
	in2 := newInstaller(t, r2)
	in2.Cfg.Force = true
	in2.Cfg.Proxy = "http://proxy:8080"
	in2.Cfg.SkipProxy = true

	if err := in2.EnsureClaude(); err != nil {
		t.Fatal(err)
	}
	if r2.callsMatching("npm config set proxy") != 0 {
		t.Errorf("suppressed proxy must not be configured, calls: %v", r2.calls)
	}
}

func TestUninstallClaude_TriesBothLocationsAndSwallowsFailures(t *testing.T) {
	r := &fakeRunner{} // every command fails
	in := newInstaller(t, r)

	in.UninstallClaude() // must not panic or error

	if r.callsMatching("npm uninstall -g "+Package) != 2 {
		t.Errorf("expected two uninstall attempts, calls: %v", r.calls)
	}
}

func TestRemoveRuntime(t *testing.T) {
	in := newInstaller(t, &fakeRunner{})
	writeNvmScript(t, in.Paths)
	if err := os.MkdirAll(filepath.Join(in.Paths.NpmGlobalDir, "bin"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := in.RemoveRuntime(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(in.Paths.NvmDir); !os.IsNotExist(err) {
		t.Error("nvm dir should be gone")
	}
	if _, err := os.Stat(in.Paths.NpmGlobalDir); !os.IsNotExist(err) {
		t.Error("npm global dir should be gone")
	}
}

func TestRemoveRuntime_NothingToRemove(t *testing.T) {
	in := newInstaller(t, &fakeRunner{})
	if err := in.RemoveRuntime(); err != nil {
		t.Fatal(err)
	}
}

// funcRunner answers from a closure, letting a test model machine
// state that changes as "installers" run.
type funcRunner func(line string) (string, bool)

func (f funcRunner) Run(name string, args ...string) (string, bool) {
	return f(name + " " + strings.Join(args, " "))
}

// Fresh-machine scenario: nothing installed, every step runs in order
// and verifies through its probe.
func TestFreshInstallSequence(t *testing.T) {
	paths := config.PathsIn(t.TempDir())
	nodeInstalled := false
	var calls []string

	r := funcRunner(func(line string) (string, bool) {
		calls = append(calls, line)
		switch {
		case strings.Contains(line, "install.sh"):
			if err := os.MkdirAll(paths.NvmDir, 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(paths.NvmDir, "nvm.sh"), []byte("# nvm"), 0o644); err != nil {
				t.Fatal(err)
			}
			return "", true
		case strings.Contains(line, "nvm install"):
			nodeInstalled = true
			return "", true
		case strings.Contains(line, "node --version"):
			if nodeInstalled {
				return "v22.4.0", true
			}
			return "", false
		case strings.Contains(line, "command -v claude"):
			return "", false
		case strings.Contains(line, "npm install -g"):
			return "", true
		default:
			return "", false
		}
	})

	in := Installer{
		Runner: r,
		Cfg: config.Install{
			TokenKind:   config.TokenAnthropic,
			Token:       "sk-ant-test",
			NodeVersion: config.DefaultNodeVersion,
			CABundle:    config.DefaultCABundle,
		},
		Paths: paths,
	}

	if err := in.EnsureNVM(); err != nil {
		t.Fatalf("nvm step: %v", err)
	}
	if err := in.EnsureNode(); err != nil {
		t.Fatalf("node step: %v", err)
	}
	if err := in.EnsureClaude(); err != nil {
		t.Fatalf("claude step: %v", err)
	}

	// The provisioning commands must have run in dependency order.
	order := []string{"install.sh", "nvm install", "npm install -g"}
	last := -1
	for _, want := range order {
		found := -1
		for i, c := range calls {
			if strings.Contains(c, want) {
				found = i
				break
			}
		}
		if found < 0 {
			t.Fatalf("no call matching %q in %v", want, calls)
		}
		if found < last {
			t.Errorf("%q ran out of order", want)
		}
		last = found
	}
}
