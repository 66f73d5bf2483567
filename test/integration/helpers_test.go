//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// testEnv holds the sandboxed directories one test runs against.
type testEnv struct {
	HomeRoot   string // KIRO_HOME — the installed tree
	Checkout   string // KIRO_TEMPLATE — the template clone location
	UpstreamID string // path of the bare-ish upstream repo the clone tracks
	ProjectDir string // a mock working project
}

// setupTestEnv sandboxes every path the tool touches via environment
// variables, so nothing leaks into the real home directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeRoot:   filepath.Join(t.TempDir(), ".kiro"),
		ProjectDir: t.TempDir(),
	}
	env.Checkout = filepath.Join(env.HomeRoot, "kiro-best-practices")
	env.UpstreamID = setupUpstreamTemplate(t)

	t.Setenv("KIRO_HOME", env.HomeRoot)
	t.Setenv("KIRO_TEMPLATE", env.Checkout)
	t.Setenv("KIRO_TEMPLATE_REPO_URL", env.UpstreamID)

	// Keep ambient language and policy settings out of the sandbox.
	for _, v := range []string{"KIRO_LANG", "KIRO_CHAT_LANG", "KIRO_DOC_LANG", "KIRO_COMMENT_LANG",
		"OVERWRITE", "SKIP", "KIRO_OVERWRITE", "KIRO_SKIP", "KIRO_BRANCH"} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	return env
}

// setupUpstreamTemplate builds a local git repository shaped like the
// best-practices template and returns its path, usable as a clone URL.
func setupUpstreamTemplate(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, ".kiro", "hooks", "run-tests.kiro.hook"), `{
  "enabled": true,
  "name": "Run tests on save",
  "version": "1.0",
  "when": {"type": "fileEdited", "patterns": ["**/*.go"]},
  "then": {"type": "askAgent", "prompt": "Run the test suite and report failures."}
}
`)
	writeFile(t, filepath.Join(dir, ".kiro", "settings", "mcp.json"), `{"mcpServers": {}}`+"\n")
	writeFile(t, filepath.Join(dir, ".kiro", "steering", "principles.md"), "# Principles\n\nKeep changes small.\n")
	writeFile(t, filepath.Join(dir, ".kiro", "scripts", "security-check.sh"), "#!/bin/sh\nexit 0\n")
	writeFile(t, filepath.Join(dir, "templates", "deployment-workflow.md"),
		"# Deployment Workflow\n\n- **Agent chat**: {{CHAT_LANG}}\n- **Documentation**: {{DOC_LANG}}\n- **Code comments**: {{COMMENT_LANG}}\n")
	writeFile(t, filepath.Join(dir, ".husky", "pre-commit"), "#!/bin/sh\nexit 0\n")

	git(t, dir, "init", "-q", "-b", "main")
	git(t, dir, "config", "user.email", "test@example.com")
	git(t, dir, "config", "user.name", "test")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "template content")

	return dir
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertSymlink(t *testing.T, path string) {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		t.Fatalf("expected symlink at %s: %v", path, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("%s is not a symlink", path)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be gone (err=%v)", path, err)
	}
}
