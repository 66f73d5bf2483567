package syncback

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// initGitRepo creates a minimal git repository, skipping the test when the
// git binary is unavailable.
func initGitRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, out)
	}
	return dir
}

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunCopiesAllowedPaths(t *testing.T) {
	project := t.TempDir()
	target := initGitRepo(t)

	writeProjectFile(t, project, ".kiro/hooks/run-tests.kiro.hook", `{"name":"t"}`)
	writeProjectFile(t, project, ".kiro/steering/principles.md", "# principles")
	writeProjectFile(t, project, "examples/demo/main.go", "package main")
	// Not on the allow-list.
	writeProjectFile(t, project, "src/app.go", "package app")

	res, err := Run(project, target)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, rel := range []string{".kiro/hooks/run-tests.kiro.hook", ".kiro/steering/principles.md", "examples/demo/main.go"} {
		if _, err := os.Stat(filepath.Join(target, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s not copied: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(target, "src")); !os.IsNotExist(err) {
		t.Error("path outside the allow-list was copied")
	}

	if len(res.Copied) != 3 {
		t.Errorf("Copied = %v", res.Copied)
	}
	if !strings.Contains(res.Status, ".kiro/") {
		t.Errorf("git status does not show synced files:\n%s", res.Status)
	}
}

func TestRunSkipsMissingPaths(t *testing.T) {
	project := t.TempDir()
	target := initGitRepo(t)

	res, err := Run(project, target)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Copied) != 0 {
		t.Errorf("Copied = %v, want none", res.Copied)
	}
	if len(res.Skipped) != len(allowedPaths) {
		t.Errorf("Skipped = %v", res.Skipped)
	}
}

func TestRunOverwritesDestination(t *testing.T) {
	project := t.TempDir()
	target := initGitRepo(t)

	writeProjectFile(t, project, ".kiro/settings/mcp.json", `{"new":true}`)
	writeProjectFile(t, target, ".kiro/settings/mcp.json", `{"old":true}`)

	if _, err := Run(project, target); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(target, ".kiro", "settings", "mcp.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"new":true}` {
		t.Errorf("destination not overwritten: %s", data)
	}
}

func TestRunFollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("native symlinks required")
	}
	project := t.TempDir()
	target := initGitRepo(t)

	// A linked .kiro tree, as the installer lays it out.
	canonical := filepath.Join(project, "canonical", "steering", "principles.md")
	writeProjectFile(t, project, "canonical/steering/principles.md", "# linked content")
	linkDir := filepath.Join(project, ".kiro", "steering")
	if err := os.MkdirAll(linkDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(canonical, filepath.Join(linkDir, "principles.md")); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(project, target); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	dst := filepath.Join(target, ".kiro", "steering", "principles.md")
	info, err := os.Lstat(dst)
	if err != nil {
		t.Fatalf("linked file not synced: %v", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Error("destination is a symlink, want a regular file")
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "# linked content" {
		t.Errorf("content = %q", data)
	}
}

func TestRunExcludesJunk(t *testing.T) {
	project := t.TempDir()
	target := initGitRepo(t)

	writeProjectFile(t, project, "examples/app/index.js", "ok")
	writeProjectFile(t, project, "examples/app/node_modules/dep/index.js", "junk")
	writeProjectFile(t, project, "examples/.DS_Store", "junk")

	if _, err := Run(project, target); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(target, "examples", "app", "node_modules")); !os.IsNotExist(err) {
		t.Error("node_modules copied")
	}
	if _, err := os.Stat(filepath.Join(target, "examples", ".DS_Store")); !os.IsNotExist(err) {
		t.Error(".DS_Store copied")
	}
	if _, err := os.Stat(filepath.Join(target, "examples", "app", "index.js")); err != nil {
		t.Errorf("real file missing: %v", err)
	}
}

func TestRunRejectsNonRepo(t *testing.T) {
	project := t.TempDir()

	if _, err := Run(project, filepath.Join(project, "nope")); err == nil {
		t.Error("missing target accepted")
	}
	if _, err := Run(project, t.TempDir()); err == nil {
		t.Error("non-repo target accepted")
	}
}
