package submodule

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readGitignore(t *testing.T, repoRoot string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(repoRoot, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestAddIgnoreEntriesCreatesFile(t *testing.T) {
	tmp := t.TempDir()

	if err := AddIgnoreEntries(tmp); err != nil {
		t.Fatalf("AddIgnoreEntries failed: %v", err)
	}

	content := readGitignore(t, tmp)
	if !strings.Contains(content, ".kiro/\n") {
		t.Errorf(".kiro/ entry missing:\n%s", content)
	}
	if !strings.Contains(content, ".husky\n") {
		t.Errorf(".husky entry missing:\n%s", content)
	}
}

func TestAddIgnoreEntriesIdempotent(t *testing.T) {
	tmp := t.TempDir()

	if err := AddIgnoreEntries(tmp); err != nil {
		t.Fatal(err)
	}
	first := readGitignore(t, tmp)

	if err := AddIgnoreEntries(tmp); err != nil {
		t.Fatal(err)
	}
	if got := readGitignore(t, tmp); got != first {
		t.Errorf("second call changed .gitignore:\n%q\nvs\n%q", first, got)
	}
}

func TestAddIgnoreEntriesAppendsWithNewline(t *testing.T) {
	tmp := t.TempDir()
	// Existing content without trailing newline.
	if err := os.WriteFile(filepath.Join(tmp, ".gitignore"), []byte("node_modules"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := AddIgnoreEntries(tmp); err != nil {
		t.Fatal(err)
	}

	content := readGitignore(t, tmp)
	if !strings.Contains(content, "node_modules\n.kiro/") {
		t.Errorf("existing line corrupted:\n%s", content)
	}
}

func TestRemoveIgnoreEntries(t *testing.T) {
	tmp := t.TempDir()
	initial := "node_modules\n.kiro/\ndist\n.husky\n"
	if err := os.WriteFile(filepath.Join(tmp, ".gitignore"), []byte(initial), 0644); err != nil {
		t.Fatal(err)
	}

	if err := RemoveIgnoreEntries(tmp); err != nil {
		t.Fatalf("RemoveIgnoreEntries failed: %v", err)
	}

	content := readGitignore(t, tmp)
	if strings.Contains(content, ".kiro/") || strings.Contains(content, ".husky") {
		t.Errorf("managed entries not removed:\n%s", content)
	}
	if !strings.Contains(content, "node_modules") || !strings.Contains(content, "dist") {
		t.Errorf("user entries lost:\n%s", content)
	}
}

func TestRemoveIgnoreEntriesMissingFile(t *testing.T) {
	if err := RemoveIgnoreEntries(t.TempDir()); err != nil {
		t.Errorf("missing .gitignore should be a no-op, got %v", err)
	}
}
