package farm

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRemoveTearsDownManagedTree(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("native symlinks required")
	}
	kiroDir, dest := applyFresh(t)

	plan, err := BuildPlan(kiroDir, dest, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Apply(plan, PolicyOverwrite, nil, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	// Simulate the generated language file.
	generated := filepath.Join(dest, "steering", "deployment-workflow.md")
	if err := os.WriteFile(generated, []byte("- **Agent chat**: Japanese"), 0644); err != nil {
		t.Fatal(err)
	}

	res := Remove(dest, nil, &bytes.Buffer{})
	if res.Failed != 0 {
		t.Errorf("Failed = %d, want 0", res.Failed)
	}
	if res.Removed != 5 {
		t.Errorf("Removed = %d, want 5 (4 links + 1 generated)", res.Removed)
	}

	// All managed section directories are pruned.
	for _, section := range []string{"hooks", "settings", "steering", "scripts"} {
		if _, err := os.Stat(filepath.Join(dest, section)); !os.IsNotExist(err) {
			t.Errorf("section %s still exists after Remove", section)
		}
	}
}

func TestRemoveLeavesUserFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("native symlinks required")
	}
	kiroDir, dest := applyFresh(t)

	plan, err := BuildPlan(kiroDir, dest, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Apply(plan, PolicyOverwrite, nil, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	// A file the user dropped into a managed directory.
	userFile := filepath.Join(dest, "steering", "my-own-notes.md")
	if err := os.WriteFile(userFile, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	Remove(dest, nil, &bytes.Buffer{})

	data, err := os.ReadFile(userFile)
	if err != nil {
		t.Fatalf("user file was removed: %v", err)
	}
	if string(data) != "mine" {
		t.Errorf("user file was modified: %q", string(data))
	}

	// The directory holding it is not pruned.
	if _, err := os.Stat(filepath.Join(dest, "steering")); err != nil {
		t.Errorf("non-empty section directory was pruned: %v", err)
	}
}

func TestRemoveEmptyTree(t *testing.T) {
	res := Remove(t.TempDir(), nil, &bytes.Buffer{})
	if res.Removed != 0 || res.Failed != 0 {
		t.Errorf("expected no-op on empty tree, got %+v", res)
	}
}

func TestRemoveExtraLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("native symlinks required")
	}
	tmp := t.TempDir()

	target := filepath.Join(tmp, "template-workflow.yml")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, ".github", "workflows", "kiro-checks.yml")
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	if err := RemoveExtraLink(link); err != nil {
		t.Fatalf("RemoveExtraLink failed: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Error("extra link still exists")
	}
	// Empty parent directories are pruned.
	if _, err := os.Stat(filepath.Join(tmp, ".github")); !os.IsNotExist(err) {
		t.Error("empty .github directory was not pruned")
	}
}

func TestRemoveExtraLinkIgnoresRegularFiles(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, ".husky")
	if err := os.WriteFile(file, []byte("user data"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveExtraLink(file); err != nil {
		t.Fatalf("RemoveExtraLink failed: %v", err)
	}
	if _, err := os.Stat(file); err != nil {
		t.Error("regular file was removed")
	}
}
