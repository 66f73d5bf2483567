//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/giro-dev/giro/internal/farm"
)

func TestUninstallRemovesEverythingManaged(t *testing.T) {
	env := setupTestEnv(t)
	installBundle(t, env, farm.PolicyOverwrite)

	manifest, err := farm.LoadManifest(env.Checkout)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	res := farm.Remove(env.HomeRoot, manifest, &buf)
	if res.Failed != 0 {
		t.Fatalf("Remove failed entries: %d\n%s", res.Failed, buf.String())
	}
	// Four links plus the generated steering file.
	if res.Removed != 5 {
		t.Errorf("Removed = %d, want 5\n%s", res.Removed, buf.String())
	}

	if err := os.RemoveAll(env.Checkout); err != nil {
		t.Fatal(err)
	}

	for _, section := range []string{"hooks", "settings", "steering", "scripts"} {
		assertMissing(t, filepath.Join(env.HomeRoot, section))
	}
	assertMissing(t, env.Checkout)
}

func TestUninstallKeepsUserFiles(t *testing.T) {
	env := setupTestEnv(t)
	installBundle(t, env, farm.PolicyOverwrite)

	userFile := filepath.Join(env.HomeRoot, "steering", "my-notes.md")
	writeFile(t, userFile, "keep me")

	manifest, _ := farm.LoadManifest(env.Checkout)
	var buf bytes.Buffer
	farm.Remove(env.HomeRoot, manifest, &buf)

	data, err := os.ReadFile(userFile)
	if err != nil {
		t.Fatalf("user file removed: %v", err)
	}
	if string(data) != "keep me" {
		t.Errorf("user file content = %q", data)
	}
	// The section directory holding it is not pruned.
	if _, err := os.Stat(filepath.Join(env.HomeRoot, "steering")); err != nil {
		t.Errorf("steering dir pruned despite user file: %v", err)
	}
}

func TestUninstallEmptyHomeIsNoop(t *testing.T) {
	env := setupTestEnv(t)

	var buf bytes.Buffer
	res := farm.Remove(env.HomeRoot, farm.DefaultManifest(), &buf)
	if res.Removed != 0 || res.Failed != 0 {
		t.Errorf("Remove on empty home = %+v", res)
	}
}
