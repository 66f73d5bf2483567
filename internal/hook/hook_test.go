package hook

import (
	"os"
	"path/filepath"
	"testing"
)

const validHook = `{
  "enabled": true,
  "name": "run-tests",
  "description": "Run the test suite after source edits",
  "version": "1",
  "when": {
    "type": "fileEdited",
    "patterns": ["src/**/*.ts"]
  },
  "then": {
    "type": "askAgent",
    "prompt": "Run make test and summarize failures."
  }
}`

func TestParse(t *testing.T) {
	h, err := Parse([]byte(validHook))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if h.Name != "run-tests" {
		t.Errorf("Name = %q, want run-tests", h.Name)
	}
	if h.When.Type != "fileEdited" {
		t.Errorf("When.Type = %q, want fileEdited", h.When.Type)
	}
	if len(h.When.Patterns) != 1 || h.When.Patterns[0] != "src/**/*.ts" {
		t.Errorf("Patterns = %v", h.When.Patterns)
	}
	if h.Then.Type != "askAgent" {
		t.Errorf("Then.Type = %q, want askAgent", h.Then.Type)
	}
}

func TestParseUnknownField(t *testing.T) {
	bad := `{"name":"x","version":"1","when":{"type":"fileEdited","pattern":["a"]},"then":{"type":"askAgent"}}`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Error("expected error for unknown field \"pattern\"")
	}
}

func TestParseFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "run-tests.kiro.hook")
	if err := os.WriteFile(path, []byte(validHook), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if h.Name != "run-tests" {
		t.Errorf("Name = %q", h.Name)
	}

	if _, err := ParseFile(filepath.Join(tmp, "missing.kiro.hook")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestList(t *testing.T) {
	tmp := t.TempDir()

	for _, name := range []string{"b-security.kiro.hook", "a-tests.kiro.hook", "README.md", "notes.json"} {
		if err := os.WriteFile(filepath.Join(tmp, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := List(tmp)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 hook files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a-tests.kiro.hook" {
		t.Errorf("expected sorted order, got %v", files)
	}
}

func TestListMissingDir(t *testing.T) {
	files, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty list, got %v", files)
	}
}
