package hook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateValid(t *testing.T) {
	res, err := Validate([]byte(validHook))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !res.Valid {
		t.Errorf("valid hook rejected: %+v", res.Issues)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	res, err := Validate([]byte(`{"name":"x","version":"1","when":{"type":"fileEdited"}}`))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if res.Valid {
		t.Fatal("hook without \"then\" accepted")
	}
	if len(res.Issues) == 0 {
		t.Fatal("no issues reported")
	}
}

func TestValidateBadTriggerType(t *testing.T) {
	bad := `{"name":"x","version":"1","when":{"type":"onSave"},"then":{"type":"askAgent"}}`
	res, err := Validate([]byte(bad))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if res.Valid {
		t.Fatal("unknown trigger type accepted")
	}

	found := false
	for _, issue := range res.Issues {
		if strings.HasPrefix(issue.Path, "/when") {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue located under /when: %+v", res.Issues)
	}
}

func TestValidateBadVersion(t *testing.T) {
	bad := `{"name":"x","version":"v1","when":{"type":"fileEdited"},"then":{"type":"askAgent"}}`
	res, err := Validate([]byte(bad))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if res.Valid {
		t.Error("non-numeric version accepted")
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	if _, err := Validate([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestValidateDir(t *testing.T) {
	tmp := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmp, "good.kiro.hook"), []byte(validHook), 0644); err != nil {
		t.Fatal(err)
	}
	bad := `{"version":"1","when":{"type":"fileEdited"},"then":{"type":"askAgent"}}`
	if err := os.WriteFile(filepath.Join(tmp, "bad.kiro.hook"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	results, err := ValidateDir(tmp)
	if err != nil {
		t.Fatalf("ValidateDir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Sorted by name: bad.kiro.hook first.
	if results[0].Err != nil || results[0].Result.Valid {
		t.Errorf("bad hook should fail schema validation: %+v", results[0])
	}
	if results[1].Err != nil || !results[1].Result.Valid {
		t.Errorf("good hook should pass: %+v", results[1])
	}
}

func TestValidateDirMissing(t *testing.T) {
	results, err := ValidateDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ValidateDir on missing dir: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
