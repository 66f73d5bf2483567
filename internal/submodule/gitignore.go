package submodule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ignoreEntries are the lines the submodule variant maintains in the host
// project's .gitignore: the link tree is machine-generated and should not be
// committed, while the submodule itself is tracked by git directly.
var ignoreEntries = []string{
	".kiro/",
	".husky",
}

// AddIgnoreEntries appends the managed ignore lines to .gitignore.
// Lines already present are not duplicated.
func AddIgnoreEntries(repoRoot string) error {
	gitignorePath := filepath.Join(repoRoot, ".gitignore")

	content, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading .gitignore: %w", err)
	}

	existing := make(map[string]bool)
	for _, l := range strings.Split(string(content), "\n") {
		existing[strings.TrimSpace(l)] = true
	}

	var missing []string
	for _, entry := range ignoreEntries {
		if !existing[entry] {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	suffix := strings.Join(missing, "\n") + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening .gitignore for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return fmt.Errorf("writing to .gitignore: %w", err)
	}
	return nil
}

// RemoveIgnoreEntries removes the managed ignore lines from .gitignore.
// A missing file or absent lines are a no-op.
func RemoveIgnoreEntries(repoRoot string) error {
	gitignorePath := filepath.Join(repoRoot, ".gitignore")

	content, err := os.ReadFile(gitignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading .gitignore: %w", err)
	}

	managed := make(map[string]bool, len(ignoreEntries))
	for _, entry := range ignoreEntries {
		managed[entry] = true
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	found := false
	for _, l := range lines {
		if managed[strings.TrimSpace(l)] {
			found = true
			continue
		}
		result = append(result, l)
	}

	if !found {
		return nil
	}

	output := strings.Join(result, "\n")
	if err := os.WriteFile(gitignorePath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}
