// Package submodule implements the project-level installation variant: the
// template repository is vendored as a git submodule at .kiro-template
// inside the working repository, and the project's .kiro tree links into it.
package submodule

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/giro-dev/giro/internal/farm"
	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/platform"
)

// RepoRoot returns the top-level directory of the git repository containing
// dir. It errors when dir is not inside a work tree, which is the submodule
// variant's precondition.
func RepoRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Path returns the submodule checkout path inside repoRoot.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, kiropaths.SubmoduleDir)
}

// Add vendors the template repository as a submodule at .kiro-template and
// records the ignore entries for the link tree.
func Add(repoRoot, gitURL, branch string) error {
	if _, err := os.Stat(Path(repoRoot)); err == nil {
		return fmt.Errorf("%s already exists; run 'giro submodule update' instead", kiropaths.SubmoduleDir)
	}

	cmd := exec.Command("git", "submodule", "add", "-b", branch, gitURL, kiropaths.SubmoduleDir)
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git submodule add failed: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	if err := AddIgnoreEntries(repoRoot); err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	return nil
}

// Update pulls the submodule to its tracked branch tip.
func Update(repoRoot string) error {
	if _, err := os.Stat(Path(repoRoot)); os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist; run 'giro submodule install' first", kiropaths.SubmoduleDir)
	}

	cmd := exec.Command("git", "submodule", "update", "--init", "--remote", "--merge", kiropaths.SubmoduleDir)
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git submodule update failed: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Remove deinitializes and deletes the submodule: deinit -f, git rm -f,
// then the leftover .git/modules entry.
func Remove(repoRoot string) error {
	cmd := exec.Command("git", "submodule", "deinit", "-f", kiropaths.SubmoduleDir)
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git submodule deinit failed: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	cmd = exec.Command("git", "rm", "-f", kiropaths.SubmoduleDir)
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git rm failed: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	modulesPath := filepath.Join(repoRoot, ".git", "modules", kiropaths.SubmoduleDir)
	if err := os.RemoveAll(modulesPath); err != nil {
		return fmt.Errorf("cleaning .git/modules: %w", err)
	}

	return RemoveIgnoreEntries(repoRoot)
}

// LinkExtras creates the project-level links outside the .kiro tree: the
// .husky directory and the example CI workflow. Sources absent from the
// template are skipped silently; existing non-symlink destinations are left
// alone and reported back for the caller to surface.
func LinkExtras(repoRoot string) ([]string, error) {
	var kept []string

	extras := []struct {
		rel    string // path relative to repoRoot, also relative to the submodule
		srcRel string
	}{
		{kiropaths.HuskyDir, kiropaths.HuskyDir},
		{kiropaths.WorkflowFile, filepath.FromSlash(kiropaths.WorkflowFile)},
	}

	for _, x := range extras {
		src := filepath.Join(Path(repoRoot), x.srcRel)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}

		dest := filepath.Join(repoRoot, x.rel)
		if _, err := os.Lstat(dest); err == nil {
			if platform.IsSymlink(dest) {
				_ = platform.RemoveSymlink(dest)
			} else {
				kept = append(kept, x.rel)
				continue
			}
		}

		if err := os.MkdirAll(filepath.Dir(dest), kiropaths.DirPermNormal); err != nil {
			return kept, fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}
		if err := platform.CreateSymlink(src, dest); err != nil {
			return kept, fmt.Errorf("linking %s: %w", x.rel, err)
		}
	}

	return kept, nil
}

// UnlinkExtras removes the project-level extra links, best-effort.
func UnlinkExtras(repoRoot string) {
	_ = farm.RemoveExtraLink(filepath.Join(repoRoot, kiropaths.HuskyDir))
	_ = farm.RemoveExtraLink(filepath.Join(repoRoot, filepath.FromSlash(kiropaths.WorkflowFile)))
}
