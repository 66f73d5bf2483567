// Package syncback copies curated project directories back into a local
// checkout of the template repository so improvements made in a working
// project can be contributed upstream. The copy is one-directional and
// best-effort: there is no merge logic, the project side always wins, and
// the operator reviews the resulting git status before committing.
package syncback

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// allowedPaths are the only paths synced into the template checkout,
// relative to both the project root and the destination repository.
var allowedPaths = []string{
	".kiro/hooks",
	".kiro/settings",
	".kiro/steering",
	".kiro/scripts",
	".husky",
	"examples",
}

// excludedNames are skipped at every level of the copy.
var excludedNames = map[string]bool{
	".git":         true,
	"node_modules": true,
	".DS_Store":    true,
}

// Result summarizes one sync run.
type Result struct {
	Copied  []string // allow-listed paths that were copied
	Skipped []string // allow-listed paths absent from the project
	Status  string   // git status --short of the destination, trimmed
}

// Run copies the allow-listed paths from projectDir into targetRepo and
// returns the destination's short git status. targetRepo must be an
// existing git repository. Individual copy failures are tolerated.
func Run(projectDir, targetRepo string) (*Result, error) {
	info, err := os.Stat(targetRepo)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("target %s does not exist", targetRepo)
	}
	if _, err := os.Stat(filepath.Join(targetRepo, ".git")); err != nil {
		return nil, fmt.Errorf("target %s is not a git repository", targetRepo)
	}

	res := &Result{}
	for _, rel := range allowedPaths {
		src := filepath.Join(projectDir, filepath.FromSlash(rel))
		if _, err := os.Stat(src); err != nil {
			res.Skipped = append(res.Skipped, rel)
			continue
		}

		dst := filepath.Join(targetRepo, filepath.FromSlash(rel))
		if err := copyTree(src, dst); err != nil {
			// Best-effort: a failed path is reported as skipped, the
			// remaining paths still sync.
			res.Skipped = append(res.Skipped, rel)
			continue
		}
		res.Copied = append(res.Copied, rel)
	}

	status, err := gitStatus(targetRepo)
	if err != nil {
		return res, err
	}
	res.Status = status
	return res, nil
}

// gitStatus returns the short status of the repository at dir.
func gitStatus(dir string) (string, error) {
	cmd := exec.Command("git", "status", "--short")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git status failed: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	return strings.TrimSpace(string(output)), nil
}

// copyTree recursively copies src to dst. Symlinks are followed so that a
// linked project tree syncs its real content, not the links. Entries in
// excludedNames are skipped. Later copies overwrite earlier destination
// content.
func copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return copyFile(src, dst, info.Mode())
	}

	if err := os.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		// Stat follows symlinks; a dangling link is skipped.
		entryInfo, err := os.Stat(srcPath)
		if err != nil {
			continue
		}

		if entryInfo.IsDir() {
			if err := copyTree(srcPath, dstPath); err != nil {
				return err
			}
		} else if entryInfo.Mode().IsRegular() {
			if err := copyFile(srcPath, dstPath, entryInfo.Mode()); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
