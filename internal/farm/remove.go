package farm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/giro-dev/giro/internal/platform"
)

// RemoveResult summarizes a Remove run.
type RemoveResult struct {
	Removed int
	Failed  int
}

// Remove tears down the managed tree under destRoot: every symlink inside a
// managed section, every generated file, then any section directory left
// empty. It is a best-effort cleanup: individual failures are reported to w
// and counted, never fatal. Regular files the user placed inside managed
// directories are left alone.
func Remove(destRoot string, m *Manifest, w io.Writer) *RemoveResult {
	if m == nil {
		m = DefaultManifest()
	}
	res := &RemoveResult{}

	for _, section := range m.Sections {
		dir := filepath.Join(destRoot, section)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // nothing installed here
		}

		for _, de := range entries {
			path := filepath.Join(dir, de.Name())
			rel := section + "/" + de.Name()

			switch {
			case platform.IsSymlink(path):
				if err := platform.RemoveSymlink(path); err != nil {
					fmt.Fprintf(w, "  ⚠️  could not remove %s: %v\n", rel, err)
					res.Failed++
					continue
				}
			case m.IsGenerated(rel):
				if err := os.Remove(path); err != nil {
					fmt.Fprintf(w, "  ⚠️  could not remove %s: %v\n", rel, err)
					res.Failed++
					continue
				}
			default:
				continue // not ours
			}
			fmt.Fprintf(w, "  ✓ removed %s\n", rel)
			res.Removed++
		}

		// Prune the section directory if nothing is left in it.
		if remaining, err := os.ReadDir(dir); err == nil && len(remaining) == 0 {
			_ = os.Remove(dir)
		}
	}

	return res
}

// RemoveExtraLink removes a single managed link outside the section tree
// (the submodule variant's .husky and workflow links). Best-effort: a
// missing path or a non-symlink is not an error.
func RemoveExtraLink(path string) error {
	if !platform.IsSymlink(path) {
		return nil
	}
	if err := platform.RemoveSymlink(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	// Prune an empty .github/workflows-style parent chain, stopping at the
	// first non-empty directory.
	dir := filepath.Dir(path)
	for strings.Contains(dir, string(os.PathSeparator)) {
		if entries, err := os.ReadDir(dir); err != nil || len(entries) > 0 {
			break
		}
		if err := os.Remove(dir); err != nil {
			break
		}
		dir = filepath.Dir(dir)
	}
	return nil
}
