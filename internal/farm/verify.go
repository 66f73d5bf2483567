package farm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/platform"
	"github.com/giro-dev/giro/internal/template"
)

// Verify checks the installed tree's invariants and reports in doctor
// format. When fix is true it repairs what it safely can: missing and stale
// links are (re)created, scripts are re-marked executable. Conflicts are
// reported but never auto-overwritten by the doctor.
func Verify(w io.Writer, destRoot, checkout string, m *Manifest, fix bool) error {
	fmt.Fprintln(w, "Installed tree check:")

	if !template.Exists(checkout) {
		fmt.Fprintf(w, "  [MISS] template checkout %s does not exist\n", checkout)
		fmt.Fprintln(w, "         Run 'giro install' to create it")
		return nil
	}
	fmt.Fprintf(w, "  [ OK ] template checkout %s\n", checkout)

	if template.IsStale(checkout, template.DefaultMaxAge) {
		fmt.Fprintln(w, "  [WARN] template is more than 7 days old; run 'giro update'")
	}

	plan, err := BuildPlan(kiropaths.TemplateKiroDir(checkout), destRoot, m)
	if err != nil {
		return err
	}

	linked := 0
	for _, e := range plan.Entries {
		switch e.State {
		case StateLinked:
			linked++
		case StateMissing:
			if fix {
				if err := os.MkdirAll(filepath.Dir(e.Dest), kiropaths.DirPermNormal); err == nil {
					if err := platform.CreateSymlink(e.Source, e.Dest); err == nil {
						fmt.Fprintf(w, "  [FIX ] linked %s\n", e.Rel())
						continue
					}
				}
				fmt.Fprintf(w, "  [FAIL] could not link %s\n", e.Rel())
				continue
			}
			fmt.Fprintf(w, "  [MISS] %s is not linked\n", e.Rel())
		case StateStale:
			if fix {
				if platform.RemoveSymlink(e.Dest) == nil && platform.CreateSymlink(e.Source, e.Dest) == nil {
					fmt.Fprintf(w, "  [FIX ] relinked %s\n", e.Rel())
					continue
				}
				fmt.Fprintf(w, "  [FAIL] could not relink %s\n", e.Rel())
				continue
			}
			fmt.Fprintf(w, "  [WARN] %s links outside the template\n", e.Rel())
		case StateConflict:
			fmt.Fprintf(w, "  [WARN] %s is a regular file, not a link (run 'giro install' to resolve)\n", e.Rel())
		}
	}
	fmt.Fprintf(w, "  [ OK ] %d of %d managed files linked\n", linked, len(plan.Entries))

	// Scripts must be executable.
	for _, e := range plan.Entries {
		if e.Section != kiropaths.ScriptsDir || e.State != StateLinked {
			continue
		}
		info, err := os.Stat(e.Dest)
		if err != nil {
			continue
		}
		if info.Mode().Perm()&0111 == 0 {
			if fix {
				if platform.MakeExecutable(e.Dest) == nil {
					fmt.Fprintf(w, "  [FIX ] marked %s executable\n", e.Rel())
					continue
				}
			}
			fmt.Fprintf(w, "  [WARN] %s is not executable\n", e.Rel())
		}
	}

	// Generated files: present and NOT symlinks (local edits must survive).
	for _, rel := range plan.Generated {
		path := filepath.Join(destRoot, filepath.FromSlash(rel))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintf(w, "  [MISS] generated file %s does not exist\n", rel)
			continue
		}
		if platform.IsSymlink(path) {
			fmt.Fprintf(w, "  [WARN] generated file %s is a symlink; reinstall to regenerate\n", rel)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] generated file %s\n", rel)
	}

	return nil
}
