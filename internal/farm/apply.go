package farm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/platform"
)

// Decision resolves a single conflicting entry in per-file prompt mode.
// Returning true overwrites the existing file with a link.
type Decision func(e PlannedEntry) (bool, error)

// Result summarizes an Apply run.
type Result struct {
	Linked    int // fresh links created
	Replaced  int // conflicting files or stale links replaced
	Skipped   int // conflicts kept per policy
	Unchanged int // already-correct links
}

// Apply materializes the plan. Already-correct links are left untouched, so
// re-running Apply over an installed tree is a no-op. Conflicts are resolved
// per policy; with PolicyPrompt every conflict goes through decide, which
// must be non-nil in that case.
func Apply(p *Plan, policy Policy, decide Decision, w io.Writer) (*Result, error) {
	res := &Result{}

	for _, e := range p.Entries {
		if err := os.MkdirAll(filepath.Dir(e.Dest), kiropaths.DirPermNormal); err != nil {
			return res, fmt.Errorf("creating %s: %w", filepath.Dir(e.Dest), err)
		}

		switch e.State {
		case StateLinked:
			res.Unchanged++

		case StateMissing:
			if err := link(e.Entry); err != nil {
				return res, err
			}
			fmt.Fprintf(w, "  ✓ linked %s\n", e.Rel())
			res.Linked++

		case StateStale:
			if err := platform.RemoveSymlink(e.Dest); err != nil {
				return res, fmt.Errorf("removing stale link %s: %w", e.Dest, err)
			}
			if err := link(e.Entry); err != nil {
				return res, err
			}
			fmt.Fprintf(w, "  ✓ relinked %s\n", e.Rel())
			res.Replaced++

		case StateConflict:
			overwrite := false
			switch policy {
			case PolicyOverwrite:
				overwrite = true
			case PolicySkip:
				overwrite = false
			case PolicyPrompt:
				if decide == nil {
					return res, fmt.Errorf("conflict at %s with no resolution policy", e.Rel())
				}
				var err error
				overwrite, err = decide(e)
				if err != nil {
					return res, err
				}
			}

			if !overwrite {
				fmt.Fprintf(w, "  - kept existing %s\n", e.Rel())
				res.Skipped++
				continue
			}

			if err := os.RemoveAll(e.Dest); err != nil {
				return res, fmt.Errorf("removing %s: %w", e.Dest, err)
			}
			if err := link(e.Entry); err != nil {
				return res, err
			}
			fmt.Fprintf(w, "  ✓ replaced %s\n", e.Rel())
			res.Replaced++
		}

		// Installed script links must stay executable. Conflicting files
		// kept by a skip never reach this point and stay untouched.
		if e.Section == kiropaths.ScriptsDir {
			if err := platform.MakeExecutable(e.Dest); err != nil {
				fmt.Fprintf(w, "  ⚠️  could not mark %s executable: %v\n", e.Rel(), err)
			}
		}
	}

	return res, nil
}

func link(e Entry) error {
	if err := platform.CreateSymlink(e.Source, e.Dest); err != nil {
		return fmt.Errorf("linking %s: %w", e.Rel(), err)
	}
	return nil
}
