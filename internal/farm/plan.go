package farm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/giro-dev/giro/internal/platform"
)

// State classifies one managed path against the desired link.
type State int

const (
	// StateLinked: the path is a symlink to the right template file.
	StateLinked State = iota
	// StateMissing: nothing exists at the path yet.
	StateMissing
	// StateConflict: a regular file or directory occupies the path.
	StateConflict
	// StateStale: a symlink exists but points somewhere else.
	StateStale
)

func (s State) String() string {
	switch s {
	case StateLinked:
		return "linked"
	case StateMissing:
		return "missing"
	case StateConflict:
		return "conflict"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Entry is one managed file: a template source and its installed destination.
type Entry struct {
	Section string // hooks, settings, steering, scripts
	Name    string // file name within the section
	Source  string // absolute path in the template checkout
	Dest    string // absolute path in the installed tree
}

// Rel returns the section-relative path ("steering/principles.md").
func (e Entry) Rel() string {
	return e.Section + "/" + e.Name
}

// PlannedEntry is an Entry with its observed state.
type PlannedEntry struct {
	Entry
	State State
}

// Plan is the full diff between the template tree and the installed tree.
type Plan struct {
	TemplateKiroDir string
	DestRoot        string
	Entries         []PlannedEntry
	Generated       []string // section-relative paths rendered, not linked
}

// Conflicts returns the entries blocked by pre-existing non-symlink files.
func (p *Plan) Conflicts() []PlannedEntry {
	var out []PlannedEntry
	for _, e := range p.Entries {
		if e.State == StateConflict {
			out = append(out, e)
		}
	}
	return out
}

// BuildPlan enumerates the manifest's sections under templateKiroDir and
// classifies each file against destRoot. Sections absent from the template
// are skipped; generated files are excluded from linking.
func BuildPlan(templateKiroDir, destRoot string, m *Manifest) (*Plan, error) {
	if m == nil {
		m = DefaultManifest()
	}

	plan := &Plan{
		TemplateKiroDir: templateKiroDir,
		DestRoot:        destRoot,
		Generated:       append([]string(nil), m.Generated...),
	}

	for _, section := range m.Sections {
		srcDir := filepath.Join(templateKiroDir, section)
		entries, err := os.ReadDir(srcDir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading template section %s: %w", section, err)
		}

		for _, de := range entries {
			if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
				continue
			}
			e := Entry{
				Section: section,
				Name:    de.Name(),
				Source:  filepath.Join(srcDir, de.Name()),
				Dest:    filepath.Join(destRoot, section, de.Name()),
			}
			if m.IsGenerated(e.Rel()) {
				continue
			}
			plan.Entries = append(plan.Entries, PlannedEntry{
				Entry: e,
				State: classify(e),
			})
		}
	}

	return plan, nil
}

// classify determines the state of one destination path.
func classify(e Entry) State {
	if _, err := os.Lstat(e.Dest); os.IsNotExist(err) {
		return StateMissing
	}

	if !platform.IsSymlink(e.Dest) {
		return StateConflict
	}

	target, err := platform.ReadSymlinkTarget(e.Dest)
	if err != nil {
		return StateStale
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(e.Dest), target)
	}
	if filepath.Clean(target) == filepath.Clean(e.Source) {
		return StateLinked
	}
	return StateStale
}
