// Package farm builds and maintains the symlink farm: the managed tree of
// links from the installed .kiro directory into the template checkout. It
// plans link operations, resolves conflicts with pre-existing files per
// policy, applies and removes links, and verifies the installed tree's
// invariants for the doctor command.
package farm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/giro-dev/giro/internal/kiropaths"
	"go.yaml.in/yaml/v3"
)

// manifestFile is the optional link manifest at the template repo root.
const manifestFile = "links.yaml"

// Manifest declares which template subtrees get linked and which installed
// files are rendered instead of linked.
type Manifest struct {
	Sections  []string `yaml:"sections"`
	Generated []string `yaml:"generated"`
}

// DefaultManifest returns the built-in manifest: the four managed sections
// and the generated language file.
func DefaultManifest() *Manifest {
	return &Manifest{
		Sections:  append([]string(nil), kiropaths.Sections...),
		Generated: []string{kiropaths.GeneratedLanguageFile},
	}
}

// LoadManifest reads links.yaml from the template checkout root. A missing
// file yields the default manifest; a present file overrides only the fields
// it sets.
func LoadManifest(checkout string) (*Manifest, error) {
	m := DefaultManifest()

	data, err := os.ReadFile(filepath.Join(checkout, manifestFile))
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifestFile, err)
	}

	var override Manifest
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestFile, err)
	}
	if len(override.Sections) > 0 {
		m.Sections = override.Sections
	}
	if len(override.Generated) > 0 {
		m.Generated = override.Generated
	}
	return m, nil
}

// IsGenerated reports whether the section-relative path (e.g.
// "steering/deployment-workflow.md") is a generated file rather than a link.
func (m *Manifest) IsGenerated(rel string) bool {
	for _, g := range m.Generated {
		if g == rel {
			return true
		}
	}
	return false
}
