package kiropaths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/giro-dev/giro/internal/branding"
)

// Directory and file name constants for the managed .kiro layout.
const (
	KiroDir     = ".kiro"
	HooksDir    = "hooks"
	SettingsDir = "settings"
	SteeringDir = "steering"
	ScriptsDir  = "scripts"

	// SubmoduleDir is where the project variant vendors the template.
	SubmoduleDir = ".kiro-template"

	// HuskyDir and WorkflowFile are the extra project-level links the
	// submodule variant maintains alongside the .kiro tree.
	HuskyDir     = ".husky"
	WorkflowFile = ".github/workflows/kiro-checks.yml"
)

// Sections are the managed subdirectories of the installed tree, in the order
// they are linked and reported.
var Sections = []string{HooksDir, SettingsDir, SteeringDir, ScriptsDir}

// GeneratedLanguageFile is the one installed file that is rendered rather
// than symlinked, so local edits survive until an explicit reinstall.
const GeneratedLanguageFile = "steering/deployment-workflow.md"

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
	FilePermExec   os.FileMode = 0755
)

// HomeRoot returns the installed tree root (~/.kiro).
// The <PREFIX>_HOME environment variable overrides it.
func HomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// TemplateCheckout returns the path of the template repository clone
// (~/.kiro/kiro-best-practices). The <PREFIX>_TEMPLATE environment variable
// overrides it.
func TemplateCheckout() (string, error) {
	if v := os.Getenv(branding.EnvVar("TEMPLATE")); v != "" {
		return v, nil
	}
	root, err := HomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, branding.TemplateDir()), nil
}

// TemplateKiroDir returns the .kiro directory inside a template checkout,
// the canonical source of every managed link.
func TemplateKiroDir(checkout string) string {
	return filepath.Join(checkout, KiroDir)
}

// SectionDir returns the path of a managed section under root.
func SectionDir(root, section string) string {
	return filepath.Join(root, section)
}

// SyncTarget returns the destination checkout for the sync command.
// Resolution order: GIRO_PATH environment variable, then ~/projects/giro.
func SyncTarget() (string, error) {
	if v := os.Getenv("GIRO_PATH"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, "projects", "giro"), nil
}
