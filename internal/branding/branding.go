// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package, then rebuild. Go's //go:embed
// bakes the file into the binary, so a rebranded fork needs no code changes.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	GoModule        string `yaml:"go_module"`
	GitHubRepo      string `yaml:"github_repo"`
	TemplateRepoURL string `yaml:"template_repo_url"`
	TemplateDir     string `yaml:"template_dir"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:         "giro",
			DisplayName:     "Giro",
			Description:     "Best-practices workflow manager for the Kiro AI assistant",
			HomeDir:         ".kiro",
			EnvPrefix:       "KIRO",
			GoModule:        "github.com/giro-dev/giro",
			GitHubRepo:      "giro-dev/giro",
			TemplateRepoURL: "https://github.com/giro-dev/kiro-best-practices.git",
			TemplateDir:     "kiro-best-practices",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "giro").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Giro").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".kiro").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "KIRO").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by release scripts, not at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string used for release lookups.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// TemplateRepoURL returns the git URL of the best-practices template repository.
func TemplateRepoURL() string { load(); return defaults.TemplateRepoURL }

// TemplateDir returns the directory name of the template checkout under the
// home tree (e.g., "kiro-best-practices").
func TemplateDir() string { load(); return defaults.TemplateDir }

// EnvVar returns a fully-prefixed environment variable name.
// EnvVar("BRANCH") yields "KIRO_BRANCH".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
