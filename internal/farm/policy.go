package farm

import (
	"os"
	"strings"

	"github.com/giro-dev/giro/internal/branding"
)

// Policy selects how conflicts with pre-existing non-symlink files are
// resolved.
type Policy int

const (
	// PolicyPrompt asks per run (or per file) in interactive mode.
	PolicyPrompt Policy = iota
	// PolicyOverwrite replaces every conflicting file with a link.
	PolicyOverwrite
	// PolicySkip keeps every conflicting file untouched.
	PolicySkip
)

func (p Policy) String() string {
	switch p {
	case PolicyOverwrite:
		return "overwrite"
	case PolicySkip:
		return "skip"
	default:
		return "prompt"
	}
}

// PolicyFromEnv reads the conflict policy from the environment. Both the
// bare names (OVERWRITE, SKIP) and the prefixed forms (KIRO_OVERWRITE,
// KIRO_SKIP) are honored. SKIP wins over OVERWRITE when both are set,
// because skip is the non-destructive reading. The second return is false
// when neither variable is set.
func PolicyFromEnv() (Policy, bool) {
	if envTruthy(os.Getenv("SKIP")) || envTruthy(os.Getenv(branding.EnvVar("SKIP"))) {
		return PolicySkip, true
	}
	if envTruthy(os.Getenv("OVERWRITE")) || envTruthy(os.Getenv(branding.EnvVar("OVERWRITE"))) {
		return PolicyOverwrite, true
	}
	return PolicyPrompt, false
}

func envTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
