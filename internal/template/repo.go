// Package template manages the best-practices template repository checkout.
// It handles cloning, refreshing to the remote branch tip, and freshness
// tracking. All git work shells out to the git binary on PATH.
package template

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/giro-dev/giro/internal/branding"
	"github.com/giro-dev/giro/internal/config"
	"github.com/giro-dev/giro/internal/kiropaths"
)

const (
	// freshnessFile is the name of the timestamp marker file.
	freshnessFile = ".template-updated"

	// DefaultMaxAge is the default staleness threshold (7 days).
	DefaultMaxAge = 7 * 24 * time.Hour

	// tmpSuffix is appended to the target dir during atomic clone.
	tmpSuffix = ".tmp"

	// DefaultBranch is used when neither flag, env, nor config names one.
	DefaultBranch = "main"
)

// RepoURL returns the template repository URL, checking (in order):
// 1. <PREFIX>_TEMPLATE_REPO_URL env var
// 2. config key "template_repo"
// 3. branding.TemplateRepoURL() (from branding.yaml)
func RepoURL() string {
	if v := os.Getenv(branding.EnvVar("TEMPLATE_REPO_URL")); v != "" {
		return v
	}
	if v := config.Get("template_repo"); v != "" {
		return v
	}
	return branding.TemplateRepoURL()
}

// Branch returns the branch to track, checking (in order):
// 1. <PREFIX>_BRANCH env var
// 2. config key "branch"
// 3. DefaultBranch
func Branch() string {
	if v := os.Getenv(branding.EnvVar("BRANCH")); v != "" {
		return v
	}
	if v := config.Get("branch"); v != "" {
		return v
	}
	return DefaultBranch
}

// EnsureGit checks that git is available on PATH.
func EnsureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}

// Clone performs a shallow clone of the template repository into targetDir,
// checked out at branch.
//
// The clone is atomic: it writes to a .tmp directory first, then renames
// on success. On failure the .tmp directory is cleaned up.
func Clone(targetDir, branch string) error {
	if err := EnsureGit(); err != nil {
		return err
	}

	repoURL := RepoURL()
	tmpDir := targetDir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), kiropaths.DirPermNormal); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	cmd := exec.Command("git", "clone", "--depth=1", "--branch", branch, repoURL, tmpDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning template: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	// Atomic rename.
	if err := os.RemoveAll(targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing existing template dir: %w", err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing template clone: %w", err)
	}

	WriteFreshnessMarker(targetDir)
	return nil
}

// Refresh brings an existing checkout to the remote tip of branch with
// fetch + reset --hard, discarding any local edits to the checkout (it is
// canonical upstream state, never a merge target). If the checkout doesn't
// exist yet, it clones instead.
func Refresh(checkoutDir, branch string) error {
	if err := EnsureGit(); err != nil {
		return err
	}

	gitDir := filepath.Join(checkoutDir, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return Clone(checkoutDir, branch)
	}

	cmd := exec.Command("git", "fetch", "--depth=1", "origin", branch)
	cmd.Dir = checkoutDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("fetching template updates: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	cmd = exec.Command("git", "reset", "--hard", "origin/"+branch)
	cmd.Dir = checkoutDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("resetting template to origin/%s: %w\n%s", branch, err, strings.TrimSpace(string(output)))
	}

	WriteFreshnessMarker(checkoutDir)
	return nil
}

// Exists reports whether checkoutDir holds a git checkout.
func Exists(checkoutDir string) bool {
	_, err := os.Stat(filepath.Join(checkoutDir, ".git"))
	return err == nil
}

// WriteFreshnessMarker writes the current Unix timestamp to the freshness file.
func WriteFreshnessMarker(checkoutDir string) {
	markerPath := filepath.Join(checkoutDir, freshnessFile)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	_ = os.WriteFile(markerPath, []byte(ts), kiropaths.FilePermNormal)
}

// ReadFreshnessMarker reads the timestamp from the freshness file.
// Returns zero time if the file doesn't exist or can't be parsed.
func ReadFreshnessMarker(checkoutDir string) time.Time {
	markerPath := filepath.Join(checkoutDir, freshnessFile)
	data, err := os.ReadFile(markerPath)
	if err != nil {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

// IsStale returns true if the checkout was last refreshed more than maxAge
// ago, or if the freshness marker doesn't exist.
func IsStale(checkoutDir string, maxAge time.Duration) bool {
	lastUpdated := ReadFreshnessMarker(checkoutDir)
	if lastUpdated.IsZero() {
		return true
	}
	return time.Since(lastUpdated) > maxAge
}
