// Package platform provides cross-platform filesystem operations for the
// symlink farm: link creation and inspection, permission management, and the
// executable bit for installed scripts. On Unix it uses native symlinks and
// chmod directly. On Windows it falls back to file copying with a .target
// sidecar when developer-mode symlinks are unavailable.
package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// CreateSymlink creates a symbolic link from link pointing to target.
// On Unix systems, this uses os.Symlink directly.
// On Windows, it attempts os.Symlink first (requires developer mode),
// then falls back to copying the file and writing a .target sidecar.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	// Fallback: copy the target file and record the target in a sidecar.
	if err := copyFileForSymlink(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	// Write a sidecar so ReadSymlinkTarget can recover the original target.
	sidecar := link + ".target"
	_ = os.WriteFile(sidecar, []byte(target), 0644)
	return nil
}

// RemoveSymlink removes a symlink (or its fallback copy and sidecar).
func RemoveSymlink(path string) error {
	err := os.Remove(path)

	// Also clean up the sidecar if it exists.
	sidecar := path + ".target"
	os.Remove(sidecar) // best-effort

	return err
}

// ReadSymlinkTarget returns the target of a symlink.
// On Windows, if os.Readlink fails (because a copy fallback was used),
// it reads from the .target sidecar file.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	sidecar := path + ".target"
	data, readErr := os.ReadFile(sidecar)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsSymlink reports whether path exists and is a symbolic link.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// LinksInto reports whether path is a symlink whose resolved target lies
// inside dir. Relative link targets are resolved against the link's parent.
func LinksInto(path, dir string) bool {
	target, err := ReadSymlinkTarget(path)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	target = filepath.Clean(target)
	dir = filepath.Clean(dir)
	if target == dir {
		return true
	}
	return strings.HasPrefix(target, dir+string(os.PathSeparator))
}

// IsSymlinkSupported returns true if the current platform supports native
// symlinks. On Windows this attempts a test symlink to check developer mode.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	tmpDir := os.TempDir()
	link := filepath.Join(tmpDir, ".giro-symlink-test")
	defer os.Remove(link)

	if err := os.Symlink(tmpDir, link); err != nil {
		return false
	}
	return true
}

// copyFileForSymlink copies src to dst. If src is a relative path, it
// resolves relative to the directory containing dst.
func copyFileForSymlink(src, dst string) error {
	resolvedSrc := src
	if !filepath.IsAbs(src) {
		resolvedSrc = filepath.Join(filepath.Dir(dst), src)
	}

	in, err := os.Open(resolvedSrc)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
