package updater

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/giro-dev/giro/internal/branding"
	"github.com/giro-dev/giro/internal/platform"
)

// ReplaceBinary swaps the current binary for newPath, keeping a backup and
// rolling back when verification of the new binary fails.
func ReplaceBinary(newPath, currentPath, expectedVersion string) error {
	if runtime.GOOS == "windows" {
		return fmt.Errorf("self-update is not supported on Windows. Please download the latest version manually from https://github.com/%s/releases", branding.GitHubRepo())
	}

	info, err := os.Stat(currentPath)
	if err != nil {
		return fmt.Errorf("stat current binary: %w", err)
	}
	origPerm := info.Mode().Perm()

	backupPath := currentPath + ".backup"

	if err := os.Rename(currentPath, backupPath); err != nil {
		// Rename may fail across filesystems; try copy.
		if copyErr := copyFile(currentPath, backupPath); copyErr != nil {
			return fmt.Errorf("creating backup: %w", copyErr)
		}
		os.Remove(currentPath)
	}

	if err := os.Rename(newPath, currentPath); err != nil {
		if copyErr := copyFile(newPath, currentPath); copyErr != nil {
			RollbackBinary(backupPath, currentPath)
			return fmt.Errorf("installing new binary: %w", copyErr)
		}
		os.Remove(newPath)
	}

	platform.Chmod(currentPath, origPerm)

	if err := VerifyBinary(currentPath, expectedVersion); err != nil {
		RollbackBinary(backupPath, currentPath)
		return fmt.Errorf("verification failed, rolled back: %w", err)
	}

	os.Remove(backupPath)
	return nil
}

// VerifyBinary runs the new binary's "version --json" and checks it answers.
func VerifyBinary(binaryPath, expectedVersion string) error {
	cmd := exec.Command(binaryPath, "version", "--json")
	done := make(chan error, 1)
	var output []byte
	go func() {
		var err error
		output, err = cmd.Output()
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("new binary exited with error: %w", err)
		}
	case <-time.After(5 * time.Second):
		cmd.Process.Kill()
		return fmt.Errorf("new binary timed out after 5 seconds")
	}

	var versionInfo map[string]string
	if err := json.Unmarshal(output, &versionInfo); err != nil {
		return fmt.Errorf("parsing version output: %w", err)
	}
	return nil
}

// RollbackBinary restores the backup to the current path.
func RollbackBinary(backupPath, currentPath string) error {
	if err := os.Rename(backupPath, currentPath); err != nil {
		if copyErr := copyFile(backupPath, currentPath); copyErr != nil {
			return fmt.Errorf("rollback failed: %w (original rename error: %v)", copyErr, err)
		}
		os.Remove(backupPath)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
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
