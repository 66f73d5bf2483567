package updater

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/giro-dev/giro/internal/branding"
)

// ArchiveName returns the release archive filename for the current platform,
// matching the GoReleaser template giro_{os}_{arch}.tar.gz (.zip on Windows).
func ArchiveName() string {
	ext := ".tar.gz"
	if runtime.GOOS == "windows" {
		ext = ".zip"
	}
	return fmt.Sprintf("%s_%s_%s%s", branding.CLIName(), runtime.GOOS, runtime.GOARCH, ext)
}

// SelectAssetForPlatform finds the release asset for the current OS/arch.
func SelectAssetForPlatform(assets []Asset) (*Asset, error) {
	expected := ArchiveName()
	for i := range assets {
		if assets[i].Name == expected {
			return &assets[i], nil
		}
	}

	// Fall back to matching the os_arch pair anywhere in the name.
	pattern := fmt.Sprintf("%s_%s", runtime.GOOS, runtime.GOARCH)
	for i := range assets {
		if strings.Contains(assets[i].Name, pattern) && isArchive(assets[i].Name) {
			return &assets[i], nil
		}
	}

	return nil, fmt.Errorf("no asset found for %s/%s (expected %s)", runtime.GOOS, runtime.GOARCH, expected)
}

func isArchive(name string) bool {
	return strings.HasSuffix(name, ".tar.gz") || strings.HasSuffix(name, ".zip")
}

// DownloadBinary downloads the platform asset into destDir and returns the
// archive path. Progress is reported on stderr.
func (u *Updater) DownloadBinary(release *Release, destDir string) (string, error) {
	asset, err := SelectAssetForPlatform(release.Assets)
	if err != nil {
		return "", err
	}

	destPath := filepath.Join(destDir, asset.Name)

	resp, err := u.get(asset.DownloadURL)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", asset.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	total := resp.ContentLength
	var downloaded int64
	lastPercent := -1

	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return "", fmt.Errorf("writing download: %w", writeErr)
			}
			downloaded += int64(n)
			if total > 0 {
				percent := int(downloaded * 100 / total)
				if percent != lastPercent {
					fmt.Fprintf(os.Stderr, "\rDownloading... %d%%", percent)
					lastPercent = percent
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("reading download stream: %w", readErr)
		}
	}
	if total > 0 {
		fmt.Fprintln(os.Stderr)
	}

	return destPath, nil
}

// VerifyChecksum fetches checksums.txt from the release and checks the
// archive's sha256 against it.
func (u *Updater) VerifyChecksum(release *Release, archivePath string) error {
	var checksumAsset *Asset
	for i := range release.Assets {
		if release.Assets[i].Name == "checksums.txt" {
			checksumAsset = &release.Assets[i]
			break
		}
	}
	if checksumAsset == nil {
		return fmt.Errorf("checksums.txt not found in release assets")
	}

	resp, err := u.get(checksumAsset.DownloadURL)
	if err != nil {
		return fmt.Errorf("downloading checksums: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("checksums download returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading checksums: %w", err)
	}

	// Each line is "sha256  filename".
	archiveName := filepath.Base(archivePath)
	expectedHash := ""
	for _, line := range strings.Split(string(body), "\n") {
		parts := strings.Fields(line)
		if len(parts) == 2 && parts[1] == archiveName {
			expectedHash = parts[0]
			break
		}
	}
	if expectedHash == "" {
		return fmt.Errorf("no checksum found for %s in checksums.txt", archiveName)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("computing checksum: %w", err)
	}

	actualHash := hex.EncodeToString(h.Sum(nil))
	if actualHash != expectedHash {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedHash, actualHash)
	}
	return nil
}

func (u *Updater) get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "giro-updater")
	return u.httpClient.Do(req)
}

// ExtractBinary extracts the giro binary from a tar.gz or zip archive and
// returns its path.
func ExtractBinary(archivePath, destDir string) (string, error) {
	if strings.HasSuffix(archivePath, ".zip") {
		return extractFromZip(archivePath, destDir)
	}
	return extractFromTarGz(archivePath, destDir)
}

func binaryName(name string) bool {
	base := filepath.Base(name)
	return base == branding.CLIName() || base == branding.CLIName()+".exe"
}

func extractFromTarGz(archivePath, destDir string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading tar entry: %w", err)
		}
		if !binaryName(hdr.Name) {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(hdr.Name))
		out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY, 0o755)
		if err != nil {
			return "", fmt.Errorf("creating binary file: %w", err)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return "", fmt.Errorf("extracting binary: %w", err)
		}
		out.Close()
		return destPath, nil
	}

	return "", fmt.Errorf("%s binary not found in archive", branding.CLIName())
}

func extractFromZip(archivePath, destDir string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening zip archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !binaryName(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening zip entry: %w", err)
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY, 0o755)
		if err != nil {
			rc.Close()
			return "", fmt.Errorf("creating binary file: %w", err)
		}

		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			rc.Close()
			return "", fmt.Errorf("extracting binary: %w", err)
		}
		out.Close()
		rc.Close()
		return destPath, nil
	}

	return "", fmt.Errorf("%s binary not found in zip archive", branding.CLIName())
}
