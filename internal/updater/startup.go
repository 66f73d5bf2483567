package updater

import (
	"fmt"
	"io"
	"time"

	"github.com/giro-dev/giro/internal/branding"
)

// CheckAndPrintBanner prints an update notice when the cached check says a
// newer version exists. It never blocks: a stale cache is refreshed by a
// background goroutine for the next invocation.
func (u *Updater) CheckAndPrintBanner(w io.Writer, configDir string) {
	cache, err := LoadCache(configDir)
	if err != nil {
		// A corrupt cache never breaks a command.
		return
	}

	if cache != nil && cache.UpdateAvailable {
		PrintUpdateBanner(w, cache.CurrentVersion, cache.LatestVersion)
	}

	if IsCacheStale(cache, DefaultCacheMaxAge) {
		go u.refreshCache(configDir)
	}
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, current, latest string) {
	fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", current, latest)
	fmt.Fprintf(w, "    Run `%s self-update` to upgrade\n\n", branding.CLIName())
}

func (u *Updater) refreshCache(configDir string) {
	release, err := u.CheckLatestVersion()
	if err != nil {
		return
	}

	available, err := IsUpdateAvailable(u.currentVersion, release.Version)
	if err != nil {
		return
	}

	_ = SaveCache(configDir, &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	})
}
