package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFileName = "version-check.json"
	// DefaultCacheMaxAge bounds how often the startup check hits the network.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache holds the result of the last release check.
type VersionCache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// LoadCache reads the version cache from the config directory. A missing
// file returns nil, nil (first run).
func LoadCache(configDir string) (*VersionCache, error) {
	data, err := os.ReadFile(filepath.Join(configDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the version cache to the config directory.
func SaveCache(configDir string, cache *VersionCache) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, cacheFileName), data, 0o644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale reports whether cache is nil or older than maxAge.
func IsCacheStale(cache *VersionCache, maxAge time.Duration) bool {
	if cache == nil {
		return true
	}
	return time.Since(cache.CheckedAt) > maxAge
}
