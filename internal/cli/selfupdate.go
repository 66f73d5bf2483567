package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/giro-dev/giro/internal/branding"
	"github.com/giro-dev/giro/internal/config"
	"github.com/giro-dev/giro/internal/updater"
	"github.com/spf13/cobra"
)

var (
	selfUpdateCheck   bool
	selfUpdateForce   bool
	selfUpdateVersion string
)

func init() {
	selfUpdateCmd.Flags().BoolVar(&selfUpdateCheck, "check", false, "Only check for updates, don't install")
	selfUpdateCmd.Flags().BoolVar(&selfUpdateForce, "force", false, "Reinstall even when already on the latest version")
	selfUpdateCmd.Flags().StringVar(&selfUpdateVersion, "version", "", "Install a specific version (e.g., 1.2.0)")
	rootCmd.AddCommand(selfUpdateCmd)
}

var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update the giro binary to the latest release",
	Long: `Downloads and installs the latest giro release from GitHub (or a
configured mirror), verifies its checksum, and swaps the running binary.

  giro self-update                 # update to latest
  giro self-update --check         # check only
  giro self-update --version 1.2.0 # install a specific version`,
	Args: cobra.NoArgs,
	RunE: runSelfUpdate,
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	config.Load()

	mirror := config.Get("mirror")
	if envMirror := os.Getenv(branding.EnvVar("MIRROR")); envMirror != "" {
		mirror = envMirror
	}

	var opts []updater.Option
	if mirror != "" {
		opts = append(opts, updater.WithMirror(mirror))
	}
	u := updater.New(buildVersion, opts...)

	var release *updater.Release
	var err error
	if selfUpdateVersion != "" {
		fmt.Fprintf(os.Stderr, "Checking for version %s...\n", selfUpdateVersion)
		release, err = u.CheckSpecificVersion(selfUpdateVersion)
	} else {
		fmt.Fprintln(os.Stderr, "Checking for updates...")
		release, err = u.CheckLatestVersion()
	}
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}

	available, err := updater.IsUpdateAvailable(buildVersion, release.Version)
	if err != nil {
		// Development builds ("dev") are always updateable.
		if buildVersion == "dev" {
			available = true
		} else {
			return fmt.Errorf("comparing versions: %w", err)
		}
	}

	if selfUpdateCheck {
		if available {
			fmt.Fprintf(out, "Update available: %s -> %s\n", buildVersion, release.Version)
		} else {
			fmt.Fprintf(out, "You are on the latest version (%s)\n", buildVersion)
		}
		return nil
	}

	if !available && !selfUpdateForce {
		fmt.Fprintf(out, "You are on the latest version (%s)\n", buildVersion)
		return nil
	}

	fmt.Fprintf(os.Stderr, "Downloading %s %s for %s/%s...\n", branding.CLIName(), release.Version, runtime.GOOS, runtime.GOARCH)

	tmpDir, err := os.MkdirTemp("", branding.CLIName()+"-update-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archivePath, err := u.DownloadBinary(release, tmpDir)
	if err != nil {
		return fmt.Errorf("downloading binary: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Verifying checksum...")
	if err := u.VerifyChecksum(release, archivePath); err != nil {
		return fmt.Errorf("checksum verification failed: %w", err)
	}

	binPath, err := updater.ExtractBinary(archivePath, tmpDir)
	if err != nil {
		return fmt.Errorf("extracting binary: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Installing...")
	currentBinary, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding current binary: %w", err)
	}

	if err := updater.ReplaceBinary(binPath, currentBinary, release.Version); err != nil {
		return err
	}

	_ = updater.SaveCache(config.Dir(), &updater.VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  release.Version,
		UpdateAvailable: false,
	})

	fmt.Fprintf(out, "Successfully updated to %s\n", release.Version)
	return nil
}
