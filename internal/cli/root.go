package cli

import (
	"fmt"
	"os"

	"github.com/giro-dev/giro/internal/branding"
	"github.com/giro-dev/giro/internal/config"
	"github.com/giro-dev/giro/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs and maintains the Kiro best-practices bundle:
steering documents, agent hooks, settings, and scripts linked into ~/.kiro
(or a project's .kiro tree) from a single template checkout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Skip banners for commands that manage versions themselves.
		name := cmd.Name()
		if name == "self-update" || name == "version" {
			return
		}

		// Non-blocking banner from the cached version check.
		u := updater.New(buildVersion)
		u.CheckAndPrintBanner(os.Stderr, config.Dir())
	},
}

// Execute runs the root command with build info injected via ldflags.
// The root command silences cobra's own error printing, so failures are
// reported to stderr here, once, before the caller exits non-zero.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
