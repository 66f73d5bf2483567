package cli

import (
	"fmt"
	"os"

	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/syncback"
	"github.com/spf13/cobra"
)

var syncTo string

func init() {
	syncCmd.Flags().StringVar(&syncTo, "to", "", "Template checkout to sync into (default: $GIRO_PATH or ~/projects/giro)")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy project Kiro files back into a template checkout",
	Long: `Copies the project's .kiro sections, .husky, and examples into a local
checkout of the template repository so improvements can be contributed
upstream. Nothing is committed; review the reported git status and commit
manually.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		target := syncTo
		if target == "" {
			var err error
			target, err = kiropaths.SyncTarget()
			if err != nil {
				return err
			}
		}

		project, err := os.Getwd()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Syncing %s -> %s\n", project, target)
		res, err := syncback.Run(project, target)
		if err != nil {
			return err
		}

		for _, rel := range res.Copied {
			fmt.Fprintf(out, "  ✓ copied %s\n", rel)
		}
		for _, rel := range res.Skipped {
			fmt.Fprintf(out, "  - skipped %s (not present)\n", rel)
		}

		fmt.Fprintln(out)
		if res.Status == "" {
			fmt.Fprintln(out, "Destination is clean; nothing new to contribute.")
			return nil
		}
		fmt.Fprintln(out, "Changes in the destination repository:")
		fmt.Fprintln(out, res.Status)
		fmt.Fprintf(out, "\nReview and commit them in %s\n", target)
		return nil
	},
}
