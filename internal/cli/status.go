package cli

import (
	"fmt"

	"github.com/giro-dev/giro/internal/config"
	"github.com/giro-dev/giro/internal/farm"
	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/template"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the installed bundle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		config.Load()

		root, err := kiropaths.HomeRoot()
		if err != nil {
			return err
		}
		checkout, err := kiropaths.TemplateCheckout()
		if err != nil {
			return err
		}

		if !template.Exists(checkout) {
			fmt.Fprintf(out, "Not installed (no template checkout at %s).\n", checkout)
			fmt.Fprintln(out, "Run 'giro install' to set up.")
			return nil
		}

		fmt.Fprintf(out, "Template:  %s (branch %s)\n", checkout, template.Branch())
		if updated := template.ReadFreshnessMarker(checkout); !updated.IsZero() {
			fmt.Fprintf(out, "Updated:   %s\n", updated.Format("2006-01-02 15:04"))
		}
		if template.IsStale(checkout, template.DefaultMaxAge) {
			fmt.Fprintln(out, "           template is more than 7 days old; run 'giro update'")
		}

		manifest, err := farm.LoadManifest(checkout)
		if err != nil {
			return err
		}
		plan, err := farm.BuildPlan(kiropaths.TemplateKiroDir(checkout), root, manifest)
		if err != nil {
			return err
		}

		counts := map[farm.State]int{}
		for _, e := range plan.Entries {
			counts[e.State]++
		}

		fmt.Fprintf(out, "Links:     %d linked, %d missing, %d stale, %d conflicting\n",
			counts[farm.StateLinked], counts[farm.StateMissing],
			counts[farm.StateStale], counts[farm.StateConflict])

		for _, e := range plan.Entries {
			if e.State != farm.StateLinked {
				fmt.Fprintf(out, "  %-8s %s\n", e.State, e.Rel())
			}
		}

		if counts[farm.StateMissing]+counts[farm.StateStale]+counts[farm.StateConflict] > 0 {
			fmt.Fprintln(out, "Run 'giro update' (or 'giro install' for conflicts) to repair.")
		}
		return nil
	},
}
