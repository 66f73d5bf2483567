package cli

import (
	"fmt"

	"github.com/giro-dev/giro/internal/config"
	"github.com/giro-dev/giro/internal/farm"
	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/template"
	"github.com/spf13/cobra"
)

var updateBranch string

func init() {
	updateCmd.Flags().StringVar(&updateBranch, "branch", "", "Template branch to track (default: main)")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the template checkout and repair links",
	Long: `Fetches the latest template from the tracked branch, resets the local
checkout to it, and relinks anything missing or stale. Conflicting files
and the generated language steering file are left untouched; rerun
'giro install' to change those.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	config.Load()

	if err := template.EnsureGit(); err != nil {
		return err
	}

	root, err := kiropaths.HomeRoot()
	if err != nil {
		return err
	}
	checkout, err := kiropaths.TemplateCheckout()
	if err != nil {
		return err
	}
	if !template.Exists(checkout) {
		return fmt.Errorf("no template checkout at %s; run 'giro install' first", checkout)
	}

	branch := updateBranch
	if branch == "" {
		branch = template.Branch()
	}

	fmt.Fprintf(out, "Updating template (%s)...\n", branch)
	if err := template.Refresh(checkout, branch); err != nil {
		return err
	}
	template.WriteFreshnessMarker(checkout)

	manifest, err := farm.LoadManifest(checkout)
	if err != nil {
		return err
	}
	plan, err := farm.BuildPlan(kiropaths.TemplateKiroDir(checkout), root, manifest)
	if err != nil {
		return err
	}

	// An update never clobbers files the user put in place.
	res, err := farm.Apply(plan, farm.PolicySkip, nil, out)
	if err != nil {
		return err
	}

	warnInvalidHooks(out, kiropaths.SectionDir(root, kiropaths.HooksDir))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Update complete: %d linked, %d relinked, %d kept, %d unchanged\n",
		res.Linked, res.Replaced, res.Skipped, res.Unchanged)
	return nil
}
