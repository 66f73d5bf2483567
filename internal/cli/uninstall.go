package cli

import (
	"fmt"
	"os"

	"github.com/giro-dev/giro/internal/farm"
	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/termio"
	"github.com/spf13/cobra"
)

var uninstallYes bool

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the installed bundle and the template checkout",
	Long: `Removes every managed link under ~/.kiro, the generated steering file,
the template checkout, and any managed directories left empty. Files you
created inside ~/.kiro are kept. Cancelling is not an error.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	root, err := kiropaths.HomeRoot()
	if err != nil {
		return err
	}
	checkout, err := kiropaths.TemplateCheckout()
	if err != nil {
		return err
	}

	if !uninstallYes {
		prompter := termio.New(out)
		defer prompter.Close()

		ok, err := prompter.Confirm(fmt.Sprintf("Remove the Kiro bundle from %s?", root), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Uninstall cancelled.")
			return nil
		}
	}

	manifest, err := farm.LoadManifest(checkout)
	if err != nil {
		// A broken or missing manifest still gets the default cleanup.
		manifest = farm.DefaultManifest()
	}

	fmt.Fprintf(out, "Removing links from %s...\n", root)
	res := farm.Remove(root, manifest, out)

	if dirExists(checkout) {
		if err := os.RemoveAll(checkout); err != nil {
			fmt.Fprintf(out, "  ⚠️  could not remove %s: %v\n", checkout, err)
		} else {
			fmt.Fprintf(out, "  ✓ removed %s\n", checkout)
		}
	}

	// Drop the root itself when nothing is left in it.
	if entries, err := os.ReadDir(root); err == nil && len(entries) == 0 {
		_ = os.Remove(root)
	}

	fmt.Fprintln(out)
	if res.Failed > 0 {
		fmt.Fprintf(out, "✓ Uninstall finished: %d removed, %d failed\n", res.Removed, res.Failed)
	} else {
		fmt.Fprintf(out, "✓ Uninstall finished: %d removed\n", res.Removed)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
