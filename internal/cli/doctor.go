package cli

import (
	"fmt"
	"path/filepath"

	"github.com/giro-dev/giro/internal/config"
	"github.com/giro-dev/giro/internal/farm"
	"github.com/giro-dev/giro/internal/hook"
	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/template"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair missing and stale links")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the installation",
	Long: `Checks the git binary, the template checkout, every managed link, script
permissions, the generated steering file, and hook definitions. With --fix,
missing and stale links are repaired in place.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	config.Load()

	if err := template.EnsureGit(); err != nil {
		fmt.Fprintf(out, "[MISS] git binary: %v\n", err)
	} else {
		fmt.Fprintln(out, "[ OK ] git binary found")
	}

	root, err := kiropaths.HomeRoot()
	if err != nil {
		return err
	}
	checkout, err := kiropaths.TemplateCheckout()
	if err != nil {
		return err
	}

	manifest, err := farm.LoadManifest(checkout)
	if err != nil {
		manifest = farm.DefaultManifest()
	}

	if err := farm.Verify(out, root, checkout, manifest, doctorFix); err != nil {
		return err
	}

	// Hook definitions get a schema pass of their own.
	results, err := hook.ValidateDir(kiropaths.SectionDir(root, kiropaths.HooksDir))
	if err != nil {
		return err
	}
	for _, r := range results {
		base := filepath.Base(r.Path)
		switch {
		case r.Err != nil:
			fmt.Fprintf(out, "[WARN] hook %s: %v\n", base, r.Err)
		case !r.Result.Valid:
			fmt.Fprintf(out, "[WARN] hook %s: %d schema issue(s)\n", base, len(r.Result.Issues))
			for _, issue := range r.Result.Issues {
				fmt.Fprintf(out, "         %s: %s\n", issue.Path, issue.Message)
			}
		default:
			fmt.Fprintf(out, "[ OK ] hook %s\n", base)
		}
	}

	return nil
}
