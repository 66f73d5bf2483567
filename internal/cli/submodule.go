package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/giro-dev/giro/internal/config"
	"github.com/giro-dev/giro/internal/farm"
	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/submodule"
	"github.com/giro-dev/giro/internal/template"
	"github.com/giro-dev/giro/internal/termio"
	"github.com/spf13/cobra"
)

var (
	submoduleBranch string
	submoduleYes    bool
)

func init() {
	submoduleInstallCmd.Flags().StringVar(&submoduleBranch, "branch", "", "Template branch to track (default: main)")
	submoduleUninstallCmd.Flags().BoolVarP(&submoduleYes, "yes", "y", false, "Skip the confirmation prompt")

	submoduleCmd.AddCommand(submoduleInstallCmd)
	submoduleCmd.AddCommand(submoduleUpdateCmd)
	submoduleCmd.AddCommand(submoduleUninstallCmd)
	rootCmd.AddCommand(submoduleCmd)
}

var submoduleCmd = &cobra.Command{
	Use:   "submodule",
	Short: "Manage the project-level submodule installation",
	Long: `The submodule variant vendors the template repository as a git submodule
at .kiro-template inside the current project and links the project's .kiro
tree (plus .husky and the CI workflow) into it. State is per-project and
committed alongside the code, unlike the user-level install in ~/.kiro.`,
}

var submoduleInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Add the template submodule and link the project tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		config.Load()

		if err := template.EnsureGit(); err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		repoRoot, err := submodule.RepoRoot(cwd)
		if err != nil {
			return err
		}

		branch := submoduleBranch
		if branch == "" {
			branch = template.Branch()
		}

		fmt.Fprintf(out, "Adding submodule %s (%s)...\n", kiropaths.SubmoduleDir, branch)
		if err := submodule.Add(repoRoot, template.RepoURL(), branch); err != nil {
			return err
		}

		return linkSubmoduleTree(out, repoRoot)
	},
}

var submoduleUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Pull the submodule to its branch tip and repair links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		config.Load()

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		repoRoot, err := submodule.RepoRoot(cwd)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Updating submodule %s...\n", kiropaths.SubmoduleDir)
		if err := submodule.Update(repoRoot); err != nil {
			return err
		}

		return linkSubmoduleTree(out, repoRoot)
	},
}

var submoduleUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the submodule and the project links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		repoRoot, err := submodule.RepoRoot(cwd)
		if err != nil {
			return err
		}

		if !submoduleYes {
			prompter := termio.New(out)
			defer prompter.Close()

			ok, err := prompter.Confirm(fmt.Sprintf("Remove %s and the project links?", kiropaths.SubmoduleDir), false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Uninstall cancelled.")
				return nil
			}
		}

		destRoot := kiropaths.SectionDir(repoRoot, kiropaths.KiroDir)
		res := farm.Remove(destRoot, farm.DefaultManifest(), out)
		submodule.UnlinkExtras(repoRoot)

		fmt.Fprintf(out, "Removing submodule %s...\n", kiropaths.SubmoduleDir)
		if err := submodule.Remove(repoRoot); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "✓ Submodule uninstall finished: %d link(s) removed\n", res.Removed)
		return nil
	},
}

// linkSubmoduleTree builds the project's .kiro tree against the vendored
// template and creates the extra project-level links.
func linkSubmoduleTree(out io.Writer, repoRoot string) error {
	checkout := submodule.Path(repoRoot)
	destRoot := kiropaths.SectionDir(repoRoot, kiropaths.KiroDir)

	manifest, err := farm.LoadManifest(checkout)
	if err != nil {
		return err
	}
	plan, err := farm.BuildPlan(kiropaths.TemplateKiroDir(checkout), destRoot, manifest)
	if err != nil {
		return err
	}

	// Conflicts follow the same rules as the user-level install: flags and
	// env first, interactive menu when possible, overwrite otherwise.
	prompter := termio.New(out)
	defer prompter.Close()

	policy, decide, err := resolveConflictPolicy(plan, prompter, prompter.CanPrompt(), out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Linking into %s...\n", destRoot)
	res, err := farm.Apply(plan, policy, decide, out)
	if err != nil {
		return err
	}

	kept, err := submodule.LinkExtras(repoRoot)
	if err != nil {
		return err
	}
	for _, rel := range kept {
		fmt.Fprintf(out, "  - kept existing %s\n", rel)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Project links ready: %d linked, %d replaced, %d kept, %d unchanged\n",
		res.Linked, res.Replaced, res.Skipped, res.Unchanged)
	return nil
}
