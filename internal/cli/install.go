package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/giro-dev/giro/internal/config"
	"github.com/giro-dev/giro/internal/farm"
	"github.com/giro-dev/giro/internal/hook"
	"github.com/giro-dev/giro/internal/kiropaths"
	"github.com/giro-dev/giro/internal/language"
	"github.com/giro-dev/giro/internal/template"
	"github.com/giro-dev/giro/internal/termio"
	"github.com/spf13/cobra"
)

var (
	installBranch      string
	installOverwrite   bool
	installSkip        bool
	installLang        string
	installChatLang    string
	installDocLang     string
	installCommentLang string
)

func init() {
	installCmd.Flags().StringVar(&installBranch, "branch", "", "Template branch to track (default: main)")
	installCmd.Flags().BoolVar(&installOverwrite, "overwrite", false, "Replace conflicting files without asking")
	installCmd.Flags().BoolVar(&installSkip, "skip", false, "Keep conflicting files without asking")
	installCmd.Flags().StringVar(&installLang, "lang", "", "Language for chat, docs, and comments")
	installCmd.Flags().StringVar(&installChatLang, "chat-lang", "", "Language for agent chat")
	installCmd.Flags().StringVar(&installDocLang, "doc-lang", "", "Language for generated documentation")
	installCmd.Flags().StringVar(&installCommentLang, "comment-lang", "", "Language for code comments")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the best-practices bundle into ~/.kiro",
	Long: `Clones (or refreshes) the template repository and links its steering
documents, agent hooks, settings, and scripts into ~/.kiro. Conflicting
files can be overwritten, kept, or decided one by one.

Environment variables: KIRO_BRANCH, KIRO_LANG, KIRO_CHAT_LANG, OVERWRITE, SKIP.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
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

	branch := installBranch
	if branch == "" {
		branch = template.Branch()
	}

	if template.Exists(checkout) {
		fmt.Fprintf(out, "Updating template (%s)...\n", branch)
		if err := template.Refresh(checkout, branch); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Cloning template (%s)...\n", branch)
		if err := template.Clone(checkout, branch); err != nil {
			return err
		}
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

	prompter := termio.New(out)
	defer prompter.Close()

	policy, decide, err := resolveConflictPolicy(plan, prompter, prompter.CanPrompt(), out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Linking into %s...\n", root)
	res, err := farm.Apply(plan, policy, decide, out)
	if err != nil {
		return err
	}

	warnInvalidHooks(out, kiropaths.SectionDir(root, kiropaths.HooksDir))

	if err := renderLanguageFile(root, checkout, prompter, out); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Install complete: %d linked, %d replaced, %d kept, %d unchanged\n",
		res.Linked, res.Replaced, res.Skipped, res.Unchanged)
	return nil
}

// resolveConflictPolicy decides how conflicting files are handled.
// Precedence: --overwrite/--skip flags, then OVERWRITE/SKIP environment
// variables, then an interactive menu when conflicts exist and a terminal is
// attached. Without any of those, conflicts are overwritten: the installer's
// contract is that the template wins unless the operator opts out.
// The submodule variant resolves through the same path.
func resolveConflictPolicy(plan *farm.Plan, prompter *termio.Prompter, interactive bool, out io.Writer) (farm.Policy, farm.Decision, error) {
	switch {
	case installSkip:
		return farm.PolicySkip, nil, nil
	case installOverwrite:
		return farm.PolicyOverwrite, nil, nil
	}

	if policy, ok := farm.PolicyFromEnv(); ok {
		return policy, nil, nil
	}

	conflicts := plan.Conflicts()
	if len(conflicts) == 0 {
		return farm.PolicyOverwrite, nil, nil
	}

	if !interactive {
		return farm.PolicyOverwrite, nil, nil
	}

	fmt.Fprintf(out, "\n%d existing file(s) conflict with the template:\n", len(conflicts))
	for _, c := range conflicts {
		fmt.Fprintf(out, "  - %s\n", c.Rel())
	}

	choice, err := prompter.Select("How should conflicts be handled?", []string{
		"Overwrite all",
		"Keep all existing files",
		"Decide per file",
		"Quit without changes",
	})
	if err != nil {
		return 0, nil, err
	}

	switch choice {
	case 0:
		return farm.PolicyOverwrite, nil, nil
	case 1:
		return farm.PolicySkip, nil, nil
	case 2:
		decide := func(e farm.PlannedEntry) (bool, error) {
			return prompter.Confirm(fmt.Sprintf("Overwrite %s?", e.Rel()), false)
		}
		return farm.PolicyPrompt, decide, nil
	default:
		return 0, nil, fmt.Errorf("installation cancelled")
	}
}

// warnInvalidHooks surfaces schema problems in installed hook definitions.
// Invalid hooks never fail the install; the assistant just ignores them.
func warnInvalidHooks(out io.Writer, hooksDir string) {
	results, err := hook.ValidateDir(hooksDir)
	if err != nil {
		return
	}
	for _, r := range results {
		base := filepath.Base(r.Path)
		if r.Err != nil {
			fmt.Fprintf(out, "  ⚠️  %s: %v\n", base, r.Err)
			continue
		}
		if r.Result.Valid {
			continue
		}
		for _, issue := range r.Result.Issues {
			fmt.Fprintf(out, "  ⚠️  %s: %s: %s\n", base, issue.Path, issue.Message)
		}
	}
}

// renderLanguageFile resolves the language preferences and writes the
// generated steering document.
func renderLanguageFile(root, checkout string, prompter *termio.Prompter, out io.Writer) error {
	s := language.FromEnv()
	if installLang != "" {
		s = language.Settings{Chat: installLang, Docs: installLang, Comments: installLang}
	}
	if installChatLang != "" {
		s.Chat = installChatLang
	}
	if installDocLang != "" {
		s.Docs = installDocLang
	}
	if installCommentLang != "" {
		s.Comments = installCommentLang
	}

	// Only prompt when nothing chose a chat language and we have a terminal.
	p := prompter
	if s.Chat != "" || !prompter.CanPrompt() {
		p = nil
	}
	s, err := language.Resolve(s, p, out)
	if err != nil {
		return err
	}

	templatePath := filepath.Join(checkout, filepath.FromSlash(language.TemplateFile))
	destPath := filepath.Join(root, filepath.FromSlash(kiropaths.GeneratedLanguageFile))
	if err := language.Render(templatePath, destPath, s); err != nil {
		return fmt.Errorf("writing language steering file: %w", err)
	}
	fmt.Fprintf(out, "  ✓ generated %s (chat: %s)\n", kiropaths.GeneratedLanguageFile, s.Chat)

	// Persist so the next install does not re-ask.
	_ = config.Set("chat_language", s.Chat)
	_ = config.Set("doc_language", s.Docs)
	_ = config.Set("comment_language", s.Comments)
	return nil
}
