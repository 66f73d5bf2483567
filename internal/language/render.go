package language

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/giro-dev/giro/internal/kiropaths"
)

// TemplateFile is the placeholder source inside the template checkout,
// relative to its root.
const TemplateFile = "templates/deployment-workflow.md"

// fallbackTemplate is used when the checkout ships no placeholder file, so
// the language step never hard-fails an install.
const fallbackTemplate = `# Deployment Workflow

## Language Settings

- **Agent chat**: {{CHAT_LANG}}
- **Documentation**: {{DOC_LANG}}
- **Code comments**: {{COMMENT_LANG}}

Keep issue titles, PR titles, and commit messages in English regardless of
the settings above.
`

// Render substitutes the language tokens into the template at templatePath
// (falling back to the built-in template when the file is missing) and
// writes the result to destPath as a regular file.
func Render(templatePath, destPath string, s Settings) error {
	content := fallbackTemplate
	if data, err := os.ReadFile(templatePath); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading language template: %w", err)
	}

	r := strings.NewReplacer(
		"{{CHAT_LANG}}", s.Chat,
		"{{DOC_LANG}}", s.Docs,
		"{{COMMENT_LANG}}", s.Comments,
	)
	content = r.Replace(content)

	if err := os.MkdirAll(filepath.Dir(destPath), kiropaths.DirPermNormal); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(destPath), err)
	}

	// Replace an old symlink at the destination; the generated file must be
	// a real file so local edits survive template refreshes.
	if info, err := os.Lstat(destPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		_ = os.Remove(destPath)
	}

	if err := os.WriteFile(destPath, []byte(content), kiropaths.FilePermNormal); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}
	return nil
}
