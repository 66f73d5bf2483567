// Package language resolves the user's language preferences (agent chat,
// documentation, code comments) and renders the generated steering file that
// carries them. The rendered file is a real file, not a symlink, so local
// edits survive until an explicit reinstall.
package language

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/giro-dev/giro/internal/branding"
	"github.com/giro-dev/giro/internal/config"
	"github.com/giro-dev/giro/internal/termio"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Settings holds the three language preferences.
type Settings struct {
	Chat     string
	Docs     string
	Comments string
}

// Choices offered by the interactive menu. Free-form entry is the last item.
var Choices = []string{
	"English",
	"Japanese",
	"Korean",
	"Chinese",
	"Spanish",
	"French",
	"German",
}

const defaultLanguage = "English"

var titler = cases.Title(language.English)

// Normalize canonicalizes a user-supplied language name: trimmed and
// title-cased, so KIRO_LANG=japanese still renders "Japanese".
func Normalize(s string) string {
	return titler.String(strings.TrimSpace(s))
}

// FromEnv reads language preferences from the environment. KIRO_CHAT_LANG
// takes precedence over KIRO_LANG for the chat language; KIRO_LANG is the
// shared default for all three.
func FromEnv() Settings {
	all := os.Getenv(branding.EnvVar("LANG"))
	s := Settings{Chat: all, Docs: all, Comments: all}
	if v := os.Getenv(branding.EnvVar("CHAT_LANG")); v != "" {
		s.Chat = v
	}
	if v := os.Getenv(branding.EnvVar("DOC_LANG")); v != "" {
		s.Docs = v
	}
	if v := os.Getenv(branding.EnvVar("COMMENT_LANG")); v != "" {
		s.Comments = v
	}
	return s
}

// fromConfig fills unset fields from the config file defaults.
func fromConfig(s Settings) Settings {
	if s.Chat == "" {
		s.Chat = config.Get("chat_language")
	}
	if s.Docs == "" {
		s.Docs = config.Get("doc_language")
	}
	if s.Comments == "" {
		s.Comments = config.Get("comment_language")
	}
	return s
}

// Resolve produces the final settings. Fields already set (flags merged with
// env by the caller) are kept; the rest come from config, then from an
// interactive menu when a prompter is given, then fall back to English.
// Everything is normalized on the way out.
func Resolve(s Settings, p *termio.Prompter, w io.Writer) (Settings, error) {
	s = fromConfig(s)

	if s.Chat == "" && p != nil {
		choice, err := pick(p, w)
		if err != nil {
			return s, err
		}
		s.Chat = choice
	}

	if s.Chat == "" {
		s.Chat = defaultLanguage
	}
	// Docs and comments default to the chat language, not to English.
	if s.Docs == "" {
		s.Docs = s.Chat
	}
	if s.Comments == "" {
		s.Comments = s.Chat
	}

	s.Chat = Normalize(s.Chat)
	s.Docs = Normalize(s.Docs)
	s.Comments = Normalize(s.Comments)
	return s, nil
}

// pick runs the numbered language menu, with a free-form "other" entry.
func pick(p *termio.Prompter, w io.Writer) (string, error) {
	items := append(append([]string(nil), Choices...), "Other (type a language name)")
	idx, err := p.Select("Select the language for agent chat:", items)
	if err != nil {
		return "", err
	}
	if idx < len(Choices) {
		return Choices[idx], nil
	}

	answer, err := p.Line("Language name:")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("empty language name")
	}
	return answer, nil
}
