// Package termio handles interactive terminal input. Prompts read from
// /dev/tty when stdin is piped (the `curl | sh`-style invocation), so menus
// stay usable even when the process body arrives on stdin.
package termio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Prompter reads user answers from a terminal-ish reader.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	tty *os.File // owned /dev/tty handle, closed by Close
}

// New returns a Prompter for the current process. When stdin is not a
// terminal it tries /dev/tty so prompts survive piped invocations; if that
// fails it falls back to stdin anyway.
func New(out io.Writer) *Prompter {
	if !IsInteractive() {
		if tty, err := os.Open("/dev/tty"); err == nil {
			return &Prompter{in: bufio.NewReader(tty), out: out, tty: tty}
		}
	}
	return &Prompter{in: bufio.NewReader(os.Stdin), out: out}
}

// NewFrom returns a Prompter reading from r, for tests.
func NewFrom(r io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: out}
}

// Close releases the /dev/tty handle if one was opened.
func (p *Prompter) Close() {
	if p.tty != nil {
		p.tty.Close()
	}
}

// CanPrompt reports whether answers can actually come from a terminal,
// either directly on stdin or through an opened /dev/tty.
func (p *Prompter) CanPrompt() bool {
	return p.tty != nil || IsInteractive()
}

// Confirm asks a yes/no question. An empty answer returns def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s (%s) ", question, hint)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Select presents a numbered list and returns the selected index.
// An out-of-range or non-numeric answer is an error.
func (p *Prompter) Select(title string, items []string) (int, error) {
	fmt.Fprintf(p.out, "\n%s\n", title)
	for i, item := range items {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(p.out, "Enter number [1-%d]: ", len(items))

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", strings.TrimSpace(line), len(items))
	}

	return num - 1, nil
}

// Line asks a free-form question and returns the trimmed answer.
func (p *Prompter) Line(question string) (string, error) {
	fmt.Fprintf(p.out, "%s ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
