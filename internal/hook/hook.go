// Package hook parses and validates Kiro agent hook definitions, the
// *.kiro.hook JSON files the assistant's UI executes (run tests on save,
// security scan before commit, and so on). Validation runs against an
// embedded JSON Schema so a broken hook is caught at install time instead of
// silently ignored by the assistant.
package hook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file suffix for hook definitions.
const Extension = ".kiro.hook"

// Hook is one agent hook definition.
type Hook struct {
	Enabled     bool    `json:"enabled"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Version     string  `json:"version"`
	When        Trigger `json:"when"`
	Then        Action  `json:"then"`
}

// Trigger describes what fires the hook.
type Trigger struct {
	Type     string   `json:"type"`
	Patterns []string `json:"patterns,omitempty"`
}

// Action describes what the hook does when fired.
type Action struct {
	Type    string `json:"type"`
	Prompt  string `json:"prompt,omitempty"`
	Command string `json:"command,omitempty"`
}

// Parse decodes a hook definition. Unknown fields are rejected so typos
// (e.g. "pattern" for "patterns") surface instead of being dropped.
func Parse(data []byte) (*Hook, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var h Hook
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("parsing hook: %w", err)
	}
	return &h, nil
}

// ParseFile reads and decodes a hook definition from disk.
func ParseFile(path string) (*Hook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hook file: %w", err)
	}
	h, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return h, nil
}

// List returns the hook definition files in dir, sorted by name. A missing
// directory yields an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading hooks directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
