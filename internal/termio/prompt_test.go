package termio

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirmDefaults(t *testing.T) {
	var out bytes.Buffer

	p := NewFrom(strings.NewReader("\n"), &out)
	got, err := p.Confirm("Remove everything?", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("empty answer should return the default (false)")
	}
	if !strings.Contains(out.String(), "(y/N)") {
		t.Errorf("prompt hint missing, got %q", out.String())
	}

	p = NewFrom(strings.NewReader("\n"), &out)
	got, err = p.Confirm("Proceed?", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("empty answer should return the default (true)")
	}
}

func TestConfirmAnswers(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"whatever\n", false},
	}
	for _, tc := range cases {
		p := NewFrom(strings.NewReader(tc.answer), &bytes.Buffer{})
		got, err := p.Confirm("?", false)
		if err != nil {
			t.Fatalf("answer %q: unexpected error: %v", tc.answer, err)
		}
		if got != tc.want {
			t.Errorf("answer %q: got %v, want %v", tc.answer, got, tc.want)
		}
	}
}

func TestSelect(t *testing.T) {
	var out bytes.Buffer
	p := NewFrom(strings.NewReader("2\n"), &out)

	idx, err := p.Select("Pick one:", []string{"overwrite all", "skip all", "per file"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 1 {
		t.Errorf("Select = %d, want 1", idx)
	}
	if !strings.Contains(out.String(), "1) overwrite all") {
		t.Errorf("menu not rendered, got %q", out.String())
	}
}

func TestSelectInvalid(t *testing.T) {
	for _, answer := range []string{"0\n", "4\n", "x\n", "\n"} {
		p := NewFrom(strings.NewReader(answer), &bytes.Buffer{})
		if _, err := p.Select("Pick:", []string{"a", "b", "c"}); err == nil {
			t.Errorf("answer %q: expected error", answer)
		}
	}
}

func TestLine(t *testing.T) {
	p := NewFrom(strings.NewReader("  Japanese \n"), &bytes.Buffer{})
	got, err := p.Line("Language?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Japanese" {
		t.Errorf("Line = %q, want Japanese", got)
	}
}
