package moderation

import (
	"strings"
	"testing"
)

func newTestFilter(t *testing.T) *MessageFilter {
	t.Helper()
	return NewMessageFilter(DefaultLexicon())
}

func TestMessageFilter_CleanUnchanged(t *testing.T) {
	f := newTestFilter(t)
	msg := "this is a clean message"
	if got := f.Filter(msg); got != msg {
		t.Fatalf("clean message altered: %q", got)
	}
	if !f.Clean(msg) {
		t.Fatal("Clean reported false for clean message")
	}
}

func TestMessageFilter_EmptyUnchanged(t *testing.T) {
	f := newTestFilter(t)
	if got := f.Filter(""); got != "" {
		t.Fatalf("empty input: got %q", got)
	}
}

func TestMessageFilter_MasksTerms(t *testing.T) {
	f := newTestFilter(t)
	cases := []struct {
		in   string
		term string
	}{
		{"you are an idiot", "idiot"},
		{"he had a gun yesterday", "gun"},
		{"shut up right now", "shut up"},
		{"that was bloody stupid", "stupid"},
	}
	for _, c := range cases {
		got := f.Filter(c.in)
		if got == c.in {
			t.Fatalf("Filter(%q): unchanged", c.in)
		}
		if strings.Contains(strings.ToLower(got), c.term) {
			t.Fatalf("Filter(%q): term %q survived in %q", c.in, c.term, got)
		}
		if !strings.Contains(got, Mask) {
			t.Fatalf("Filter(%q): no mask in %q", c.in, got)
		}
		if f.Clean(c.in) {
			t.Fatalf("Clean(%q): reported clean", c.in)
		}
	}
}

func TestMessageFilter_WordBoundary(t *testing.T) {
	f := newTestFilter(t)
	// "class" must not trip on the embedded "ass"; "assistant" likewise.
	for _, msg := range []string{"my class starts at nine", "the assistant helped me"} {
		if got := f.Filter(msg); got != msg {
			t.Fatalf("Filter(%q): false positive, got %q", msg, got)
		}
	}
}

func TestMessageFilter_CaseInsensitive(t *testing.T) {
	f := newTestFilter(t)
	got := f.Filter("you IDIOT")
	if got != "you ***" {
		t.Fatalf("case-insensitive mask: got %q", got)
	}
}
