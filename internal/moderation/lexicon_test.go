package moderation

import "testing"

func TestNewLexicon_RejectsEmptyTerm(t *testing.T) {
	_, err := NewLexicon([]TermEntry{{Term: "  ", Category: CategoryAbuse}}, nil, nil)
	if err == nil {
		t.Fatal("expected error for empty chat term")
	}

	_, err = NewLexicon(nil, []TermEntry{{Term: "", Category: CategorySexual}}, nil)
	if err == nil {
		t.Fatal("expected error for empty query term")
	}
}

func TestDefaultLexicon_Compiles(t *testing.T) {
	lex := DefaultLexicon()
	if len(lex.chatPatterns) != len(lex.chatTerms) {
		t.Fatalf("chat patterns: got %d, want %d", len(lex.chatPatterns), len(lex.chatTerms))
	}
	if len(lex.queryPatterns) != len(lex.queryTerms) {
		t.Fatalf("query patterns: got %d, want %d", len(lex.queryPatterns), len(lex.queryTerms))
	}
	if lex.queryAlt == nil {
		t.Fatal("query alternation not built")
	}
}

func TestDefaultLexicon_EveryQueryTermHasReason(t *testing.T) {
	for _, e := range DefaultLexicon().queryTerms {
		if e.Category.Reason() == "" {
			t.Fatalf("term %q: empty reason for category %q", e.Term, e.Category)
		}
	}
}

func TestLexicon_ObfuscatedSpellingsEscape(t *testing.T) {
	// Terms like "f*ck" contain regex metacharacters; they must compile and
	// match literally.
	lex := DefaultLexicon()
	f := NewMessageFilter(lex)
	if got := f.Filter("oh f*ck no"); got != "oh *** no" {
		t.Fatalf("obfuscated spelling: got %q", got)
	}
}

func TestContainsAdultMarker(t *testing.T) {
	lex := DefaultLexicon()
	if !lex.ContainsAdultMarker("visit PORNHUB now") {
		t.Fatal("marker not detected case-insensitively")
	}
	if lex.ContainsAdultMarker("wholesome cartoons") {
		t.Fatal("false positive on clean text")
	}
}
