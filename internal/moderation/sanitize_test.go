package moderation

import (
	"fmt"
	"testing"
)

func newTestSanitizer(t *testing.T) *Sanitizer {
	t.Helper()
	return NewSanitizer(DefaultLexicon())
}

func TestSanitize_NoRawResults(t *testing.T) {
	s := newTestSanitizer(t)
	kept, outcome := s.Sanitize(nil)
	if outcome != SanitizeNoResults {
		t.Fatalf("outcome: got %v, want SanitizeNoResults", outcome)
	}
	if len(kept) != 0 {
		t.Fatalf("kept: %v", kept)
	}
}

func TestSanitize_WhitelistedPreserved(t *testing.T) {
	s := newTestSanitizer(t)
	in := []Result{
		{Title: "Moon", URL: "https://en.wikipedia.org/wiki/Moon", Content: "the moon"},
		{Title: "Apollo", URL: "https://www.nasa.gov/apollo", Content: "missions"},
		{Title: "Math", URL: "https://khanacademy.org/math", Content: "lessons"},
	}
	kept, outcome := s.Sanitize(in)
	if outcome != SanitizeOK {
		t.Fatalf("outcome: %v", outcome)
	}
	if len(kept) != len(in) {
		t.Fatalf("kept %d of %d", len(kept), len(in))
	}
	for i := range in {
		if kept[i] != in[i] {
			t.Fatalf("order/content changed at %d: %+v", i, kept[i])
		}
	}
}

func TestSanitize_CapsAtMax(t *testing.T) {
	s := newTestSanitizer(t)
	var in []Result
	for i := 0; i < MaxSanitizedResults+5; i++ {
		in = append(in, Result{
			Title: "Article",
			URL:   fmt.Sprintf("https://en.wikipedia.org/wiki/Article_%d", i),
		})
	}
	kept, outcome := s.Sanitize(in)
	if outcome != SanitizeOK {
		t.Fatalf("outcome: %v", outcome)
	}
	if len(kept) != MaxSanitizedResults {
		t.Fatalf("kept %d, want %d", len(kept), MaxSanitizedResults)
	}
}

func TestSanitize_NonWhitelistedNonAdultIsOrdinaryEmpty(t *testing.T) {
	s := newTestSanitizer(t)
	in := []Result{
		{Title: "Blog", URL: "https://randomblog.example.com/post"},
		{Title: "Shop", URL: "https://buystuff.example.net/item"},
		{Title: "Misc", URL: "https://misc.example.org/page"},
	}
	kept, outcome := s.Sanitize(in)
	if outcome != SanitizeOK {
		t.Fatalf("outcome: got %v, want SanitizeOK (ordinary empty)", outcome)
	}
	if len(kept) != 0 {
		t.Fatalf("kept: %v", kept)
	}
}

func TestSanitize_AllAdultHostsIsBlocked(t *testing.T) {
	s := newTestSanitizer(t)
	in := []Result{
		{Title: "x", URL: "https://www.pornhub.example/x"},
		{Title: "y", URL: "https://xvideos.example/y"},
	}
	kept, outcome := s.Sanitize(in)
	if outcome != SanitizeAllBlocked {
		t.Fatalf("outcome: got %v, want SanitizeAllBlocked", outcome)
	}
	if len(kept) != 0 {
		t.Fatalf("kept: %v", kept)
	}
}

func TestSanitize_MixedAdultAndWhitelisted(t *testing.T) {
	s := newTestSanitizer(t)
	in := []Result{
		{Title: "bad", URL: "https://xnxx.example/clip"},
		{Title: "good", URL: "https://kids.britannica.com/article"},
	}
	kept, outcome := s.Sanitize(in)
	if outcome != SanitizeOK {
		t.Fatalf("outcome: %v", outcome)
	}
	if len(kept) != 1 || kept[0].Title != "good" {
		t.Fatalf("kept: %v", kept)
	}
}

func TestSanitize_SubdomainAndLookAlikeHosts(t *testing.T) {
	s := newTestSanitizer(t)
	in := []Result{
		// Subdomain of a whitelisted domain: allowed.
		{Title: "simple", URL: "https://simple.wikipedia.org/wiki/Sun"},
		// Dot-suffix must not be fooled by a registered look-alike.
		{Title: "fake", URL: "https://evilwikipedia.org/wiki/Sun"},
	}
	kept, outcome := s.Sanitize(in)
	if outcome != SanitizeOK {
		t.Fatalf("outcome: %v", outcome)
	}
	if len(kept) != 1 || kept[0].Title != "simple" {
		t.Fatalf("kept: %v", kept)
	}
}

func TestSanitize_UnparsableURLDropped(t *testing.T) {
	s := newTestSanitizer(t)
	in := []Result{
		{Title: "broken", URL: "::::not a url"},
		{Title: "empty", URL: ""},
		{Title: "ok", URL: "https://pbskids.org/games"},
	}
	kept, outcome := s.Sanitize(in)
	if outcome != SanitizeOK {
		t.Fatalf("outcome: %v", outcome)
	}
	if len(kept) != 1 || kept[0].Title != "ok" {
		t.Fatalf("kept: %v", kept)
	}
}
