package moderation

import (
	"net/url"
	"strings"
)

// MaxSanitizedResults caps the result list returned to a child.
const MaxSanitizedResults = 8

// SanitizeOutcome distinguishes why a sanitized list may be empty, so the
// caller can report "no results" differently from "everything was blocked".
type SanitizeOutcome int

const (
	// SanitizeOK: results retained (possibly a subset of the input).
	SanitizeOK SanitizeOutcome = iota
	// SanitizeNoResults: the upstream returned nothing at all.
	SanitizeNoResults
	// SanitizeAllBlocked: upstream returned results, every one was removed,
	// and at least one was removed for matching an adult-domain marker.
	SanitizeAllBlocked
)

// ReasonOnlyBlockedSites is the block reason for the SanitizeAllBlocked case.
const ReasonOnlyBlockedSites = "Search returned only blocked websites"

// Sanitizer post-filters upstream search results against the fixed domain
// whitelist. A result survives only when its host parses, carries no adult
// marker, and equals or is a subdomain of a whitelisted domain.
type Sanitizer struct {
	lex       *Lexicon
	whitelist []string
	maxCount  int
}

func NewSanitizer(lex *Lexicon) *Sanitizer {
	return &Sanitizer{
		lex:       lex,
		whitelist: defaultWhitelist(),
		maxCount:  MaxSanitizedResults,
	}
}

// Whitelisted educational hosts; the only domains a child's search may show.
func defaultWhitelist() []string {
	return []string{
		"wikipedia.org",
		"khanacademy.org",
		"kids.britannica.com",
		"nationalgeographic.com",
		"nasa.gov",
		"pbskids.org",
		"timeforkids.com",
	}
}

// Sanitize filters results down to whitelisted hosts, capped at the maximum,
// and reports the outcome taxonomy for the caller.
func (s *Sanitizer) Sanitize(results []Result) ([]Result, SanitizeOutcome) {
	if len(results) == 0 {
		return []Result{}, SanitizeNoResults
	}

	kept := make([]Result, 0, len(results))
	sawAdultHost := false

	for _, r := range results {
		host, ok := hostOf(r.URL)
		if !ok {
			continue
		}
		if s.hostMatchesAdultMarker(host) {
			sawAdultHost = true
			continue
		}
		if !s.hostWhitelisted(host) {
			continue
		}
		kept = append(kept, r)
		if len(kept) == s.maxCount {
			break
		}
	}

	if len(kept) == 0 && sawAdultHost {
		return []Result{}, SanitizeAllBlocked
	}
	return kept, SanitizeOK
}

func (s *Sanitizer) hostWhitelisted(host string) bool {
	for _, d := range s.whitelist {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Defense in depth: drop known adult hosts even if the upstream leaked them.
func (s *Sanitizer) hostMatchesAdultMarker(host string) bool {
	for _, m := range s.lex.adultMarkers {
		if strings.Contains(host, m) {
			return true
		}
	}
	return false
}

func hostOf(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return strings.ToLower(u.Hostname()), true
}
