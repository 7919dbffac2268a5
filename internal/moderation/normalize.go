package moderation

import (
	"regexp"
	"strings"
)

// Normalized is the canonical form of an input for matching. Canonical is
// lowercased, punctuation-collapsed and leet-substituted; Compact is Canonical
// with all spaces removed, used to catch split terms like "s e x".
type Normalized struct {
	Canonical string
	Compact   string
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Digit-to-letter substitutions for common leet spellings.
var leetMap = map[rune]rune{
	'0': 'o', '1': 'i', '3': 'e', '4': 'a', '5': 's',
	'7': 't', '2': 'r', '8': 'b', '9': 'g',
}

// Normalize converts raw input to its canonical matching form. It is
// deterministic and idempotent: normalizing a canonical form again yields the
// same string. Empty input yields empty forms.
func Normalize(input string) Normalized {
	t := strings.ToLower(input)
	t = nonAlnum.ReplaceAllString(t, " ")

	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		if sub, ok := leetMap[r]; ok {
			b.WriteRune(sub)
		} else {
			b.WriteRune(r)
		}
	}

	canonical := strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
	compact := strings.ReplaceAll(canonical, " ", "")
	return Normalized{Canonical: canonical, Compact: compact}
}
