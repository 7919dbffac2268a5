package moderation

// Mask replaces each matched term in chat text.
const Mask = "***"

// MessageFilter redacts banned terms in free chat. It scans the raw text with
// word-boundary patterns rather than the normalized form: chat favors low
// false-positive masking over obfuscation resistance, because a hit never
// blocks silently; the transport layer rejects the whole message whenever
// the filtered text differs from the input.
type MessageFilter struct {
	lex *Lexicon
}

func NewMessageFilter(lex *Lexicon) *MessageFilter {
	return &MessageFilter{lex: lex}
}

// Filter returns text with every chat-lexicon match replaced by Mask.
// Empty input is returned unchanged.
func (f *MessageFilter) Filter(text string) string {
	if text == "" {
		return text
	}
	filtered := text
	for _, p := range f.lex.chatPatterns {
		filtered = p.ReplaceAllString(filtered, Mask)
	}
	return filtered
}

// Clean reports whether text passes the filter unmodified.
func (f *MessageFilter) Clean(text string) bool {
	return f.Filter(text) == text
}
