package moderation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Result is a single search result surfaced to the client.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Decision is the outcome of a query-moderation check. Blocked implies empty
// Results; Reason is set only when blocked. Source tags which backend produced
// the results ("curated-tools" when the classifier answered directly).
type Decision struct {
	Blocked bool     `json:"blocked"`
	Reason  string   `json:"reason,omitempty"`
	Results []Result `json:"results"`
	Source  string   `json:"-"`

	// MatchedTerm and MatchedCategory feed the internal audit trail only;
	// they are never serialized into the response.
	MatchedTerm     string   `json:"-"`
	MatchedCategory Category `json:"-"`
}

// SourceCurated tags results answered from the curated document-tool list.
const SourceCurated = "curated-tools"

const minQueryLength = 3

// Document-utility queries get a curated answer instead of upstream search:
// the queries are benign but upstream results for them are unpredictable.
// A query qualifies when it pairs a utility verb with a document noun.
var (
	docUtilityVerb = regexp.MustCompile(`\b(merge|combine|split|compress|convert|make|create|edit|ocr)\b`)
	docUtilityNoun = regexp.MustCompile(`\b(pdf|pdfs|document|documents|doc|docs)\b`)
)

// QueryClassifier decides whether a search query may proceed. It makes no
// external calls; a nil return means the caller should continue to the
// upstream search adapter.
type QueryClassifier struct {
	lex *Lexicon
}

func NewQueryClassifier(lex *Lexicon) *QueryClassifier {
	return &QueryClassifier{lex: lex}
}

// Classify runs the ordered checks from the moderation policy, short-circuiting
// on the first hit: minimum length, category-tagged lexicon match, explicit
// adult-site markers, then the document-utility carve-out.
func (c *QueryClassifier) Classify(rawQuery string) *Decision {
	rawQuery = strings.TrimSpace(rawQuery)
	if utf8.RuneCountInString(rawQuery) < minQueryLength {
		return &Decision{Blocked: true, Reason: "Query too short", Results: []Result{}}
	}

	norm := Normalize(rawQuery)

	if d := c.matchLexicon(rawQuery, norm); d != nil {
		return d
	}

	if c.lex.ContainsAdultMarker(rawQuery) ||
		c.lex.ContainsAdultMarker(norm.Canonical) ||
		c.lex.ContainsAdultMarker(norm.Compact) {
		return &Decision{
			Blocked: true,
			Reason:  "Query contains blocked site or adult content",
			Results: []Result{},
		}
	}

	if isDocumentUtilityQuery(rawQuery) || isDocumentUtilityQuery(norm.Canonical) {
		return &Decision{
			Blocked: false,
			Results: curatedDocumentTools(),
			Source:  SourceCurated,
		}
	}

	return nil
}

func (c *QueryClassifier) matchLexicon(rawQuery string, norm Normalized) *Decision {
	hit := c.lex.queryAlt != nil &&
		(c.lex.queryAlt.MatchString(rawQuery) || c.lex.queryAlt.MatchString(norm.Canonical))
	if !hit {
		for _, e := range c.lex.queryTerms {
			if compactMatch(norm, e.Term) {
				hit = true
				break
			}
		}
	}
	if !hit {
		return nil
	}

	// Identify the first matching term so the reason can name its category.
	for i, e := range c.lex.queryTerms {
		p := c.lex.queryPatterns[i]
		if p.MatchString(rawQuery) || p.MatchString(norm.Canonical) ||
			compactMatch(norm, e.Term) {
			return &Decision{
				Blocked:         true,
				Reason:          "Query blocked: " + e.Category.Reason(),
				Results:         []Result{},
				MatchedTerm:     e.Term,
				MatchedCategory: e.Category,
			}
		}
	}

	// Alternation hit but no individual term identified; keep failing safe.
	return &Decision{
		Blocked:         true,
		Reason:          "Query blocked: " + CategoryObfuscated.Reason(),
		Results:         []Result{},
		MatchedCategory: CategoryObfuscated,
	}
}

func isDocumentUtilityQuery(q string) bool {
	n := strings.ToLower(q)
	return docUtilityVerb.MatchString(n) && docUtilityNoun.MatchString(n)
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// compactMatch catches terms whose spacing was altered, either split across
// tokens ("s e x") or typed with the internal space removed ("selfharm").
// A canonical token that strictly contains the term defers to the
// word-boundary patterns, so an embedded substring ("classification" / "ass")
// must not trip; a token equal to the de-spaced term is the term and blocks.
func compactMatch(norm Normalized, term string) bool {
	t := stripSpaces(strings.ToLower(term))
	if t == "" || !strings.Contains(norm.Compact, t) {
		return false
	}
	for _, tok := range strings.Fields(norm.Canonical) {
		if strings.Contains(tok, t) && tok != t {
			return false
		}
	}
	return true
}

func curatedDocumentTools() []Result {
	return []Result{
		{
			Title:   "Merge PDFs - Smallpdf",
			URL:     "https://smallpdf.com/merge-pdf",
			Content: "Upload PDF files, arrange pages, and download your merged PDF. Always ask a parent before uploading private files.",
		},
		{
			Title:   "Merge PDF - iLovePDF",
			URL:     "https://www.ilovepdf.com/merge_pdf",
			Content: "Combine multiple PDFs into one; no account needed for basic merges.",
		},
		{
			Title:   "PDFsam Basic (Desktop)",
			URL:     "https://pdfsam.org/",
			Content: "Free open-source desktop tool to split and merge PDFs without uploading files. Good for privacy-minded usage.",
		},
		{
			Title:   "Adobe: Merge PDF Online",
			URL:     "https://www.adobe.com/acrobat/online/merge-pdf.html",
			Content: "Trusted provider with an online merge tool and additional PDF features.",
		},
	}
}
