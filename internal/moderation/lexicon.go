package moderation

import (
	"fmt"
	"regexp"
	"strings"
)

// TermEntry pairs a surface form with its category. Multiple surface forms
// may map to the same category (synonyms, regional variants, obfuscated
// spellings).
type TermEntry struct {
	Term     string
	Category Category
}

// Lexicon holds the banned-term tables. It is built once at startup and never
// mutated, so concurrent lookups need no locking.
//
// Two tables are kept deliberately separate: the chat table feeds the in-place
// masking filter and tolerates false positives differently from the query
// table, which blocks an entire search. Both share the Category type.
type Lexicon struct {
	chatTerms  []TermEntry
	queryTerms []TermEntry

	// Markers for explicit adult sites/keywords. Matched by containment, not
	// word boundary: a hostname like "xyzporn.example" must still trip.
	adultMarkers []string

	chatPatterns  []*regexp.Regexp
	queryPatterns []*regexp.Regexp
	queryAlt      *regexp.Regexp
}

// NewLexicon validates and compiles the term tables. Every term must be
// non-empty and produce a valid word-boundary pattern after escaping.
func NewLexicon(chat, query []TermEntry, adultMarkers []string) (*Lexicon, error) {
	lex := &Lexicon{
		chatTerms:    chat,
		queryTerms:   query,
		adultMarkers: adultMarkers,
	}

	for _, e := range chat {
		p, err := wordPattern(e.Term)
		if err != nil {
			return nil, err
		}
		lex.chatPatterns = append(lex.chatPatterns, p)
	}

	var alts []string
	for _, e := range query {
		p, err := wordPattern(e.Term)
		if err != nil {
			return nil, err
		}
		lex.queryPatterns = append(lex.queryPatterns, p)
		alts = append(alts, regexp.QuoteMeta(e.Term))
	}

	if len(alts) > 0 {
		alt, err := regexp.Compile(`(?i)\b(` + strings.Join(alts, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("compile alternation: %w", err)
		}
		lex.queryAlt = alt
	}

	return lex, nil
}

// DefaultLexicon returns the built-in term tables.
func DefaultLexicon() *Lexicon {
	lex, err := NewLexicon(defaultChatTerms(), defaultQueryTerms(), defaultAdultMarkers())
	if err != nil {
		// The built-in tables are static; a compile failure is a programming
		// error, not a runtime condition.
		panic(err)
	}
	return lex
}

// AdultMarkers returns the adult-site/keyword marker list. Shared between the
// query classifier and the result sanitizer.
func (l *Lexicon) AdultMarkers() []string { return l.adultMarkers }

// ContainsAdultMarker reports whether s contains any adult marker, matched on
// the lowercased input by plain containment.
func (l *Lexicon) ContainsAdultMarker(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range l.adultMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func wordPattern(term string) (*regexp.Regexp, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("empty lexicon term")
	}
	p, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("compile term %q: %w", term, err)
	}
	return p, nil
}

func tagged(cat Category, terms ...string) []TermEntry {
	entries := make([]TermEntry, len(terms))
	for i, t := range terms {
		entries[i] = TermEntry{Term: t, Category: cat}
	}
	return entries
}

func defaultChatTerms() []TermEntry {
	var all []TermEntry
	all = append(all, tagged(CategorySexual,
		"sex", "sexual", "porn", "porno", "nude", "naked",
		"boobs", "breasts", "penis", "vagina", "dick", "cock",
		"pussy", "ass", "butt", "blowjob", "handjob", "oral",
		"cum", "semen", "fuck", "fucking", "fucked",
		"screw", "horny", "kinky", "strip",
		"masturbate", "masturbation", "orgasm", "xxx",
	)...)
	all = append(all, tagged(CategoryDrugs,
		"drugs", "drug", "weed", "marijuana", "ganja", "hash",
		"charas", "cocaine", "heroin", "lsd", "mdma", "ecstasy",
		"meth", "alcohol", "beer", "vodka", "whiskey", "rum",
		"smoking", "cigarette", "tobacco", "joint", "high",
		"nasha", "nashe",
	)...)
	all = append(all, tagged(CategoryViolence,
		"kill", "killing", "murder", "dead", "death", "die",
		"stab", "shoot", "gun", "knife", "bomb", "fight",
		"punch", "hit", "slap", "blood", "hurt", "injure",
		"attack", "violence", "weapon", "maar", "maarna",
		"marunga", "mar dunga",
	)...)
	all = append(all, tagged(CategoryAbuse,
		"idiot", "stupid", "dumb", "moron", "loser", "ugly",
		"hate", "shut up", "bastard", "bloody",
		"crazy", "mad", "fool", "asshole", "bitch", "duffer",
		// Roman-Hindi variants
		"chutiya", "chutya",
		"madarchod", "madharchod",
		"behenchod", "bhenchod",
		"bhosdike", "bhosdi",
		"gandu", "gaand",
		"harami", "kamina",
		"kutta", "kutti",
		"saala", "saali",
		"randi", "lodu", "loda",
		"mc", "bc",
	)...)
	all = append(all, tagged(CategorySelfHarm,
		"suicide", "self harm", "kill myself",
		"die myself", "cut myself",
		"end my life", "marna chahta",
		"marna chahti",
	)...)
	all = append(all, tagged(CategoryObfuscated,
		"f*ck", "f**k", "fu*k",
		"sh*t", "b!tch", "a**hole",
		"ch*d", "ch*tiya",
	)...)
	return all
}

func defaultQueryTerms() []TermEntry {
	var all []TermEntry
	all = append(all, tagged(CategorySexual,
		"sex", "porn", "porno", "pornography", "xxx", "nude", "naked",
		"boobs", "breasts", "vagina", "penis", "dick", "blowjob", "handjob",
		"masturbation", "orgasm", "fetish", "hentai", "onlyfans", "camgirl",
		"escort", "prostitution",
	)...)
	all = append(all, tagged(CategoryViolence,
		"kill", "murder", "death", "blood", "gore", "torture", "rape",
		"assault", "abuse", "shooting", "stabbing", "bomb", "explosion",
	)...)
	all = append(all, tagged(CategorySelfHarm,
		"suicide", "self harm", "cutting",
	)...)
	all = append(all, tagged(CategoryWeapons,
		"gun", "pistol", "rifle", "shotgun", "sniper", "knife", "dagger",
		"sword", "grenade", "missile", "weapon", "ammunition", "bullets",
	)...)
	all = append(all, tagged(CategoryDrugs,
		"drug", "drugs", "weed", "marijuana", "cannabis", "cocaine", "heroin",
		"lsd", "ecstasy", "meth", "alcohol", "beer", "wine", "vodka",
		"whiskey", "smoking", "cigarette", "vape", "tobacco",
	)...)
	all = append(all, tagged(CategoryGambling,
		"gambling", "casino", "bet", "betting", "poker", "blackjack",
		"roulette", "lottery", "jackpot", "slots",
	)...)
	all = append(all, tagged(CategoryExtremism,
		"terror", "terrorism", "terrorist", "war", "army", "isis", "taliban",
		"nazi", "hitler", "extremism",
	)...)
	all = append(all, tagged(CategoryPolitical,
		"politics", "election", "vote", "voting", "government",
		"prime minister", "president", "bjp", "congress", "republican",
		"democrat", "protest", "rally",
	)...)
	all = append(all, tagged(CategoryIllicit,
		"hack", "hacking", "crack", "piracy", "cheat codes", "darknet",
		"deep web", "scam", "fraud", "fake money",
	)...)
	all = append(all, tagged(CategorySensitiveHealth,
		"depression", "anxiety disorder", "panic attack", "eating disorder",
		"bulimia", "anorexia",
	)...)
	return all
}

func defaultAdultMarkers() []string {
	return []string{
		"porn", "pornhub", "xvideos", "xnxx", "youporn", "redtube",
		"tube8", "brazzers", "xhamster",
		"sex", "xxx", "adult", "onlyfans", "camgirl", "cam", "escort",
		"prostitution",
	}
}
