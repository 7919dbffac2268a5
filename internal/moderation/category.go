package moderation

// Category labels a banned term. The set is closed and defined at build time;
// reason strings are what the client sees, so they name the category without
// ever echoing the matched term.
type Category string

const (
	CategorySexual          Category = "sexual"
	CategoryDrugs           Category = "drugs"
	CategoryViolence        Category = "violence"
	CategoryWeapons         Category = "weapons"
	CategoryGambling        Category = "gambling"
	CategoryExtremism       Category = "extremism"
	CategoryPolitical       Category = "political"
	CategoryIllicit         Category = "illicit-activity"
	CategorySensitiveHealth Category = "sensitive-health"
	CategorySelfHarm        Category = "self-harm"
	CategoryAbuse           Category = "abuse"
	CategoryObfuscated      Category = "obfuscated"
)

var categoryReasons = map[Category]string{
	CategorySexual:          "sexual content",
	CategoryDrugs:           "drugs",
	CategoryViolence:        "violent content",
	CategoryWeapons:         "weapons",
	CategoryGambling:        "gambling",
	CategoryExtremism:       "extremism",
	CategoryPolitical:       "political content",
	CategoryIllicit:         "illicit activity",
	CategorySensitiveHealth: "sensitive health",
	CategorySelfHarm:        "self-harm content",
	CategoryAbuse:           "abusive language",
	CategoryObfuscated:      "blocked content",
}

// Reason returns the human-facing label used in block reasons.
func (c Category) Reason() string {
	if r, ok := categoryReasons[c]; ok {
		return r
	}
	return "blocked content"
}
