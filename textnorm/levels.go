package textnorm

import "github.com/manhaj/coursesearch/core"

// Level keyword sets, keyed by normalized token. Checked in tier order so a
// query naming two levels resolves to the lowest one mentioned.
var (
	beginnerWords = normalizeSet(
		"مبتدئ", "مبتدا", "مبتدئين", "للمبتدئين",
		"beginner", "beginners", "novice",
	)
	intermediateWords = normalizeSet(
		"متوسط", "متوسطة", "للمتوسط",
		"intermediate",
	)
	advancedWords = normalizeSet(
		"متقدم", "متقدمين", "للمتقدمين", "محترف",
		"advanced", "expert", "professional",
	)
)

func normalizeSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[Normalize(w)] = true
	}
	return set
}

func isLevelKeyword(token string) bool {
	return beginnerWords[token] || intermediateWords[token] || advancedWords[token]
}

// ParseExplicitLevel detects a skill level explicitly requested in the query.
// Matching is per whole token of the normalized text, not substring, so
// "intermediate sql" matches but "python3" does not accidentally.
func ParseExplicitLevel(text string) (core.Level, bool) {
	tokens := Tokens(Normalize(text))

	for _, set := range []struct {
		words map[string]bool
		level core.Level
	}{
		{beginnerWords, core.LevelBeginner},
		{intermediateWords, core.LevelIntermediate},
		{advancedWords, core.LevelAdvanced},
	} {
		for _, t := range tokens {
			if set.words[t] {
				return set.level, true
			}
		}
	}
	return core.LevelIntermediate, false
}

// ParseQuery builds the parsed query object used by the router: normalized
// text, canonical variants and the explicitly requested level, if any.
func ParseQuery(raw string) core.Query {
	level, hasLevel := ParseExplicitLevel(raw)
	q := core.Query{
		Raw:        raw,
		Normalized: Normalize(raw),
		Variants:   CanonicalVariants(raw),
		HasLevel:   hasLevel,
	}
	if hasLevel {
		q.Level = level
	}
	return q
}
