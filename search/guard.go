package search

import (
	"regexp"
	"strings"

	"github.com/manhaj/coursesearch/textnorm"
)

// Opinion patterns in English. Word boundaries are fine here since these are
// ASCII-only.
var opinionEnglish = []*regexp.Regexp{
	regexp.MustCompile(`\bis (this|it) (a )?good\b`),
	regexp.MustCompile(`\b(do you|would you) recommend\b`),
	regexp.MustCompile(`\bworth (it|taking)\b`),
	regexp.MustCompile(`\bshould i\b`),
	regexp.MustCompile(`\bwhat do you think\b`),
	regexp.MustCompile(`\bany (good|recommended)\b`),
}

// Opinion patterns in Arabic, matched as plain substrings over normalized
// text. regexp word boundaries are ASCII-only and useless for Arabic script.
var opinionArabic = normalizedPatterns(
	"تنصح",
	"رايك",
	"كورس كويس",
	"دورة كويسة",
	"هل هو مناسب",
	"هل هي مناسبة",
	"هل الكورس",
	"هل الدورة",
	"ايه احسن",
	"ما افضل",
)

func normalizedPatterns(patterns ...string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = textnorm.Normalize(p)
	}
	return out
}

// IsOpinionWithoutSubject reports whether a query asks for an opinion
// without naming a subject ("do you recommend this?"). A query that matches
// an opinion pattern but still carries keywords ("do you recommend SQL?")
// is not caught: the subject routes normally.
func IsOpinionWithoutSubject(normalized string) bool {
	matched := false
	remainder := normalized
	for _, re := range opinionEnglish {
		if re.MatchString(remainder) {
			matched = true
			remainder = re.ReplaceAllString(remainder, " ")
		}
	}
	for _, pat := range opinionArabic {
		if strings.Contains(remainder, pat) {
			matched = true
			remainder = strings.ReplaceAll(remainder, pat, " ")
		}
	}
	if !matched {
		return false
	}
	return IsGeneric(remainder)
}
