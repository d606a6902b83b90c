package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks (Arabic tashkeel, superscript alef,
// accents). Decomposing first also folds the hamza-bearing alef forms
// (أ إ آ) down to the bare alef once their marks are gone.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// letterForms unifies the Arabic letter variants that do not decompose:
// closing ta (ta marbuta) to open ha, and alef maqsura to ya.
var letterForms = strings.NewReplacer(
	"ة", "ه",
	"ى", "ي",
)

// Normalize canonicalizes raw text: strips diacritics, unifies Arabic letter
// forms, maps Arabic-Indic digits to ASCII digits, collapses whitespace and
// lowercases. Pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s, _, err := transform.String(stripMarks, text)
	if err != nil {
		// The chain only drops runes; it cannot fail on valid UTF-8.
		s = text
	}

	s = letterForms.Replace(s)

	s = strings.Map(func(r rune) rune {
		if r >= '٠' && r <= '٩' {
			return '0' + (r - '٠')
		}
		return r
	}, s)

	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits normalized text on word boundaries. A token is a maximal run
// of letters, digits or underscores in any script.
func Tokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
