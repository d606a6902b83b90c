package textnorm

import "regexp"

// Filler words stripped when deriving the noise-free variant of a query.
// These carry intent ("I want to learn...") but no subject.
var fillerWords = map[string]bool{
	"انا": true, "عاوز": true, "عايز": true, "اريد": true, "ابغي": true,
	"بدي": true, "اتعلم": true, "تعلم": true, "تعليمي": true, "محتاج": true,
	"نفسي": true, "لو": true, "سمحت": true, "عاوزه": true, "عايزه": true,
	"في": true, "علي": true, "من": true, "الي": true, "عن": true, "مع": true,
	"بس": true, "فقط": true, "كده": true, "مازلت": true, "مازال": true,
	"لسه": true, "كنت": true, "يعني": true, "دوره": true, "كورس": true,
	"شرح": true,
	"i": true, "want": true, "to": true, "learn": true, "a": true, "the": true,
	"please": true, "course": true, "need": true,
}

// latinTokenRE grabs a latin-script chunk including the symbols technical
// topics use (c#, c++, 3d max, node.js).
var latinTokenRE = regexp.MustCompile(`[a-z0-9][a-z0-9+#.\- ]{0,40}`)

// CanonicalVariants produces up to four canonical rewrites of a query, in
// decreasing fidelity: the normalized text, a noise-word-stripped version,
// the best latin-script chunk if one exists, and the longest remaining
// token. Duplicates and empties are dropped. One of these, not the raw
// query, is what gets embedded or fuzzy-matched downstream.
func CanonicalVariants(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	variants := make([]string, 0, 4)
	seen := make(map[string]bool)
	add := func(v string) {
		if v == "" || seen[v] || len(variants) == 4 {
			return
		}
		seen[v] = true
		variants = append(variants, v)
	}

	add(normalized)

	stripped := stripNoise(normalized)
	add(stripped)

	if latin := trimVariant(latinTokenRE.FindString(normalized)); latin != "" {
		add(latin)
	}

	add(longestToken(stripped))

	return variants
}

func stripNoise(normalized string) string {
	tokens := Tokens(normalized)
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if fillerWords[t] || isLevelKeyword(t) {
			continue
		}
		kept = append(kept, t)
	}
	out := ""
	for i, t := range kept {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}

func longestToken(text string) string {
	best := ""
	for _, t := range Tokens(text) {
		if len([]rune(t)) > len([]rune(best)) {
			best = t
		}
	}
	return best
}

// trimVariant removes leading/trailing separator characters the latin regex
// is allowed to swallow.
func trimVariant(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '-' || s[start] == '.') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '-' || s[end-1] == '.') {
		end--
	}
	return s[start:end]
}
