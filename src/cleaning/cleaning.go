// Package cleaning normalizes free-text bank statement descriptions.
//
// Two strictness levels exist. The hard level (CleanBasic) reduces text to
// uppercase letters and spaces and is used for generic display cleanup. The
// soft level (RemoveNoiseTokens) only removes the boilerplate vocabulary and
// keeps digits and punctuation, which the pattern extractors need to locate
// structured sub-fields. CleanDescription is the pipeline entry used by the
// statement transformer.
package cleaning

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	wsRe        = regexp.MustCompile(`\s+`)
	nonLetterRe = regexp.MustCompile(`[^A-Z\s]`)
	lonelyRe    = regexp.MustCompile(`\b[A-Z]\b`)
	parenRe     = regexp.MustCompile(`\([^)]*\)`)

	deaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
)

// tokenRes holds one word-boundary matcher per vocabulary entry, in
// vocabulary order.
var tokenRes = buildTokenRes()

func buildTokenRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(NoiseTokens))
	for _, t := range NoiseTokens {
		res = append(res, regexp.MustCompile(`\b`+regexp.QuoteMeta(t)+`\b`))
	}
	return res
}

// NormalizeUpper uppercases, strips diacritics ("É" -> "E"), drops any
// remaining non-ASCII runes and collapses whitespace. Total: any input,
// including the empty string, yields a valid (possibly empty) result.
func NormalizeUpper(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ToUpper(raw)
	if decomposed, _, err := transform.String(deaccent, s); err == nil {
		s = decomposed
	}
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// CleanBasic is the hard cleaning level: uppercase, diacritics stripped,
// everything outside A-Z and space removed, whitespace collapsed.
func CleanBasic(raw string) string {
	s := NormalizeUpper(raw)
	if s == "" {
		return ""
	}
	s = nonLetterRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// RemoveNoiseTokens removes the boilerplate vocabulary as whole words only:
// a standalone "NL" goes, the "NL" inside "NLABC" stays. Punctuation and
// digits are left untouched.
func RemoveNoiseTokens(s string) string {
	for _, re := range tokenRes {
		s = re.ReplaceAllString(s, " ")
	}
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// removeIsolatedLetters drops single-letter words, leaving parenthetical
// content alone. Parenthesized spans are copied through verbatim; the scan
// runs only on the text between them.
func removeIsolatedLetters(s string) string {
	var b strings.Builder
	last := 0
	for _, span := range parenRe.FindAllStringIndex(s, -1) {
		b.WriteString(lonelyRe.ReplaceAllString(s[last:span[0]], " "))
		b.WriteString(s[span[0]:span[1]])
		last = span[1]
	}
	b.WriteString(lonelyRe.ReplaceAllString(s[last:], " "))
	return strings.TrimSpace(wsRe.ReplaceAllString(b.String(), " "))
}

// applyVanVia rewrites transfer descriptions around the Dutch markers "VAN"
// (from) and "VIA" (through):
//
//	X VAN Y -> X (Y)
//	X VIA Y -> Y (X)
//
// The first marker found wins. When either side is empty the input is
// returned unchanged.
func applyVanVia(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		switch w {
		case "VAN":
			label := strings.Join(words[:i], " ")
			name := strings.Join(words[i+1:], " ")
			if label != "" && name != "" {
				return label + " (" + name + ")"
			}
		case "VIA":
			label := strings.Join(words[i+1:], " ")
			name := strings.Join(words[:i], " ")
			if label != "" && name != "" {
				return label + " (" + name + ")"
			}
		}
	}
	return s
}

// CleanForRules is the generic pipeline used when no pattern extractor
// claims a description: hard clean, vocabulary removal, isolated-letter
// removal, VAN/VIA labeling.
func CleanForRules(raw string) string {
	s := CleanBasic(raw)
	if s == "" {
		return ""
	}
	s = RemoveNoiseTokens(s)
	s = removeIsolatedLetters(s)
	return applyVanVia(s)
}

// CleanDescription produces the canonical cleaned description for a raw
// statement detail line. Bank-specific extractors run first, in priority
// order, on the soft-normalized text; the first one that extracts
// successfully short-circuits the rest. Everything else goes through
// CleanForRules.
func CleanDescription(raw string) string {
	s := NormalizeUpper(raw)
	if s == "" {
		return ""
	}
	for _, ex := range extractors {
		if !ex.trigger(s) {
			continue
		}
		if out, ok := ex.apply(s); ok {
			return strings.TrimSpace(wsRe.ReplaceAllString(out, " "))
		}
	}
	return CleanForRules(raw)
}
