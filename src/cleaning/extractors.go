package cleaning

import (
	"regexp"
	"strings"
)

// A patternExtractor turns one known statement layout into a short
// "LABEL (NAME)"-style description. trigger is a cheap presence check;
// apply does the positional parsing and reports false when a delimiter it
// needs is missing, so the input falls through to the next extractor.
type patternExtractor struct {
	name    string
	trigger func(string) bool
	apply   func(string) (string, bool)
}

// extractors in priority order. Specific layouts come before generic ones:
// a Tikkie payment also contains "NAAM:", so the Tikkie extractors must get
// the first look.
var extractors = []patternExtractor{
	{"tikkie-id", triggerContains("TIKKIE ID"), extractTikkieID},
	{"tikkie-sepa-ideal", tikkieSepaIdealRe.MatchString, extractTikkieSepaIdeal},
	{"card-payment", triggerContains("APPLE PAY"), extractCardPayment},
	{"slash-name", triggerContains("/NAME/"), extractSlashName},
	{"naam-machtiging", triggerContains("NAAM:"), extractNaamSpan("MACHTIGING:")},
	{"naam-omschrijving", triggerContains("NAAM:"), extractNaamSpan("OMSCHRIJVING:")},
	{"hypotheek", triggerContains("ABN AMRO BANK"), extractHypotheek},
	{"credit-interest", triggerContains("CREDIT INTEREST"), extractCreditInterest},
	{"gea-betaalpas", triggerContains("GEA, BETAALPAS"), extractGeaBetaalpas},
	{"basic-package", triggerContains("BASIC PACKAGE"), extractBasicPackage},
	{"revolut", triggerHasPrefix("REVOLUT"), extractRevolut},
}

var (
	tikkieSepaIdealRe = regexp.MustCompile(`SEPA\s+IDEAL.*VIA\s+TIKKIE`)
	digitRunRe        = regexp.MustCompile(`\d+`)
	ibanChunkRe       = regexp.MustCompile(`\bNL[0-9A-Z]{6,}\b`)
	labelWordRe       = regexp.MustCompile(`\b[A-Z]{3,}\b`)
	punctRe           = regexp.MustCompile(`[.,]`)
)

func triggerContains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func triggerHasPrefix(prefix string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, prefix) }
}

// extractTikkieID parses the classic Tikkie layout:
//
//	... TIKKIE ID 012345, KART, VAN JOHN DOE, IBAN ... -> KART (JOHN DOE)
//
// Delimiters are located positionally; any missing one aborts.
func extractTikkieID(s string) (string, bool) {
	_, after, found := strings.Cut(s, "TIKKIE ID")
	if !found {
		return "", false
	}
	after = strings.TrimSpace(after)

	_, after, found = strings.Cut(after, ", ")
	if !found {
		return "", false
	}
	after = strings.TrimSpace(after)

	label, rest, found := strings.Cut(after, ", VAN ")
	if !found {
		return "", false
	}
	label = strings.TrimSpace(label)

	name := rest
	if cut, _, ok := strings.Cut(rest, ", "); ok {
		name = cut
	}
	name = strings.TrimSpace(name)

	if label == "" || name == "" {
		return "", false
	}
	return label + " (" + name + ")", true
}

// extractTikkieSepaIdeal parses the SEPA iDEAL variant of a Tikkie payment.
// The payer name sits between "NAAM:" and "VIA TIKKIE"; the label is the
// first plausible word of the "OMSCHRIJVING:" span after digits and
// IBAN-shaped chunks are dropped.
func extractTikkieSepaIdeal(s string) (string, bool) {
	naamIdx := strings.Index(s, "NAAM:")
	if naamIdx < 0 {
		return "", false
	}
	nameStart := naamIdx + len("NAAM:")
	viaIdx := strings.Index(s[nameStart:], "VIA TIKKIE")
	if viaIdx < 0 {
		return "", false
	}
	name := strings.TrimSpace(s[nameStart : nameStart+viaIdx])

	omsIdx := strings.Index(s[nameStart+viaIdx:], "OMSCHRIJVING:")
	if omsIdx < 0 {
		return "", false
	}
	span := s[nameStart+viaIdx+omsIdx+len("OMSCHRIJVING:"):]
	if kenIdx := strings.Index(span, "KENMERK:"); kenIdx >= 0 {
		span = span[:kenIdx]
	}

	span = digitRunRe.ReplaceAllString(span, " ")
	span = ibanChunkRe.ReplaceAllString(span, " ")

	label := ""
	for _, w := range labelWordRe.FindAllString(span, -1) {
		if !sepaStopWords[w] {
			label = w
			break
		}
	}
	if label == "" || name == "" {
		return "", false
	}
	return label + " (" + name + ")", true
}

var sepaStopWords = map[string]bool{
	"ABNA": true, "IBAN": true, "BIC": true, "SEPA": true, "IDEAL": true,
	"TIKKIE": true, "VIA": true, "KENMERK": true, "OMSCHRIJVING": true,
	"NL": true,
}

// extractCardPayment strips point-of-sale prefixes from card and wallet
// payments and truncates at the ",PAS" card-number marker.
func extractCardPayment(s string) (string, bool) {
	for _, p := range []string{"BEA, APPLE PAY ", "ECOM, APPLE PAY "} {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	if idx := strings.Index(s, ",PAS"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// extractSlashName pulls the counterparty out of /NAME/.../ delimited SEPA
// text.
func extractSlashName(s string) (string, bool) {
	_, after, found := strings.Cut(s, "/NAME/")
	if !found {
		return "", false
	}
	if idx := strings.Index(after, "/"); idx >= 0 {
		after = after[:idx]
	}
	after = strings.TrimSpace(strings.Trim(after, " /"))
	return after, after != ""
}

// extractNaamSpan extracts the text between "NAAM:" and the given end
// marker (direct-debit mandates use "MACHTIGING:", transfers
// "OMSCHRIJVING:").
func extractNaamSpan(end string) func(string) (string, bool) {
	return func(s string) (string, bool) {
		naamIdx := strings.Index(s, "NAAM:")
		if naamIdx < 0 {
			return "", false
		}
		start := naamIdx + len("NAAM:")
		endIdx := strings.Index(s[start:], end)
		if endIdx < 0 {
			return "", false
		}
		name := strings.TrimSpace(s[start : start+endIdx])
		return name, name != ""
	}
}

// extractHypotheek maps the bank's own legal name, with or without
// punctuation, onto the fixed mortgage label.
func extractHypotheek(s string) (string, bool) {
	norm := strings.TrimSpace(wsRe.ReplaceAllString(punctRe.ReplaceAllString(s, " "), " "))
	if norm != "ABN AMRO BANK NV" {
		return "", false
	}
	return "ABN AMRO BANK NV - HYPOTHEEK", true
}

// extractCreditInterest truncates interest lines right after the phrase.
func extractCreditInterest(s string) (string, bool) {
	idx := strings.Index(s, "CREDIT INTEREST")
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(s[:idx+len("CREDIT INTEREST")]), true
}

// extractGeaBetaalpas keeps the merchant part of an ATM/debit-card line.
func extractGeaBetaalpas(s string) (string, bool) {
	if !strings.HasPrefix(s, "GEA, BETAALPAS") {
		return "", false
	}
	idx := strings.Index(s, ",PAS")
	if idx < 0 {
		return "", false
	}
	out := strings.TrimSpace(strings.TrimPrefix(s[:idx], "GEA, BETAALPAS"))
	return out, out != ""
}

func extractBasicPackage(s string) (string, bool) {
	if !strings.Contains(s, "BASIC PACKAGE") {
		return "", false
	}
	return "BASIC PACKAGE", true
}

func extractRevolut(s string) (string, bool) {
	if !strings.HasPrefix(s, "REVOLUT") {
		return "", false
	}
	return "REVOLUT", true
}
