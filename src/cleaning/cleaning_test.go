package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUpper(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase", "albert heijn", "ALBERT HEIJN"},
		{"diacritics stripped", "Café René", "CAFE RENE"},
		{"non ascii dropped", "SHOP € STORE", "SHOP STORE"},
		{"whitespace collapsed", "  A  \t B \n C ", "A B C"},
		{"digits and punctuation kept", "GEA, BETAALPAS 12:30", "GEA, BETAALPAS 12:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeUpper(tt.in))
		})
	}
}

func TestCleanBasic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"digits removed", "ALBERT HEIJN 1573", "ALBERT HEIJN"},
		{"punctuation removed", "BEA, BETAALPAS.", "BEA BETAALPAS"},
		{"diacritics then filter", "Crédit 100%", "CREDIT"},
		{"only noise yields empty", "12:34.56", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanBasic(tt.in))
		})
	}
}

func TestRemoveNoiseTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"standalone token removed", "SEPA OVERBOEKING ALBERT HEIJN", "ALBERT HEIJN"},
		{"token inside word kept", "NL NLABC", "NLABC"},
		{"multi word token removed", "AMRO BANK NV SAVINGS", "SAVINGS"},
		{"vocabulary only yields empty", "SEPA IDEAL IBAN BIC", ""},
		{"untouched text", "JUMBO UTRECHT", "JUMBO UTRECHT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveNoiseTokens(tt.in))
		})
	}
}

func TestNoiseTokensDeduplicated(t *testing.T) {
	seen := make(map[string]bool, len(NoiseTokens))
	for _, tok := range NoiseTokens {
		assert.NotEmpty(t, tok)
		assert.Equal(t, tok, CleanBasic(tok), "token %q must survive the hard clean unchanged", tok)
		assert.False(t, seen[tok], "token %q appears twice", tok)
		seen[tok] = true
	}
}

func TestRemoveIsolatedLetters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single letters dropped", "J DOE B V", "DOE"},
		{"parenthetical content kept", "X SHOP (A B)", "SHOP (A B)"},
		{"multiple spans", "A ONE (B) C TWO (D E)", "ONE (B) TWO (D E)"},
		{"nothing isolated", "JUMBO", "JUMBO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, removeIsolatedLetters(tt.in))
		})
	}
}

func TestApplyVanVia(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"van keeps order", "TERUGGAVE VAN JAN JANSEN", "TERUGGAVE (JAN JANSEN)"},
		{"via swaps order", "GELD OVERGEMAAKT VIA BUNQ", "BUNQ (GELD OVERGEMAAKT)"},
		{"first marker wins", "LUNCH VAN JAN VIA BUNQ", "LUNCH (JAN VIA BUNQ)"},
		{"empty side unchanged", "VAN JAN", "VAN JAN"},
		{"no marker unchanged", "ALBERT HEIJN", "ALBERT HEIJN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyVanVia(tt.in))
		})
	}
}

func TestCleanForRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"vocabulary and iban noise removed", "SEPA iDEAL IBAN NL99INGB0123 Kenmerk 123 Albert Heijn", "ALBERT HEIJN"},
		{"van after cleanup", "Overboeking teruggave van Jan Jansen", "TERUGGAVE (JAN JANSEN)"},
		{"pure noise yields empty", "SEPA OVERBOEKING IBAN BIC 123", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanForRules(tt.in))
		})
	}
}

func TestCleanDescriptionFallsBackToGenericPipeline(t *testing.T) {
	// No extractor claims this layout, so the generic rules pipeline runs.
	got := CleanDescription("SEPA Overboeking IBAN NL99INGB0123 Jumbo Utrecht")
	assert.Equal(t, "JUMBO UTRECHT", got)
}

func TestCleanDescriptionIsTotal(t *testing.T) {
	for _, in := range []string{"", "   ", "€€€", "12345", "...,,,"} {
		got := CleanDescription(in)
		assert.Equal(t, got, NormalizeUpper(got), "output must already be normalized for %q", in)
	}
}
