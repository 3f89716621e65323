package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTikkieID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			"classic layout",
			"SEPA OVERBOEKING IBAN: NL12ABNA0123456789 TIKKIE ID 012345678, LUNCH, VAN JOHN DOE, NL12ABNA0123456789",
			"LUNCH (JOHN DOE)", true,
		},
		{"missing van delimiter", "TIKKIE ID 012345678, LUNCH, JOHN DOE", "", false},
		{"missing first comma", "TIKKIE ID 012345678", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractTikkieID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractTikkieSepaIdeal(t *testing.T) {
	in := "SEPA IDEAL IBAN: NL13ABNA0123456789 BIC: ABNANL2A NAAM: JANE ROE VIA TIKKIE OMSCHRIJVING: 012345 0123456789 NL13ABNA0123456789 DINNER KENMERK: 29-01-2024 12:00 012345"
	got, ok := extractTikkieSepaIdeal(in)
	assert.True(t, ok)
	assert.Equal(t, "DINNER (JANE ROE)", got)

	_, ok = extractTikkieSepaIdeal("SEPA IDEAL NAAM: JANE ROE VIA TIKKIE")
	assert.False(t, ok, "missing OMSCHRIJVING aborts")
}

func TestExtractCardPayment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bea prefix and pas marker", "BEA, APPLE PAY ALBERT HEIJN 1573 AMSTERDAM,PAS123 NR:456", "ALBERT HEIJN 1573 AMSTERDAM"},
		{"ecom prefix", "ECOM, APPLE PAY BOL COM,PAS123", "BOL COM"},
		{"no pas marker keeps rest", "BEA, APPLE PAY JUMBO UTRECHT", "JUMBO UTRECHT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractCardPayment(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSlashName(t *testing.T) {
	got, ok := extractSlashName("/TRTP/SEPA OVERBOEKING/IBAN/NL12ABNA0123456789/NAME/ACME CORP/REMI/INVOICE 42/")
	assert.True(t, ok)
	assert.Equal(t, "ACME CORP", got)

	_, ok = extractSlashName("SEPA OVERBOEKING ACME CORP")
	assert.False(t, ok)
}

func TestExtractNaamSpan(t *testing.T) {
	machtiging := extractNaamSpan("MACHTIGING:")
	got, ok := machtiging("SEPA INCASSO ALGEMEEN DOORLOPEND INCASSANT: NL99ZZZ012345 NAAM: ENERGIE BV MACHTIGING: 0123 OMSCHRIJVING: TERMIJN 5")
	assert.True(t, ok)
	assert.Equal(t, "ENERGIE BV", got)

	omschrijving := extractNaamSpan("OMSCHRIJVING:")
	got, ok = omschrijving("SEPA OVERBOEKING IBAN: NL12ABNA0123456789 NAAM: J DOE OMSCHRIJVING: RENT MARCH")
	assert.True(t, ok)
	assert.Equal(t, "J DOE", got)

	_, ok = machtiging("NAAM: ENERGIE BV OMSCHRIJVING: TERMIJN")
	assert.False(t, ok, "end marker missing aborts so the next extractor can try")
}

func TestExtractHypotheek(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want string
	}{
		{"ABN AMRO BANK NV", true, "ABN AMRO BANK NV - HYPOTHEEK"},
		{"ABN AMRO BANK NV.", true, "ABN AMRO BANK NV - HYPOTHEEK"},
		{"ABN AMRO BANK NV BASIC PACKAGE", false, ""},
	}
	for _, tt := range tests {
		got, ok := extractHypotheek(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestExtractCreditInterest(t *testing.T) {
	got, ok := extractCreditInterest("CREDIT INTEREST CFROM TO DIRECT SAVINGS 0,42")
	assert.True(t, ok)
	assert.Equal(t, "CREDIT INTEREST", got)
}

func TestExtractGeaBetaalpas(t *testing.T) {
	got, ok := extractGeaBetaalpas("GEA, BETAALPAS GELDMAAT LEIDSESTRAAT 106,PAS123 NR:789")
	assert.True(t, ok)
	assert.Equal(t, "GELDMAAT LEIDSESTRAAT 106", got)

	_, ok = extractGeaBetaalpas("GEA, BETAALPAS GELDMAAT")
	assert.False(t, ok, "missing ,PAS marker aborts")
}

func TestCleanDescriptionExtractorPriority(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			// Contains both TIKKIE ID and NAAM:, the Tikkie extractor runs first.
			"tikkie id beats naam",
			"SEPA OVERBOEKING NAAM: TIKKIE TIKKIE ID 012345678, LUNCH, VAN JOHN DOE, NL12ABNA0123456789 OMSCHRIJVING: X",
			"LUNCH (JOHN DOE)",
		},
		{
			// MACHTIGING: present, so the mandate variant wins over the
			// OMSCHRIJVING: variant.
			"machtiging beats omschrijving",
			"SEPA Incasso algemeen doorlopend Naam: Energie BV Machtiging: 0123 Omschrijving: Termijn 5",
			"ENERGIE BV",
		},
		{
			"failed extractor falls through",
			"SEPA Overboeking Naam: Energie BV Kenmerk: 42",
			"ENERGIE BV",
		},
		{"basic package normalized", "ABN AMRO BANK NV BASIC PACKAGE 0,90", "BASIC PACKAGE"},
		{"revolut prefix normalized", "Revolut**1234* Amsterdam", "REVOLUT"},
		{"revolut not at start falls through", "Payment to Revolut Ltd", "PAYMENT TO REVOLUT LTD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.raw))
		})
	}
}
