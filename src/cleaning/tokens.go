package cleaning

// rawNoiseTokens is the boilerplate vocabulary removed from descriptions
// before rule matching: SEPA scheme words, bank and BIC codes, payment-app
// markers and recurring transfer noise seen in ABN AMRO exports. Order is
// kept as-is; earlier (more specific, multi-word) entries are removed first.
var rawNoiseTokens = []string{
	// bank and country codes
	"IBAN", "BIC", "ABNA", "ABNANL", "INGB", "RABO", "COBA", "CITI", "NL",

	// SEPA / Tikkie boilerplate
	"SEPA", "OVERBOEKING", "INCASSO", "IDEAL", "BETAALVERZOEK", "A NAAM",
	"NAAM", "IBAN", "BIC", "ABNANL2A", "KENMERK", "NOTPROVIDED", "ECOM",
	"APPLE", "PAY", "BEA", "PAS NR", "A NAME", "ID", "BETAALPAS", "CSID",
	"NAME", "TIKKIE", "OMSCHRIJVING", "TIKKIE ID", "VIA TIKKIE", "TERUGBOEKING",
	"TRANSACTIE", "AAB", "INZ", "ABNA", "ABN", "RABO", "INGB", "ALGEMEEN",
	"MARF E DEUT DEUT", "LU BCIRLULL", "DOORLOPEND", "ZZZ", "E DEUT",
	"CFROM TO DIRECT SAVINGS FOR INTEREST RATES PLEASE VISIT WWW MRO RENTE",
	"AMRO BANK NV", "FACTUUR", "BE TRWIBEB", "OMSCHRIJVING", "PAKKET",
	"PAKKETPOLISNR", "BNGH", "KENMERK", "MACHTIGING", "EREF", "REMI", "ADYB",
	"BOFA BOFA", "AXXX", "MARF A", "DE NTSBDEB XXX", "LU PPLXLUL XXX", "TRTP",
	"INCASSANT", "PERIODE", "NR H IB PVV", "COAXX", "ORDP RKJX E DR R",
	"TERMIJN TERMIJN (VERVALDATUM MEI BETALINGSREGELING DEUT)", "DUBLIN",
	"LAND", "NL", "ST", "CCV", "TVM", "CSO", "BCK", "NX",
}

// NoiseTokens is the working vocabulary: every raw entry passed through the
// hard cleaning pass (letters and spaces only), deduplicated keeping first
// occurrence. The hard pass keeps tokens consistent with the text they are
// matched against, which has already been reduced to the same alphabet.
var NoiseTokens = buildNoiseTokens()

func buildNoiseTokens() []string {
	seen := make(map[string]bool, len(rawNoiseTokens))
	out := make([]string, 0, len(rawNoiseTokens))
	for _, t := range rawNoiseTokens {
		cleaned := CleanBasic(t)
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		out = append(out, cleaned)
	}
	return out
}
