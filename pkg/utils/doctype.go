package utils

import "strings"

// docTypeSynonyms maps each canonical document type to the lower-cased
// fragments accepted as a match. Uploads frequently arrive with free-form
// type strings ("reg cert", "AW certificate", "mech signoff"), so matching
// is a substring check rather than equality.
var docTypeSynonyms = map[string][]string{
	"registration":       {"registration", "reg"},
	"airworthiness":      {"airworthiness", "aw cert"},
	"logbook":            {"logbook", "log book", "maintenance log"},
	"mechanic_statement": {"mechanic_statement", "mechanic statement", "signoff", "sign-off", "statement"},
	"insurance":          {"insurance"},
	"permit":             {"permit"},
	"weight_balance":     {"weight_balance", "weight and balance", "w&b"},
}

// MatchesDocType reports whether a stored document type string satisfies the
// canonical required type, using lower-cased substring matching against the
// synonym list.
func MatchesDocType(docType, required string) bool {
	needle := strings.ToLower(strings.TrimSpace(docType))
	if needle == "" {
		return false
	}
	if needle == required {
		return true
	}
	for _, syn := range docTypeSynonyms[required] {
		if strings.Contains(needle, syn) {
			return true
		}
	}
	return false
}
