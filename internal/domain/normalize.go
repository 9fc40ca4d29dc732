package domain

import "strings"

var accentFolder = strings.NewReplacer(
	"Á", "A",
	"É", "E",
	"Í", "I",
	"Ó", "O",
	"Ú", "U",
)

// NormalizeText canonicalizes free text for comparison: uppercase, accented
// vowels folded to their plain form, "GASOIL" unified to "GAS OIL", and
// whitespace runs collapsed to single spaces. Idempotent and total.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	s = accentFolder.Replace(s)
	s = strings.ReplaceAll(s, "GASOIL", "GAS OIL")
	return strings.Join(strings.Fields(s), " ")
}
