package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var headerStripper = strings.NewReplacer("$", "", ".", "", "_", "")

// NormalizeHeader lowercases s, removes accents, drops "$", "." and "_",
// and trims surrounding whitespace, so "Fecha Oper." becomes "fecha oper"
// and "DESCRIPCIÓN" becomes "descripcion". Normalizing the result again
// is a no-op.
func NormalizeHeader(s string) string {
	s = strings.ToLower(s)
	// Chains carry state, so each call gets its own.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = headerStripper.Replace(s)
	return strings.TrimSpace(s)
}
