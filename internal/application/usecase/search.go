package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText normaliza para búsqueda: sin tildes y sin distinción de mayúsculas ("Câmera" ~ "camera").
// El transformer encadenado guarda estado, por eso se crea en cada llamada.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// matchesSearch indica si term aparece como subcadena en alguno de los campos.
func matchesSearch(term string, fields ...string) bool {
	term = foldText(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(foldText(f), term) {
			return true
		}
	}
	return false
}
