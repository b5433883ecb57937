// Package textutil normalización de texto para búsquedas insensibles a
// mayúsculas y diacríticos ("almacén" y "ALMACEN" comparan igual).
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize devuelve el texto en minúsculas y sin marcas diacríticas.
// Ante una secuencia inválida devuelve la entrada en minúsculas.
func Normalize(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Matches indica si needle aparece dentro de haystack tras normalizar ambos.
func Matches(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Normalize(haystack), Normalize(needle))
}
