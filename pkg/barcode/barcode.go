// Package barcode normaliza los identificadores físicos (número de serie, etiqueta) que
// llegan desde escáneres o digitación manual.
package barcode

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Normalize quita espacios, convierte caracteres de ancho completo (algunos escáneres los
// emiten) a su forma estándar y pasa a mayúsculas. "  sn-00１a " -> "SN-001A".
func Normalize(code string) string {
	folded := width.Fold.String(code)
	folded = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
	// Un Caser guarda estado: no se comparte entre goroutines.
	return cases.Upper(language.Und).String(folded)
}

// NormalizePtr aplica Normalize y devuelve nil si el resultado queda vacío.
func NormalizePtr(code *string) *string {
	if code == nil {
		return nil
	}
	n := Normalize(*code)
	if n == "" {
		return nil
	}
	return &n
}
