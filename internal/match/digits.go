// Package match implements the text-matching core of the verification
// pipeline: digit normalization, remark location and amount disambiguation
// over OCR annotations. Everything here is pure and deterministic so the
// matching rules can be tested without any external service.
package match

import "strings"

// Digits reduces s to its decimal digits, preserving their original order.
// Everything else (letters, spaces, punctuation, currency symbols) is
// dropped. OCR output is compared exclusively in this canonical form.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
