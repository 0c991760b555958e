package match

import "strings"

// vaMarker is the literal virtual-account indicator banks embed in payment
// remarks, e.g. "BCA VA8801234567".
const vaMarker = "VA"

// LocateRemark scans OCR annotation texts for the fragment that carries the
// configured virtual-account number. A fragment qualifies when its digit
// normalization contains accountNumber as a substring and its raw text
// contains the "VA" marker. The first qualifying fragment is returned.
//
// Index 0 is never considered: by OCR convention it holds the whole detected
// text block, which would trivially satisfy both conditions on any advice
// that contains a remark at all.
func LocateRemark(texts []string, accountNumber string) (string, bool) {
	if accountNumber == "" {
		return "", false
	}
	for i := 1; i < len(texts); i++ {
		if strings.Contains(Digits(texts[i]), accountNumber) && strings.Contains(texts[i], vaMarker) {
			return texts[i], true
		}
	}
	return "", false
}

// BankFromRemark derives the bank code from a remark: the text preceding the
// "VA" marker, with surrounding whitespace trimmed. Returns "" when the
// remark carries no marker.
func BankFromRemark(remark string) string {
	idx := strings.Index(remark, vaMarker)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(remark[:idx])
}
