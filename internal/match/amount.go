package match

import (
	"strconv"

	"payverify/internal/model"
)

// FirstAmountMatch returns the first candidate, in list order, whose amount
// is confirmed by any OCR annotation. An annotation confirms an amount when
// its digit normalization equals the amount's digit string exactly, or equals
// it with two trailing zeros appended. The latter tolerates OCR engines that
// render currency with an appended subunit pair ("500" printed as "50000")
// without attempting decimal-point parsing, which OCR frequently garbles.
//
// Precedence is part of the contract: the outer loop walks candidates in the
// order the store returned them and the inner loop is a pure existence check
// over annotations. The first candidate with any confirming annotation wins,
// regardless of where that annotation sits relative to other candidates'
// annotations. Index 0 (the whole-block annotation) is skipped.
func FirstAmountMatch(candidates []model.Invoice, texts []string) (*model.Invoice, bool) {
	for i := range candidates {
		want := strconv.FormatInt(candidates[i].Amount, 10)
		for j := 1; j < len(texts); j++ {
			got := Digits(texts[j])
			if got == want || got == want+"00" {
				return &candidates[i], true
			}
		}
	}
	return nil, false
}
