package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payverify/internal/model"
)

func TestFirstAmountMatch(t *testing.T) {
	inv := func(id string, amount int64) model.Invoice {
		return model.Invoice{ID: id, Amount: amount}
	}

	tests := []struct {
		name       string
		candidates []model.Invoice
		texts      []string
		wantID     string
		found      bool
	}{
		{
			name:       "exact digit match",
			candidates: []model.Invoice{inv("a", 500)},
			texts:      []string{"block", "500"},
			wantID:     "a",
			found:      true,
		},
		{
			name:       "trailing double zero tolerance",
			candidates: []model.Invoice{inv("a", 500)},
			texts:      []string{"block", "50000"},
			wantID:     "a",
			found:      true,
		},
		{
			name:       "single appended zero does not match",
			candidates: []model.Invoice{inv("a", 500)},
			texts:      []string{"block", "5000"},
			found:      false,
		},
		{
			name:       "formatted amount matches via normalization",
			candidates: []model.Invoice{inv("a", 1500000)},
			texts:      []string{"block", "Rp 1.500.000"},
			wantID:     "a",
			found:      true,
		},
		{
			name:       "first candidate wins over annotation order",
			candidates: []model.Invoice{inv("a", 700), inv("b", 300)},
			// b's amount appears earlier in the annotations, but candidate
			// order has precedence.
			texts:  []string{"block", "300", "700"},
			wantID: "a",
			found:  true,
		},
		{
			name:       "falls through to later candidate",
			candidates: []model.Invoice{inv("a", 700), inv("b", 300)},
			texts:      []string{"block", "300"},
			wantID:     "b",
			found:      true,
		},
		{
			name:       "whole block annotation is ignored",
			candidates: []model.Invoice{inv("a", 500)},
			texts:      []string{"500"},
			found:      false,
		},
		{
			name:       "no candidates",
			candidates: nil,
			texts:      []string{"block", "500"},
			found:      false,
		},
		{
			name:       "no annotation matches",
			candidates: []model.Invoice{inv("a", 500), inv("b", 700)},
			texts:      []string{"block", "123", "456"},
			found:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FirstAmountMatch(tt.candidates, tt.texts)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.NotNil(t, got)
				assert.Equal(t, tt.wantID, got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}
