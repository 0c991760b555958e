package repository

import (
	"context"

	"payverify/internal/model"
)

// VerificationFilter selects verification records. Remark is an exact match;
// Amount is optional so the bulk mark-paid flow can probe by remark alone.
type VerificationFilter struct {
	Remark string
	Amount *int64
}

// Validate rejects an unconditioned filter.
func (f VerificationFilter) Validate() error {
	if f.Remark == "" && f.Amount == nil {
		return ErrEmptyFilter
	}
	return nil
}

// VerificationRepository defines persistence for verification records.
// Records are insert-only; the schema's unique (remark, amount) constraint
// backs the recorder's idempotency.
type VerificationRepository interface {
	// FindOne returns a record matching the filter, or sql.ErrNoRows.
	FindOne(ctx context.Context, f VerificationFilter) (*model.VerificationRecord, error)

	// Create inserts a new record and returns the stored row.
	Create(ctx context.Context, rec *model.VerificationRecord) (*model.VerificationRecord, error)
}
