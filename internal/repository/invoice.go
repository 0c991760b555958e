package repository

import (
	"context"
	"errors"
	"time"

	"payverify/internal/model"
)

// ErrEmptyFilter is returned when a filter would select every row.
var ErrEmptyFilter = errors.New("invoice filter has no conditions")

// ErrInvalidDateRange is returned when ValueDateFrom is after ValueDateTo.
var ErrInvalidDateRange = errors.New("value date range is inverted")

// InvoiceFilter is the explicit query contract for invoice lookups. Zero
// fields are omitted from the generated query. RemarkContains uses
// case-insensitive substring semantics; the date bounds are inclusive and
// expected to be normalized by the caller (start of day / end of day).
type InvoiceFilter struct {
	RemarkContains  string
	InvoiceNumber   string
	ReferenceNumber string
	ValueDateFrom   *time.Time
	ValueDateTo     *time.Time
	StatusNot       model.InvoiceStatus
}

// Validate rejects filters that would match unconditionally or carry an
// inverted date range.
func (f InvoiceFilter) Validate() error {
	if f.RemarkContains == "" && f.InvoiceNumber == "" && f.ReferenceNumber == "" &&
		f.ValueDateFrom == nil && f.ValueDateTo == nil && f.StatusNot == "" {
		return ErrEmptyFilter
	}
	if f.ValueDateFrom != nil && f.ValueDateTo != nil && f.ValueDateFrom.After(*f.ValueDateTo) {
		return ErrInvalidDateRange
	}
	return nil
}

// UpdateResult reports how many rows an update selected and changed.
type UpdateResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// InvoiceRepository defines persistence operations over invoices. No business
// logic here; missing rows surface as sql.ErrNoRows from FindOne.
type InvoiceRepository interface {
	// Find returns all invoices matching the filter, in storage order.
	// An empty result is not an error.
	Find(ctx context.Context, f InvoiceFilter) ([]model.Invoice, error)

	// FindOne returns a single invoice matching the filter.
	FindOne(ctx context.Context, f InvoiceFilter) (*model.Invoice, error)

	// UpdateStatus sets status on every invoice matching the filter and
	// reports the matched/modified counts.
	UpdateStatus(ctx context.Context, f InvoiceFilter, status model.InvoiceStatus) (UpdateResult, error)
}
