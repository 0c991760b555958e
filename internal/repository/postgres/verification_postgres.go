package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"payverify/internal/model"
	"payverify/internal/repository"
)

const verificationColumns = "id, remark, amount, file_name, bank, invoice_number, file_url, invoice_id, created_at"

// VerificationPostgres is a PostgreSQL implementation of
// repository.VerificationRepository.
type VerificationPostgres struct {
	db *sql.DB
}

// NewVerificationPostgres creates a new VerificationPostgres repository.
func NewVerificationPostgres(db *sql.DB) *VerificationPostgres {
	return &VerificationPostgres{db: db}
}

var _ repository.VerificationRepository = (*VerificationPostgres)(nil)

// FindOne fetches a single verification record matching the filter. Missing
// rows surface as sql.ErrNoRows.
func (r *VerificationPostgres) FindOne(ctx context.Context, f repository.VerificationFilter) (*model.VerificationRecord, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var conds []string
	var args []any
	if f.Remark != "" {
		args = append(args, f.Remark)
		conds = append(conds, fmt.Sprintf("remark = $%d", len(args)))
	}
	if f.Amount != nil {
		args = append(args, *f.Amount)
		conds = append(conds, fmt.Sprintf("amount = $%d", len(args)))
	}

	q := fmt.Sprintf("SELECT %s FROM payment_verifications WHERE %s LIMIT 1",
		verificationColumns, strings.Join(conds, " AND "))

	var rec model.VerificationRecord
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&rec.ID,
		&rec.Remark,
		&rec.Amount,
		&rec.FileName,
		&rec.Bank,
		&rec.InvoiceNumber,
		&rec.FileURL,
		&rec.InvoiceID,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new verification record and returns the stored row.
// The unique (remark, amount) constraint rejects duplicates that slip past
// the recorder's existence check under concurrency.
func (r *VerificationPostgres) Create(ctx context.Context, rec *model.VerificationRecord) (*model.VerificationRecord, error) {
	const q = `
		INSERT INTO payment_verifications (id, remark, amount, file_name, bank, invoice_number, file_url, invoice_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, remark, amount, file_name, bank, invoice_number, file_url, invoice_id, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.Remark,
		rec.Amount,
		rec.FileName,
		rec.Bank,
		rec.InvoiceNumber,
		rec.FileURL,
		rec.InvoiceID,
		rec.CreatedAt,
	)
	var out model.VerificationRecord
	if err := row.Scan(
		&out.ID,
		&out.Remark,
		&out.Amount,
		&out.FileName,
		&out.Bank,
		&out.InvoiceNumber,
		&out.FileURL,
		&out.InvoiceID,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}
