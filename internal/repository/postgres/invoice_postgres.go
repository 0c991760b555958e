package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"payverify/internal/model"
	"payverify/internal/repository"
)

const invoiceColumns = "id, remark, amount, value_date, reference_number, invoice_number, status, invoice_date"

// InvoicePostgres is a PostgreSQL implementation of
// repository.InvoiceRepository. It compiles InvoiceFilter values into
// parameterized WHERE clauses and contains no business logic.
type InvoicePostgres struct {
	db *sql.DB
}

// NewInvoicePostgres creates a new InvoicePostgres repository.
func NewInvoicePostgres(db *sql.DB) *InvoicePostgres {
	return &InvoicePostgres{db: db}
}

var _ repository.InvoiceRepository = (*InvoicePostgres)(nil)

// escapeLike neutralizes LIKE wildcards in user-derived fragments so a remark
// containing % or _ matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// buildWhere compiles the filter into a WHERE clause and its arguments.
func buildWhere(f repository.InvoiceFilter) (string, []any, error) {
	if err := f.Validate(); err != nil {
		return "", nil, err
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.RemarkContains != "" {
		conds = append(conds, fmt.Sprintf("remark ILIKE '%%' || %s || '%%'", arg(escapeLike(f.RemarkContains))))
	}
	if f.InvoiceNumber != "" {
		conds = append(conds, fmt.Sprintf("invoice_number = %s", arg(f.InvoiceNumber)))
	}
	if f.ReferenceNumber != "" {
		conds = append(conds, fmt.Sprintf("reference_number = %s", arg(f.ReferenceNumber)))
	}
	if f.ValueDateFrom != nil {
		conds = append(conds, fmt.Sprintf("value_date >= %s", arg(*f.ValueDateFrom)))
	}
	if f.ValueDateTo != nil {
		conds = append(conds, fmt.Sprintf("value_date <= %s", arg(*f.ValueDateTo)))
	}
	if f.StatusNot != "" {
		conds = append(conds, fmt.Sprintf("status <> %s", arg(string(f.StatusNot))))
	}

	return "WHERE " + strings.Join(conds, " AND "), args, nil
}

func scanInvoice(row interface{ Scan(...any) error }) (*model.Invoice, error) {
	var inv model.Invoice
	if err := row.Scan(
		&inv.ID,
		&inv.Remark,
		&inv.Amount,
		&inv.ValueDate,
		&inv.ReferenceNumber,
		&inv.InvoiceNumber,
		&inv.Status,
		&inv.InvoiceDate,
	); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Find returns all invoices matching the filter in insertion order.
func (r *InvoicePostgres) Find(ctx context.Context, f repository.InvoiceFilter) ([]model.Invoice, error) {
	where, args, err := buildWhere(f)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf("SELECT %s FROM invoices %s ORDER BY invoice_date, id", invoiceColumns, where)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindOne fetches a single invoice matching the filter. Missing rows surface
// as sql.ErrNoRows.
func (r *InvoicePostgres) FindOne(ctx context.Context, f repository.InvoiceFilter) (*model.Invoice, error) {
	where, args, err := buildWhere(f)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf("SELECT %s FROM invoices %s LIMIT 1", invoiceColumns, where)
	return scanInvoice(r.db.QueryRowContext(ctx, q, args...))
}

// UpdateStatus sets status on every matching invoice. Matched is counted
// just before the update in the same transaction; under READ COMMITTED a
// concurrent commit between the two statements can still skew the pair.
// The counts are reporting values, not invariants, so that is tolerated.
func (r *InvoicePostgres) UpdateStatus(ctx context.Context, f repository.InvoiceFilter, status model.InvoiceStatus) (repository.UpdateResult, error) {
	where, args, err := buildWhere(f)
	if err != nil {
		return repository.UpdateResult{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return repository.UpdateResult{}, err
	}
	defer tx.Rollback()

	var res repository.UpdateResult
	qCount := fmt.Sprintf("SELECT COUNT(*) FROM invoices %s", where)
	if err := tx.QueryRowContext(ctx, qCount, args...).Scan(&res.Matched); err != nil {
		return repository.UpdateResult{}, err
	}

	// The status parameter takes the next free placeholder after the filter
	// args, so the WHERE clause text stays identical to the count query.
	qUpdate := fmt.Sprintf("UPDATE invoices SET status = $%d %s", len(args)+1, where)
	updateArgs := append(append([]any{}, args...), string(status))

	execRes, err := tx.ExecContext(ctx, qUpdate, updateArgs...)
	if err != nil {
		return repository.UpdateResult{}, err
	}
	res.Modified, err = execRes.RowsAffected()
	if err != nil {
		return repository.UpdateResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return repository.UpdateResult{}, err
	}
	return res, nil
}
