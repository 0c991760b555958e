package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payverify/internal/model"
	"payverify/internal/repository"
)

var verificationCols = []string{"id", "remark", "amount", "file_name", "bank", "invoice_number", "file_url", "invoice_id", "created_at"}

func TestVerificationPostgres_FindOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVerificationPostgres(db)
	ctx := context.Background()

	t.Run("by remark and amount", func(t *testing.T) {
		amount := int64(500)
		rows := sqlmock.NewRows(verificationCols).
			AddRow("vid-1", "BCA VA9988", amount, "advice.jpg", "BCA", "REF-1", "https://files/advice.jpg", "id-1", time.Now())

		mock.ExpectQuery(`SELECT (.+) FROM payment_verifications WHERE remark = \$1 AND amount = \$2 LIMIT 1`).
			WithArgs("BCA VA9988", amount).
			WillReturnRows(rows)

		rec, err := repo.FindOne(ctx, repository.VerificationFilter{Remark: "BCA VA9988", Amount: &amount})

		assert.NoError(t, err)
		assert.Equal(t, "vid-1", rec.ID)
		assert.Equal(t, "BCA", rec.Bank)
	})

	t.Run("by remark only", func(t *testing.T) {
		rows := sqlmock.NewRows(verificationCols).
			AddRow("vid-1", "BCA VA9988", 500, "advice.jpg", "BCA", "REF-1", "https://files/advice.jpg", "id-1", time.Now())

		mock.ExpectQuery(`SELECT (.+) FROM payment_verifications WHERE remark = \$1 LIMIT 1`).
			WithArgs("BCA VA9988").
			WillReturnRows(rows)

		rec, err := repo.FindOne(ctx, repository.VerificationFilter{Remark: "BCA VA9988"})

		assert.NoError(t, err)
		assert.Equal(t, "REF-1", rec.InvoiceNumber)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM payment_verifications`).
			WithArgs("unknown").
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.FindOne(ctx, repository.VerificationFilter{Remark: "unknown"})

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rec)
	})

	t.Run("empty filter rejected", func(t *testing.T) {
		_, err := repo.FindOne(ctx, repository.VerificationFilter{})
		assert.ErrorIs(t, err, repository.ErrEmptyFilter)
	})
}

func TestVerificationPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVerificationPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rec := &model.VerificationRecord{
		ID:            "vid-1",
		Remark:        "BCA VA9988",
		Amount:        500,
		FileName:      "advice.jpg",
		Bank:          "BCA",
		InvoiceNumber: "REF-1",
		FileURL:       "https://files/advice.jpg",
		InvoiceID:     "id-1",
		CreatedAt:     now,
	}

	rows := sqlmock.NewRows(verificationCols).
		AddRow(rec.ID, rec.Remark, rec.Amount, rec.FileName, rec.Bank, rec.InvoiceNumber, rec.FileURL, rec.InvoiceID, rec.CreatedAt)

	mock.ExpectQuery("INSERT INTO payment_verifications").
		WithArgs(rec.ID, rec.Remark, rec.Amount, rec.FileName, rec.Bank, rec.InvoiceNumber, rec.FileURL, rec.InvoiceID, rec.CreatedAt).
		WillReturnRows(rows)

	out, err := repo.Create(ctx, rec)

	assert.NoError(t, err)
	assert.Equal(t, rec.ID, out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
