package model

import "time"

// VerificationRecord is the proof that a payment advice was matched to an
// invoice. At most one record exists per (remark, amount) pair; the postgres
// schema enforces this with a unique constraint so retried verifications stay
// idempotent. Records are immutable after creation.
//
// InvoiceNumber holds the matched invoice's reference number, which is the
// grouping key the bulk mark-paid operation works on.
type VerificationRecord struct {
	ID            string    `json:"id"`
	Remark        string    `json:"remark"`
	Amount        int64     `json:"amount"`
	FileName      string    `json:"file_name"`
	Bank          string    `json:"bank"`
	InvoiceNumber string    `json:"invoice_number"`
	FileURL       string    `json:"file_url"`
	InvoiceID     string    `json:"invoice_id"`
	CreatedAt     time.Time `json:"created_at"`
}
