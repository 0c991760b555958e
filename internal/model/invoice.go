package model

import "time"

// InvoiceStatus is the payment state of an invoice. Within this service an
// invoice only ever moves from unpaid to paid, never back.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

// Invoice is an outstanding invoice record. Invoices are created by an
// upstream billing system; this service only reads them and flips their
// status to paid. The remark carries a bank code, the literal "VA" marker
// and the virtual-account digits used for matching.
type Invoice struct {
	ID              string        `json:"id"`
	Remark          string        `json:"remark"`
	Amount          int64         `json:"amount"`
	ValueDate       time.Time     `json:"value_date"`
	ReferenceNumber string        `json:"reference_number"`
	InvoiceNumber   string        `json:"invoice_number"`
	Status          InvoiceStatus `json:"status"`
	InvoiceDate     time.Time     `json:"invoice_date"`
}

// InvoiceSummary is the reduced view returned by the bulk mark-paid report.
type InvoiceSummary struct {
	InvoiceNumber   string        `json:"invoice_number"`
	ReferenceNumber string        `json:"reference_number"`
	Amount          int64         `json:"amount"`
	Status          InvoiceStatus `json:"status"`
}

// Summary returns the report view of the invoice.
func (i Invoice) Summary() InvoiceSummary {
	return InvoiceSummary{
		InvoiceNumber:   i.InvoiceNumber,
		ReferenceNumber: i.ReferenceNumber,
		Amount:          i.Amount,
		Status:          i.Status,
	}
}
