package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"payverify/internal/model"
	"payverify/internal/repository"
)

// PaidReport summarizes a bulk mark-paid run over one reference-number group.
type PaidReport struct {
	ReferenceNumber string                 `json:"reference_number"`
	Matched         int64                  `json:"matched"`
	Modified        int64                  `json:"modified"`
	Invoices        []model.InvoiceSummary `json:"invoices"`
}

// StatusService flips verified invoice groups to paid. It is a workflow
// separate from the verification pipeline and never runs amount matching;
// it trusts that a verification record for the remark already exists.
type StatusService interface {
	// MarkPaid marks every invoice sharing the given invoice's reference
	// number as paid. Outcomes: ErrInvoiceNotFound when the invoice number is
	// unknown, ErrVerificationMissing when the remark group was never
	// verified, ErrAlreadyPaid (with a report) when nothing was modified.
	MarkPaid(ctx context.Context, invoiceNumber string) (*PaidReport, error)
}

type statusService struct {
	invoices repository.InvoiceRepository
	records  repository.VerificationRepository
}

// NewStatusService constructs a StatusService.
func NewStatusService(invoices repository.InvoiceRepository, records repository.VerificationRepository) StatusService {
	return &statusService{invoices: invoices, records: records}
}

func (s *statusService) MarkPaid(ctx context.Context, invoiceNumber string) (*PaidReport, error) {
	if invoiceNumber == "" {
		return nil, ErrInvoiceNotFound
	}

	invoice, err := s.invoices.FindOne(ctx, repository.InvoiceFilter{InvoiceNumber: invoiceNumber})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}

	// Require proof of verification for the remark group before touching
	// status. Amounts are deliberately not re-validated here.
	if _, err := s.records.FindOne(ctx, repository.VerificationFilter{Remark: invoice.Remark}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVerificationMissing
		}
		return nil, fmt.Errorf("find verification record: %w", err)
	}

	res, err := s.invoices.UpdateStatus(ctx, repository.InvoiceFilter{
		ReferenceNumber: invoice.ReferenceNumber,
		StatusNot:       model.InvoiceStatusPaid,
	}, model.InvoiceStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	report := &PaidReport{
		ReferenceNumber: invoice.ReferenceNumber,
		Matched:         res.Matched,
		Modified:        res.Modified,
	}

	if res.Modified == 0 {
		// Whole group was already paid: a no-op, not a fault.
		return report, ErrAlreadyPaid
	}

	affected, err := s.invoices.Find(ctx, repository.InvoiceFilter{ReferenceNumber: invoice.ReferenceNumber})
	if err != nil {
		return nil, fmt.Errorf("list affected invoices: %w", err)
	}
	report.Invoices = make([]model.InvoiceSummary, 0, len(affected))
	for _, inv := range affected {
		report.Invoices = append(report.Invoices, inv.Summary())
	}

	return report, nil
}
