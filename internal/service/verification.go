package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"payverify/internal/config"
	"payverify/internal/match"
	"payverify/internal/model"
	"payverify/internal/ocr"
	"payverify/internal/repository"
	"payverify/internal/storage"
)

// Outcome sentinels. These are handled results, not faults: handlers map them
// to NOT_FOUND / BAD_REQUEST / NOT_MODIFIED envelopes. Any other error coming
// out of a service method is an internal fault.
var (
	ErrNoTextDetected      = errors.New("no text detected in image")
	ErrRemarkNotFound      = errors.New("payment remark not found")
	ErrNoCandidates        = errors.New("invoice not found for remark")
	ErrAmountMismatch      = errors.New("no invoice matches detected amount")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrVerificationMissing = errors.New("verification record not found")
	ErrAlreadyPaid         = errors.New("invoices already marked paid")
)

// VerifyOptions narrows candidate invoices by value date. Nil bounds are
// omitted; set bounds are interpreted as calendar days (start of day for
// From, end of day for To).
type VerifyOptions struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// VerifyResult is the payload of a successful verification.
type VerifyResult struct {
	Invoice         model.InvoiceSummary      `json:"invoice"`
	Record          *model.VerificationRecord `json:"record"`
	AlreadyRecorded bool                      `json:"already_recorded"`
}

// VerificationService runs the advice verification pipeline: OCR, remark
// location, candidate narrowing, amount confirmation and idempotent
// recording.
type VerificationService interface {
	Verify(ctx context.Context, image []byte, fileName, contentType string, opts VerifyOptions) (*VerifyResult, error)
}

type verificationService struct {
	detector ocr.TextDetector
	invoices repository.InvoiceRepository
	records  repository.VerificationRepository
	store    storage.Storage
	matching config.MatchingConfig
}

// NewVerificationService constructs a VerificationService. The matching
// config (account number, upload prefix, presign expiry) is injected once
// here and constant for the process lifetime.
func NewVerificationService(
	detector ocr.TextDetector,
	invoices repository.InvoiceRepository,
	records repository.VerificationRepository,
	store storage.Storage,
	matching config.MatchingConfig,
) VerificationService {
	return &verificationService{
		detector: detector,
		invoices: invoices,
		records:  records,
		store:    store,
		matching: matching,
	}
}

// startOfDay and endOfDay normalize the caller-supplied calendar bounds.
// The upper bound is inclusive at 23:59:59.999 local time.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Verify runs the pipeline stages strictly in sequence, short-circuiting on
// the first terminal outcome. Each stage's input depends on the previous
// stage's output, so nothing here runs concurrently.
func (s *verificationService) Verify(ctx context.Context, image []byte, fileName, contentType string, opts VerifyOptions) (*VerifyResult, error) {
	anns, err := s.detector.DetectText(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("detect text: %w", err)
	}
	if len(anns) == 0 {
		return nil, ErrNoTextDetected
	}
	texts := ocr.Texts(anns)

	fragment, ok := match.LocateRemark(texts, s.matching.AccountNumber)
	if !ok {
		return nil, ErrRemarkNotFound
	}

	filter := repository.InvoiceFilter{RemarkContains: fragment}
	if opts.StartDate != nil {
		from := startOfDay(*opts.StartDate)
		filter.ValueDateFrom = &from
	}
	if opts.EndDate != nil {
		to := endOfDay(*opts.EndDate)
		filter.ValueDateTo = &to
	}

	candidates, err := s.invoices.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	invoice, ok := match.FirstAmountMatch(candidates, texts)
	if !ok {
		return nil, ErrAmountMismatch
	}

	record, created, err := s.record(ctx, invoice, image, fileName, contentType)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Invoice:         invoice.Summary(),
		Record:          record,
		AlreadyRecorded: !created,
	}, nil
}

// record persists the verification outcome idempotently: if a record already
// exists for (remark, amount) it is returned as-is with no upload and no
// insert, so callers may safely retry. Otherwise the advice image is uploaded
// under a key derived from the invoice id and a fresh record is inserted.
// The unique constraint on (remark, amount) backstops concurrent racers.
func (s *verificationService) record(ctx context.Context, invoice *model.Invoice, image []byte, fileName, contentType string) (*model.VerificationRecord, bool, error) {
	existing, err := s.records.FindOne(ctx, repository.VerificationFilter{
		Remark: invoice.Remark,
		Amount: &invoice.Amount,
	})
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("check existing record: %w", err)
	}

	key := filepath.ToSlash(filepath.Join(s.matching.UploadPrefix, invoice.ID+filepath.Ext(fileName)))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(image), storage.PutObjectOptions{
		Size:        int64(len(image)),
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": fileName},
	}); err != nil {
		return nil, false, fmt.Errorf("upload advice image: %w", err)
	}

	fileURL, err := s.store.PresignGet(ctx, key, s.matching.PresignExpiry)
	if err != nil {
		s.discard(ctx, key)
		return nil, false, fmt.Errorf("presign advice image: %w", err)
	}

	rec := &model.VerificationRecord{
		ID:            uuid.New().String(),
		Remark:        invoice.Remark,
		Amount:        invoice.Amount,
		FileName:      fileName,
		Bank:          match.BankFromRemark(invoice.Remark),
		InvoiceNumber: invoice.ReferenceNumber,
		FileURL:       fileURL,
		InvoiceID:     invoice.ID,
		CreatedAt:     time.Now().UTC(),
	}
	stored, err := s.records.Create(ctx, rec)
	if err != nil {
		s.discard(ctx, key)
		return nil, false, fmt.Errorf("save verification record: %w", err)
	}
	return stored, true, nil
}

// discard removes an uploaded advice image whose verification record never
// materialized, so a failed verification leaves no blob behind. Best effort:
// the outcome is decided by the insert, not the cleanup.
func (s *verificationService) discard(ctx context.Context, key string) {
	_ = s.store.Delete(ctx, key)
}
