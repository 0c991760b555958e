package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"payverify/internal/model"
	"payverify/internal/service"
	serviceMocks "payverify/internal/service/mocks"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body Envelope
		json.NewDecoder(resp.Body).Decode(&body)
		assert.False(t, body.Success)
		assert.Equal(t, http.StatusServiceUnavailable, body.StatusCode)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func multipartAdvice(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", "advice.jpg")
	require.NoError(t, err)
	fw.Write([]byte("jpeg bytes"))
	for k, v := range fields {
		w.WriteField(k, v)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestVerifyAdvice(t *testing.T) {
	mockSvc := new(serviceMocks.MockVerificationService)
	app := fiber.New()
	app.Post("/verifications", VerifyAdvice(mockSvc))

	t.Run("success", func(t *testing.T) {
		res := &service.VerifyResult{
			Invoice: model.InvoiceSummary{InvoiceNumber: "INV-1", Amount: 500},
			Record:  &model.VerificationRecord{ID: "rec-1", Remark: "BCA VA9988", Amount: 500},
		}
		mockSvc.On("Verify", mock.Anything, []byte("jpeg bytes"), "advice.jpg", mock.Anything, service.VerifyOptions{}).
			Return(res, nil).Once()

		body, ct := multipartAdvice(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/verifications", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var env Envelope
		json.NewDecoder(resp.Body).Decode(&env)
		assert.True(t, env.Success)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.Equal(t, "payment verified", env.Message)
		mockSvc.AssertExpectations(t)
	})

	t.Run("already recorded", func(t *testing.T) {
		res := &service.VerifyResult{
			Invoice:         model.InvoiceSummary{InvoiceNumber: "INV-1"},
			Record:          &model.VerificationRecord{ID: "rec-1"},
			AlreadyRecorded: true,
		}
		mockSvc.On("Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(res, nil).Once()

		body, ct := multipartAdvice(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/verifications", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var env Envelope
		json.NewDecoder(resp.Body).Decode(&env)
		assert.Equal(t, "payment already verified", env.Message)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/verifications", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid start_date", func(t *testing.T) {
		body, ct := multipartAdvice(t, map[string]string{"start_date": "10-03-2024"})
		req := httptest.NewRequest(http.MethodPost, "/verifications", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("date range is forwarded", func(t *testing.T) {
		mockSvc.On("Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
			mock.MatchedBy(func(opts service.VerifyOptions) bool {
				return opts.StartDate != nil && opts.StartDate.Format(dateLayout) == "2024-03-10" &&
					opts.EndDate != nil && opts.EndDate.Format(dateLayout) == "2024-03-20"
			})).
			Return(&service.VerifyResult{Record: &model.VerificationRecord{}}, nil).Once()

		body, ct := multipartAdvice(t, map[string]string{
			"start_date": "2024-03-10",
			"end_date":   "2024-03-20",
		})
		req := httptest.NewRequest(http.MethodPost, "/verifications", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("outcome mapping", func(t *testing.T) {
		cases := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"no text", service.ErrNoTextDetected, http.StatusBadRequest},
			{"remark not found", service.ErrRemarkNotFound, http.StatusNotFound},
			{"no candidates", service.ErrNoCandidates, http.StatusNotFound},
			{"amount mismatch", service.ErrAmountMismatch, http.StatusBadRequest},
			{"internal fault", errors.New("vision down"), http.StatusInternalServerError},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				mockSvc.On("Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, tc.err).Once()

				body, ct := multipartAdvice(t, nil)
				req := httptest.NewRequest(http.MethodPost, "/verifications", body)
				req.Header.Set("Content-Type", ct)
				resp, _ := app.Test(req)

				assert.Equal(t, tc.wantStatus, resp.StatusCode)

				var env Envelope
				json.NewDecoder(resp.Body).Decode(&env)
				assert.False(t, env.Success)
				assert.Equal(t, tc.wantStatus, env.StatusCode)
			})
		}
		mockSvc.AssertExpectations(t)
	})
}

func TestMarkInvoicePaid(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatusService)
	app := fiber.New()
	app.Post("/invoices/:invoiceNumber/paid", MarkInvoicePaid(mockSvc))

	t.Run("success", func(t *testing.T) {
		report := &service.PaidReport{
			ReferenceNumber: "REF-1",
			Matched:         2,
			Modified:        2,
			Invoices: []model.InvoiceSummary{
				{InvoiceNumber: "INV-1", Status: model.InvoiceStatusPaid},
				{InvoiceNumber: "INV-2", Status: model.InvoiceStatusPaid},
			},
		}
		mockSvc.On("MarkPaid", mock.Anything, "INV-1").Return(report, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/invoices/INV-1/paid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var env Envelope
		json.NewDecoder(resp.Body).Decode(&env)
		assert.True(t, env.Success)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("already paid yields 304 envelope over 200", func(t *testing.T) {
		report := &service.PaidReport{ReferenceNumber: "REF-1", Matched: 0, Modified: 0}
		mockSvc.On("MarkPaid", mock.Anything, "INV-1").Return(report, service.ErrAlreadyPaid).Once()

		req := httptest.NewRequest(http.MethodPost, "/invoices/INV-1/paid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var env Envelope
		json.NewDecoder(resp.Body).Decode(&env)
		assert.False(t, env.Success)
		assert.Equal(t, http.StatusNotModified, env.StatusCode)
		assert.NotNil(t, env.Data)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invoice not found", func(t *testing.T) {
		mockSvc.On("MarkPaid", mock.Anything, "UNKNOWN").Return(nil, service.ErrInvoiceNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/invoices/UNKNOWN/paid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("verification missing", func(t *testing.T) {
		mockSvc.On("MarkPaid", mock.Anything, "INV-1").Return(nil, service.ErrVerificationMissing).Once()

		req := httptest.NewRequest(http.MethodPost, "/invoices/INV-1/paid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
