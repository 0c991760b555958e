package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"payverify/internal/service"
)

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses into the Envelope shape.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		default:
			return writeError(c, status, "internal server error")
		}
	}
}

// respondServiceError maps service outcome sentinels to envelopes. Anything
// not recognized is an internal fault and reported without detail.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNoTextDetected):
		return writeError(c, fiber.StatusBadRequest, "no text detected in image")
	case errors.Is(err, service.ErrRemarkNotFound):
		return writeError(c, fiber.StatusNotFound, "payment remark not found in image")
	case errors.Is(err, service.ErrNoCandidates):
		return writeError(c, fiber.StatusNotFound, "no invoice matches the detected remark")
	case errors.Is(err, service.ErrAmountMismatch):
		return writeError(c, fiber.StatusBadRequest, "no invoice matches the detected amount")
	case errors.Is(err, service.ErrInvoiceNotFound):
		return writeError(c, fiber.StatusNotFound, "invoice not found")
	case errors.Is(err, service.ErrVerificationMissing):
		return writeError(c, fiber.StatusNotFound, "no verification record for this invoice")
	default:
		return writeError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
