package handler

import (
	"github.com/gofiber/fiber/v2"

	"payverify/internal/http/middleware"
)

// Envelope is the uniform response body for every endpoint. StatusCode is the
// application outcome code and may differ from the transport status:
// NOT_MODIFIED (304) travels over HTTP 200 because HTTP forbids a body on a
// real 304 response.
type Envelope struct {
	StatusCode int    `json:"status_code"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func writeOK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		StatusCode: fiber.StatusOK,
		Success:    true,
		Message:    message,
		Data:       data,
		RequestID:  requestIDFromCtx(c),
	})
}

// writeNotModified reports a no-op outcome. The envelope carries 304 while the
// transport stays 200 so the data payload reaches the client.
func writeNotModified(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		StatusCode: fiber.StatusNotModified,
		Success:    false,
		Message:    message,
		Data:       data,
		RequestID:  requestIDFromCtx(c),
	})
}

// writeError writes a failure envelope without leaking internal errors.
// message must be a safe, human-readable description.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{
		StatusCode: status,
		Success:    false,
		Message:    message,
		RequestID:  requestIDFromCtx(c),
	})
}
