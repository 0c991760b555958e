package handler

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"payverify/internal/service"
)

const dateLayout = "2006-01-02"

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, verifySvc service.VerificationService, statusSvc service.StatusService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/verifications", VerifyAdvice(verifySvc))
	app.Post("/invoices/:invoiceNumber/paid", MarkInvoicePaid(statusSvc))
}

// HealthCheck reports readiness: it checks DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// VerifyAdvice runs the payment advice verification pipeline on an uploaded
// image (multipart/form-data, field name: file). Optional start_date and
// end_date values (YYYY-MM-DD, form or query) narrow candidate invoices by
// value date.
func VerifyAdvice(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		image, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "cannot read uploaded file")
		}

		opts := service.VerifyOptions{}
		if opts.StartDate, err = parseDateValue(c, "start_date"); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid start_date, want YYYY-MM-DD")
		}
		if opts.EndDate, err = parseDateValue(c, "end_date"); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid end_date, want YYYY-MM-DD")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := svc.Verify(c.UserContext(), image, fh.Filename, ct, opts)
		if err != nil {
			return respondServiceError(c, err)
		}

		msg := "payment verified"
		if res.AlreadyRecorded {
			msg = "payment already verified"
		}
		return writeOK(c, msg, res)
	}
}

// MarkInvoicePaid marks every invoice sharing the target invoice's reference
// number as paid, provided the remark group has a verification record.
func MarkInvoicePaid(svc service.StatusService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		invoiceNumber := c.Params("invoiceNumber")

		report, err := svc.MarkPaid(c.UserContext(), invoiceNumber)
		if err != nil {
			if errors.Is(err, service.ErrAlreadyPaid) {
				return writeNotModified(c, "invoices already marked paid", report)
			}
			return respondServiceError(c, err)
		}
		return writeOK(c, "invoices marked paid", report)
	}
}

// parseDateValue reads a YYYY-MM-DD value from the form body, falling back to
// the query string. Absent values yield nil.
func parseDateValue(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.FormValue(key)
	if v == "" {
		v = c.Query(key)
	}
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
