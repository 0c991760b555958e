package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_invoices",
		SQL: `CREATE TABLE IF NOT EXISTS invoices (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  remark           TEXT        NOT NULL,
  amount           BIGINT      NOT NULL CHECK (amount >= 0),
  value_date       TIMESTAMPTZ NOT NULL,
  reference_number TEXT        NOT NULL,
  invoice_number   TEXT        NOT NULL UNIQUE,
  status           TEXT        NOT NULL DEFAULT 'unpaid',
  invoice_date     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_payment_verifications",
		SQL: `CREATE TABLE IF NOT EXISTS payment_verifications (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  remark         TEXT        NOT NULL,
  amount         BIGINT      NOT NULL CHECK (amount >= 0),
  file_name      TEXT        NOT NULL,
  bank           TEXT        NOT NULL DEFAULT '',
  invoice_number TEXT        NOT NULL,
  file_url       TEXT        NOT NULL,
  invoice_id     UUID        NOT NULL REFERENCES invoices (id),
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (remark, amount)
);`,
	},
	{
		Name: "create_index_invoices_reference_number",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_invoices_reference_number ON invoices (reference_number);`,
	},
	{
		Name: "create_index_invoices_value_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_invoices_value_date ON invoices (value_date);`,
	},
	{
		Name: "create_index_payment_verifications_invoice_number",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_payment_verifications_invoice_number ON payment_verifications (invoice_number);`,
	},
}

// EnsureMigrated checks if the 'invoices' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.invoices') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
