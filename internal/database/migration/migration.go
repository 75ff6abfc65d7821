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
		Name: "create_table_admission_cases",
		SQL: `CREATE TABLE IF NOT EXISTS admission_cases (
  id                          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  candidate_name              TEXT        NOT NULL,
  candidate_cpf               CHAR(11)    NOT NULL,
  candidate_email             TEXT        NOT NULL,
  candidate_phone             TEXT        NOT NULL DEFAULT '',
  job_title                   TEXT        NOT NULL DEFAULT '',
  department                  TEXT        NOT NULL DEFAULT '',
  contract_type               TEXT        NOT NULL,
  proposed_salary             NUMERIC(12,2),
  start_date                  DATE,
  has_dependents              BOOLEAN     NOT NULL DEFAULT FALSE,
  stage                       TEXT        NOT NULL,
  status                      TEXT        NOT NULL,
  status_reason               TEXT        NOT NULL DEFAULT '',
  contract_ref                TEXT        NOT NULL DEFAULT '',
  digital_signature_confirmed BOOLEAN     NOT NULL DEFAULT FALSE,
  physically_signed           BOOLEAN     NOT NULL DEFAULT FALSE,
  physical_signature_date     DATE,
  version                     BIGINT      NOT NULL DEFAULT 1,
  requested_at                TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at                  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_admission_cases_status_stage",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_admission_cases_status_stage ON admission_cases (status, stage);`,
	},
	{
		Name: "create_index_admission_cases_requested_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_admission_cases_requested_at ON admission_cases (requested_at);`,
	},
	{
		Name: "create_table_admission_documents",
		SQL: `CREATE TABLE IF NOT EXISTS admission_documents (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  case_id          UUID        NOT NULL REFERENCES admission_cases (id),
  kind             TEXT        NOT NULL,
  filename         TEXT        NOT NULL,
  storage_path     TEXT        NOT NULL UNIQUE,
  size             BIGINT      NOT NULL CHECK (size >= 0),
  content_type     TEXT        NOT NULL,
  status           TEXT        NOT NULL DEFAULT 'PENDING',
  validated_by     TEXT,
  validated_at     TIMESTAMPTZ,
  rejection_reason TEXT,
  active           BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// One active upload per (case, kind); superseded rows stay for audit.
		Name: "create_unique_index_admission_documents_active_kind",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_admission_documents_active_kind ON admission_documents (case_id, kind) WHERE active;`,
	},
	{
		Name: "create_index_admission_documents_case_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_admission_documents_case_id ON admission_documents (case_id);`,
	},
	{
		Name: "create_table_workflow_transitions",
		SQL: `CREATE TABLE IF NOT EXISTS workflow_transitions (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  case_id    UUID        NOT NULL REFERENCES admission_cases (id),
  from_stage TEXT        NOT NULL,
  to_stage   TEXT        NOT NULL,
  actor      TEXT        NOT NULL,
  outcome    TEXT        NOT NULL,
  reason     TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_workflow_transitions_case_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_workflow_transitions_case_id ON workflow_transitions (case_id, created_at);`,
	},
	{
		Name: "create_table_integration_dispatches",
		SQL: `CREATE TABLE IF NOT EXISTS integration_dispatches (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  case_id      UUID        NOT NULL REFERENCES admission_cases (id),
  target       TEXT        NOT NULL,
  outcome      TEXT        NOT NULL,
  response_ref TEXT        NOT NULL DEFAULT '',
  error_detail TEXT        NOT NULL DEFAULT '',
  actor        TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_integration_dispatches_case_target",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_integration_dispatches_case_target ON integration_dispatches (case_id, target, outcome);`,
	},
}

// EnsureMigrated checks if the 'admission_cases' table exists and runs the
// migration steps if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.admission_cases') IS NOT NULL"
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
