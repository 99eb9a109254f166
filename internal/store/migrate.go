package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL applied on every Open. Statements must be
// idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id         TEXT PRIMARY KEY,
		repo_id    TEXT NOT NULL,
		qu_type    INTEGER NOT NULL,
		level      INTEGER NOT NULL,
		stem       TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS questions_repo_type ON questions (repo_id, qu_type)`,
	`CREATE TABLE IF NOT EXISTS question_knowledge_points (
		question_id TEXT NOT NULL REFERENCES questions (id) ON DELETE CASCADE,
		point       TEXT NOT NULL,
		position    INTEGER NOT NULL,
		PRIMARY KEY (question_id, point)
	)`,
	`CREATE INDEX IF NOT EXISTS question_knowledge_points_point ON question_knowledge_points (point)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     DATETIME NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_timestamp ON llm_request_events (timestamp)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_model ON llm_request_events (model)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
