package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS waves (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '',
		start_hour INTEGER NOT NULL DEFAULT 0,
		end_hour   INTEGER NOT NULL DEFAULT 24
	)`,

	`CREATE TABLE IF NOT EXISTS check_ins (
		id         TEXT PRIMARY KEY,
		category   TEXT NOT NULL DEFAULT '',
		task       TEXT NOT NULL,
		wave_id    TEXT REFERENCES waves(id) ON DELETE SET NULL,
		slot       TEXT NOT NULL,
		logged_at  TEXT NOT NULL,
		done       INTEGER NOT NULL DEFAULT 0,
		is_anchor  INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_check_ins_slot ON check_ins(slot)`,
	`CREATE INDEX IF NOT EXISTS idx_check_ins_done ON check_ins(done)`,

	`CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS suggestions (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL
		            CHECK(kind IN ('break_needed','focus_block','schedule_adjustment',
		                           'reflection_reminder','anchor_reminder','friction_warning','auto_scheduled')),
		priority    TEXT NOT NULL DEFAULT 'low'
		            CHECK(priority IN ('low','medium','high')),
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		action      TEXT,
		anchor_id   TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		expires_at  TEXT NOT NULL,
		dismissed   INTEGER NOT NULL DEFAULT 0,
		event_id    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_suggestions_kind ON suggestions(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestions_expires ON suggestions(expires_at)`,

	`CREATE TABLE IF NOT EXISTS planner_state (
		id               TEXT PRIMARY KEY CHECK(id = 'default'),
		rhythm_state     TEXT NOT NULL DEFAULT 'open',
		focus_started_at TEXT,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id         TEXT PRIMARY KEY,
		category   TEXT NOT NULL,
		severity   TEXT NOT NULL,
		message    TEXT NOT NULL,
		metadata   TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at)`,
}
