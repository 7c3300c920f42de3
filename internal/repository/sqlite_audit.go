package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evanmoray/cadence/internal/audit"
	"github.com/evanmoray/cadence/internal/db"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/google/uuid"
)

// SQLiteAuditRepo implements AuditRepo. It satisfies audit.Sink, so the
// planner can write its decision trail straight into the database.
type SQLiteAuditRepo struct {
	db db.DBTX
}

// NewSQLiteAuditRepo creates a new SQLiteAuditRepo.
func NewSQLiteAuditRepo(conn db.DBTX) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{db: conn}
}

// AddEntry appends one audit entry. Failures are swallowed: a broken audit
// trail must never disturb the operation being audited.
func (r *SQLiteAuditRepo) AddEntry(ctx context.Context, e audit.Entry) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	metadata := "{}"
	if len(e.Metadata) > 0 {
		if data, err := json.Marshal(e.Metadata); err == nil {
			metadata = string(data)
		}
	}

	_, _ = r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, category, severity, message, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID,
		string(e.Category),
		string(e.Severity),
		e.Message,
		metadata,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
}

// ListRecent returns the newest entries first.
func (r *SQLiteAuditRepo) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, severity, message, metadata, created_at FROM audit_log
		 ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var out []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var category, severity, metadata, createdAt string
		if err := rows.Scan(&e.ID, &category, &severity, &e.Message, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		e.Category = domain.AuditCategory(category)
		e.Severity = domain.AuditSeverity(severity)
		if metadata != "" && metadata != "{}" {
			_ = json.Unmarshal([]byte(metadata), &e.Metadata)
		}
		if err := parseTimes(timeField{createdAt, &e.CreatedAt}); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
