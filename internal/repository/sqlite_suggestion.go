package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evanmoray/cadence/internal/db"
	"github.com/evanmoray/cadence/internal/domain"
)

// SQLiteSuggestionRepo persists the suggestion store so active suggestions
// survive across planner runs.
type SQLiteSuggestionRepo struct {
	db db.DBTX
}

// NewSQLiteSuggestionRepo creates a new SQLiteSuggestionRepo.
func NewSQLiteSuggestionRepo(conn db.DBTX) *SQLiteSuggestionRepo {
	return &SQLiteSuggestionRepo{db: conn}
}

const suggestionColumns = `id, kind, priority, title, description, action, anchor_id, created_at, expires_at, dismissed, event_id`

func (r *SQLiteSuggestionRepo) Upsert(ctx context.Context, s *domain.PlannerSuggestion) error {
	action, err := marshalAction(s.Action)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO suggestions (` + suggestionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Kind),
		string(s.Priority),
		s.Title,
		s.Description,
		action,
		s.AnchorID,
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.ExpiresAt.UTC().Format(time.RFC3339),
		boolToInt(s.Dismissed),
		s.EventID,
	)
	if err != nil {
		return fmt.Errorf("upserting suggestion: %w", err)
	}
	return nil
}

func (r *SQLiteSuggestionRepo) GetByID(ctx context.Context, id string) (*domain.PlannerSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM suggestions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanSuggestion(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("suggestion: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// ListActive returns the undismissed rows, including ones whose expiry has
// passed: the engine's store sweeps those through the lifecycle before
// DeleteExpired prunes them from the table.
func (r *SQLiteSuggestionRepo) ListActive(ctx context.Context) ([]*domain.PlannerSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM suggestions
		WHERE dismissed = 0 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing active suggestions: %w", err)
	}
	defer rows.Close()

	var out []*domain.PlannerSuggestion
	for rows.Next() {
		s, err := scanSuggestion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteSuggestionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suggestions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting suggestion: %w", err)
	}
	return requireRow(res, "suggestion")
}

func (r *SQLiteSuggestionRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM suggestions WHERE expires_at <= ?`, now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("deleting expired suggestions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking affected rows: %w", err)
	}
	return int(n), nil
}

func scanSuggestion(scan func(...any) error) (*domain.PlannerSuggestion, error) {
	var s domain.PlannerSuggestion
	var kind, priority, createdAt, expiresAt string
	var action sql.NullString
	var dismissed int

	err := scan(&s.ID, &kind, &priority, &s.Title, &s.Description, &action,
		&s.AnchorID, &createdAt, &expiresAt, &dismissed, &s.EventID)
	if err != nil {
		return nil, err
	}

	s.Kind = domain.SuggestionKind(kind)
	s.Priority = domain.SuggestionPriority(priority)
	s.Dismissed = intToBool(dismissed)
	if err := parseTimes(
		timeField{createdAt, &s.CreatedAt},
		timeField{expiresAt, &s.ExpiresAt},
	); err != nil {
		return nil, err
	}

	if action.Valid && action.String != "" {
		var a domain.SuggestionAction
		if err := json.Unmarshal([]byte(action.String), &a); err != nil {
			return nil, fmt.Errorf("decoding suggestion action: %w", err)
		}
		s.Action = &a
	}
	return &s, nil
}

func marshalAction(a *domain.SuggestionAction) (any, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encoding suggestion action: %w", err)
	}
	return string(data), nil
}
