package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/evanmoray/cadence/internal/db"
	"github.com/evanmoray/cadence/internal/domain"
)

// SQLitePlannerStateRepo implements PlannerStateRepo over the single-row
// planner_state table.
type SQLitePlannerStateRepo struct {
	db db.DBTX
}

// NewSQLitePlannerStateRepo creates a new SQLitePlannerStateRepo.
func NewSQLitePlannerStateRepo(conn db.DBTX) *SQLitePlannerStateRepo {
	return &SQLitePlannerStateRepo{db: conn}
}

// Get returns the stored planner state. A missing row is not an error: the
// engine starts from the neutral state on first run.
func (r *SQLitePlannerStateRepo) Get(ctx context.Context) (*PlannerState, error) {
	query := `SELECT rhythm_state, focus_started_at, updated_at FROM planner_state WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var state, updatedAt string
	var focusStartedAt sql.NullString
	err := row.Scan(&state, &focusStartedAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return &PlannerState{RhythmState: domain.StateOpen}, nil
		}
		return nil, fmt.Errorf("scanning planner state: %w", err)
	}

	s := PlannerState{
		RhythmState:    domain.RhythmState(state),
		FocusStartedAt: parseNullableTime(focusStartedAt, time.RFC3339),
	}
	if err := parseTimes(timeField{updatedAt, &s.UpdatedAt}); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLitePlannerStateRepo) Upsert(ctx context.Context, s *PlannerState) error {
	query := `INSERT OR REPLACE INTO planner_state (id, rhythm_state, focus_started_at, updated_at)
		VALUES ('default', ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		string(s.RhythmState),
		nullableTimeToString(s.FocusStartedAt, time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting planner state: %w", err)
	}
	return nil
}
