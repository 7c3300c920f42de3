package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/evanmoray/cadence/internal/db"
	"github.com/evanmoray/cadence/internal/domain"
)

// SQLiteCheckInRepo implements CheckInRepo using a SQLite database.
type SQLiteCheckInRepo struct {
	db db.DBTX
}

// NewSQLiteCheckInRepo creates a new SQLiteCheckInRepo.
func NewSQLiteCheckInRepo(conn db.DBTX) *SQLiteCheckInRepo {
	return &SQLiteCheckInRepo{db: conn}
}

const checkInColumns = `id, category, task, wave_id, slot, logged_at, done, is_anchor, created_at, updated_at`

func (r *SQLiteCheckInRepo) Create(ctx context.Context, c *domain.CheckIn) error {
	query := `INSERT INTO check_ins (` + checkInColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Category,
		c.Task,
		nullableStrToValue(c.WaveID),
		c.Slot.UTC().Format(time.RFC3339),
		c.LoggedAt.UTC().Format(time.RFC3339),
		boolToInt(c.Done),
		boolToInt(c.IsAnchor),
		c.CreatedAt.UTC().Format(time.RFC3339),
		c.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting check-in: %w", err)
	}
	return nil
}

func (r *SQLiteCheckInRepo) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteCheckInRepo) ListByDay(ctx context.Context, day time.Time) ([]*domain.CheckIn, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `SELECT ` + checkInColumns + ` FROM check_ins
		WHERE slot >= ? AND slot < ? ORDER BY slot`
	rows, err := r.db.QueryContext(ctx, query,
		dayStart.Format(time.RFC3339), dayEnd.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing check-ins by day: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *SQLiteCheckInRepo) ListPending(ctx context.Context) ([]*domain.CheckIn, error) {
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE done = 0 ORDER BY slot`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing pending check-ins: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *SQLiteCheckInRepo) MarkDone(ctx context.Context, id string) error {
	query := `UPDATE check_ins SET done = 1, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("marking check-in done: %w", err)
	}
	return requireRow(res, "check-in")
}

func (r *SQLiteCheckInRepo) Update(ctx context.Context, c *domain.CheckIn) error {
	query := `UPDATE check_ins SET category = ?, task = ?, wave_id = ?, slot = ?,
		logged_at = ?, done = ?, is_anchor = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Category,
		c.Task,
		nullableStrToValue(c.WaveID),
		c.Slot.UTC().Format(time.RFC3339),
		c.LoggedAt.UTC().Format(time.RFC3339),
		boolToInt(c.Done),
		boolToInt(c.IsAnchor),
		time.Now().UTC().Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating check-in: %w", err)
	}
	return requireRow(res, "check-in")
}

func (r *SQLiteCheckInRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM check_ins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting check-in: %w", err)
	}
	return requireRow(res, "check-in")
}

func (r *SQLiteCheckInRepo) scanOne(row *sql.Row) (*domain.CheckIn, error) {
	var c domain.CheckIn
	var waveID sql.NullString
	var slot, loggedAt, createdAt, updatedAt string
	var done, isAnchor int

	err := row.Scan(&c.ID, &c.Category, &c.Task, &waveID, &slot, &loggedAt,
		&done, &isAnchor, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("check-in: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning check-in: %w", err)
	}

	if waveID.Valid {
		c.WaveID = &waveID.String
	}
	c.Done = intToBool(done)
	c.IsAnchor = intToBool(isAnchor)
	if err := parseTimes(
		timeField{slot, &c.Slot},
		timeField{loggedAt, &c.LoggedAt},
		timeField{createdAt, &c.CreatedAt},
		timeField{updatedAt, &c.UpdatedAt},
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteCheckInRepo) scanAll(rows *sql.Rows) ([]*domain.CheckIn, error) {
	var out []*domain.CheckIn
	for rows.Next() {
		var c domain.CheckIn
		var waveID sql.NullString
		var slot, loggedAt, createdAt, updatedAt string
		var done, isAnchor int

		if err := rows.Scan(&c.ID, &c.Category, &c.Task, &waveID, &slot, &loggedAt,
			&done, &isAnchor, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning check-in row: %w", err)
		}
		if waveID.Valid {
			c.WaveID = &waveID.String
		}
		c.Done = intToBool(done)
		c.IsAnchor = intToBool(isAnchor)
		if err := parseTimes(
			timeField{slot, &c.Slot},
			timeField{loggedAt, &c.LoggedAt},
			timeField{createdAt, &c.CreatedAt},
			timeField{updatedAt, &c.UpdatedAt},
		); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// timeField pairs a stored RFC3339 string with its destination.
type timeField struct {
	raw string
	dst *time.Time
}

func parseTimes(fields ...timeField) error {
	for _, f := range fields {
		t, err := time.Parse(time.RFC3339, f.raw)
		if err != nil {
			return fmt.Errorf("parsing stored time %q: %w", f.raw, err)
		}
		*f.dst = t
	}
	return nil
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
