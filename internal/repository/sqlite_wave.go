package repository

import (
	"context"
	"fmt"

	"github.com/evanmoray/cadence/internal/db"
	"github.com/evanmoray/cadence/internal/domain"
)

// SQLiteWaveRepo implements WaveRepo using a SQLite database.
type SQLiteWaveRepo struct {
	db db.DBTX
}

// NewSQLiteWaveRepo creates a new SQLiteWaveRepo.
func NewSQLiteWaveRepo(conn db.DBTX) *SQLiteWaveRepo {
	return &SQLiteWaveRepo{db: conn}
}

func (r *SQLiteWaveRepo) Create(ctx context.Context, w *domain.Wave) error {
	query := `INSERT INTO waves (id, name, color, start_hour, end_hour) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, w.ID, w.Name, w.Color, w.StartHour, w.EndHour)
	if err != nil {
		return fmt.Errorf("inserting wave: %w", err)
	}
	return nil
}

func (r *SQLiteWaveRepo) List(ctx context.Context) ([]*domain.Wave, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color, start_hour, end_hour FROM waves ORDER BY start_hour`)
	if err != nil {
		return nil, fmt.Errorf("listing waves: %w", err)
	}
	defer rows.Close()

	var out []*domain.Wave
	for rows.Next() {
		var w domain.Wave
		if err := rows.Scan(&w.ID, &w.Name, &w.Color, &w.StartHour, &w.EndHour); err != nil {
			return nil, fmt.Errorf("scanning wave row: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}
