package repository

import (
	"context"
	"errors"
	"time"

	"github.com/evanmoray/cadence/internal/audit"
	"github.com/evanmoray/cadence/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type CheckInRepo interface {
	Create(ctx context.Context, c *domain.CheckIn) error
	GetByID(ctx context.Context, id string) (*domain.CheckIn, error)
	ListByDay(ctx context.Context, day time.Time) ([]*domain.CheckIn, error)
	ListPending(ctx context.Context) ([]*domain.CheckIn, error)
	MarkDone(ctx context.Context, id string) error
	Update(ctx context.Context, c *domain.CheckIn) error
	Delete(ctx context.Context, id string) error
}

type WaveRepo interface {
	Create(ctx context.Context, w *domain.Wave) error
	List(ctx context.Context) ([]*domain.Wave, error)
}

type PreferencesRepo interface {
	Get(ctx context.Context) (*domain.Preferences, error)
	Upsert(ctx context.Context, p *domain.Preferences) error
}

type SuggestionRepo interface {
	Upsert(ctx context.Context, s *domain.PlannerSuggestion) error
	GetByID(ctx context.Context, id string) (*domain.PlannerSuggestion, error)
	ListActive(ctx context.Context) ([]*domain.PlannerSuggestion, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// PlannerState is the single-row snapshot of the engine's rhythm tracking.
type PlannerState struct {
	RhythmState    domain.RhythmState
	FocusStartedAt *time.Time
	UpdatedAt      time.Time
}

type PlannerStateRepo interface {
	Get(ctx context.Context) (*PlannerState, error)
	Upsert(ctx context.Context, s *PlannerState) error
}

type AuditRepo interface {
	audit.Sink
	ListRecent(ctx context.Context, limit int) ([]audit.Entry, error)
}
