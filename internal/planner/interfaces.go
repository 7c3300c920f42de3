package planner

import (
	"context"
	"time"

	"github.com/evanmoray/cadence/internal/app"
	"github.com/evanmoray/cadence/internal/domain"
)

// PlannerService is the engine's public surface. Every mutation runs a full
// analysis pass; callers never reach the suggestion store directly.
type PlannerService interface {
	Analyze(ctx context.Context, req app.AnalyzeRequest) (*app.AnalyzeResponse, error)
	Suggestions(ctx context.Context) ([]domain.PlannerSuggestion, error)
	Dismiss(ctx context.Context, id string) error
	Accept(ctx context.Context, id string) (*domain.PlannerSuggestion, error)
	CancelAutoScheduled(ctx context.Context, id string) error
	SetRhythmState(ctx context.Context, state domain.RhythmState) (*app.AnalyzeResponse, error)
	UpdatePreferences(ctx context.Context, p domain.Preferences) (*app.AnalyzeResponse, error)
	RefreshCalendar(ctx context.Context) error
	AddListener(fn func([]domain.PlannerSuggestion))
}

type CheckInService interface {
	Create(ctx context.Context, c *domain.CheckIn) error
	GetByID(ctx context.Context, id string) (*domain.CheckIn, error)
	ListByDay(ctx context.Context, day time.Time) ([]*domain.CheckIn, error)
	MarkDone(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type WaveService interface {
	Create(ctx context.Context, w *domain.Wave) error
	List(ctx context.Context) ([]*domain.Wave, error)
}
