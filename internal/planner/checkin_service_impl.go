package planner

import (
	"context"
	"errors"
	"time"

	"github.com/evanmoray/cadence/internal/app"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/repository"
	"github.com/google/uuid"
)

type checkInService struct {
	checkIns repository.CheckInRepo
	planner  PlannerService
	observer UseCaseObserver
}

// NewCheckInService wraps the check-in repository and re-runs the planner on
// every data mutation. planner may be nil (tests, degraded startup), in which
// case mutations skip the analysis pass.
func NewCheckInService(checkIns repository.CheckInRepo, planner PlannerService, observers ...UseCaseObserver) CheckInService {
	return &checkInService{
		checkIns: checkIns,
		planner:  planner,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *checkInService) Create(ctx context.Context, c *domain.CheckIn) error {
	started := time.Now()
	if c.Task == "" {
		err := errors.New("check-in task must not be empty")
		s.observeEvent(ctx, "checkin_create", started, err)
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Category == "" {
		c.Category = "task"
	}
	now := time.Now().UTC()
	if c.LoggedAt.IsZero() {
		c.LoggedAt = now
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.checkIns.Create(ctx, c); err != nil {
		s.observeEvent(ctx, "checkin_create", started, err)
		return err
	}
	s.reanalyze(ctx)
	s.observeEvent(ctx, "checkin_create", started, nil)
	return nil
}

func (s *checkInService) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	return s.checkIns.GetByID(ctx, id)
}

func (s *checkInService) ListByDay(ctx context.Context, day time.Time) ([]*domain.CheckIn, error) {
	return s.checkIns.ListByDay(ctx, day)
}

func (s *checkInService) MarkDone(ctx context.Context, id string) error {
	started := time.Now()
	if err := s.checkIns.MarkDone(ctx, id); err != nil {
		s.observeEvent(ctx, "checkin_done", started, err)
		return err
	}
	s.reanalyze(ctx)
	s.observeEvent(ctx, "checkin_done", started, nil)
	return nil
}

func (s *checkInService) Delete(ctx context.Context, id string) error {
	started := time.Now()
	if err := s.checkIns.Delete(ctx, id); err != nil {
		s.observeEvent(ctx, "checkin_delete", started, err)
		return err
	}
	s.reanalyze(ctx)
	s.observeEvent(ctx, "checkin_delete", started, nil)
	return nil
}

// reanalyze runs the data-updated trigger. A failed analysis never fails the
// write that triggered it; the planner audits its own problems.
func (s *checkInService) reanalyze(ctx context.Context) {
	if s.planner == nil {
		return
	}
	_, _ = s.planner.Analyze(ctx, app.NewAnalyzeRequest(app.TriggerDataUpdated))
}

func (s *checkInService) observeEvent(ctx context.Context, name string, started time.Time, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
	})
}
