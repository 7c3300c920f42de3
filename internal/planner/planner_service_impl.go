package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/evanmoray/cadence/internal/app"
	"github.com/evanmoray/cadence/internal/audit"
	"github.com/evanmoray/cadence/internal/calendar"
	"github.com/evanmoray/cadence/internal/db"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/repository"
	"github.com/evanmoray/cadence/internal/schedule"
)

// plannerService is the engine. One explicitly constructed instance owns all
// mutable planner state; a single mutex guards it, and gateway calls always
// run outside the lock.
type plannerService struct {
	checkIns    repository.CheckInRepo
	prefs       repository.PreferencesRepo
	suggestions repository.SuggestionRepo
	stateRepo   repository.PlannerStateRepo
	uow         db.UnitOfWork
	gateway     calendar.Gateway
	sink        audit.Sink
	clock       schedule.Clock
	observer    UseCaseObserver

	mu        sync.Mutex
	store     *suggestionStore
	listeners []func([]domain.PlannerSuggestion)
	events    []domain.CalendarEvent
}

func NewPlannerService(
	checkIns repository.CheckInRepo,
	prefs repository.PreferencesRepo,
	suggestions repository.SuggestionRepo,
	state repository.PlannerStateRepo,
	uow db.UnitOfWork,
	gateway calendar.Gateway,
	sink audit.Sink,
	clock schedule.Clock,
	observers ...UseCaseObserver,
) PlannerService {
	if sink == nil {
		sink = audit.NoopSink{}
	}
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	return &plannerService{
		checkIns:    checkIns,
		prefs:       prefs,
		suggestions: suggestions,
		stateRepo:   state,
		uow:         uow,
		gateway:     gateway,
		sink:        sink,
		clock:       clock,
		observer:    useCaseObserverOrNoop(observers),
		store:       newSuggestionStore(domain.DefaultPreferences().MaxActiveSuggestions),
	}
}

func (s *plannerService) Analyze(ctx context.Context, req app.AnalyzeRequest) (*app.AnalyzeResponse, error) {
	started := time.Now()
	if !req.Trigger.Valid() {
		err := &app.AnalyzeError{Code: app.AnalyzeErrInvalidTrigger, Message: fmt.Sprintf("unknown trigger %q", req.Trigger)}
		s.observe(ctx, "analyze", started, err, nil)
		return nil, err
	}

	now := s.clock.Now().UTC()
	if req.Now != nil {
		now = req.Now.UTC()
	}

	pstate, err := s.stateRepo.Get(ctx)
	if err != nil {
		err = &app.AnalyzeError{Code: app.AnalyzeErrInternal, Message: err.Error()}
		s.observe(ctx, "analyze", started, err, nil)
		return nil, err
	}

	resp, err := s.run(ctx, req.Trigger, now, pstate.RhythmState, pstate.RhythmState, pstate.FocusStartedAt)
	s.observe(ctx, "analyze", started, err, map[string]any{"trigger": string(req.Trigger)})
	return resp, err
}

// run is the full analysis pass. prevState/curState let rhythm transitions
// feed the transition-sensitive policies; focusStart is the instant the last
// focus-like stretch began, if any.
func (s *plannerService) run(ctx context.Context, trigger app.TriggerKind, now time.Time, prevState, curState domain.RhythmState, focusStart *time.Time) (*app.AnalyzeResponse, error) {
	var warnings []string
	s.refreshEventsBestEffort(ctx, now, &warnings)

	s.mu.Lock()
	cfg, err := s.loadStoreLocked(ctx, now)
	if err != nil {
		s.mu.Unlock()
		return nil, &app.AnalyzeError{Code: app.AnalyzeErrInternal, Message: err.Error()}
	}

	today, err := s.checkIns.ListByDay(ctx, now)
	if err != nil {
		s.mu.Unlock()
		return nil, &app.AnalyzeError{Code: app.AnalyzeErrInternal, Message: err.Error()}
	}
	pending, err := s.checkIns.ListPending(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, &app.AnalyzeError{Code: app.AnalyzeErrInternal, Message: err.Error()}
	}
	pendingSnapshot := derefCheckIns(pending)

	detector := schedule.NewConflictDetector(s.events, pendingSnapshot)
	finder := schedule.NewSlotFinder(detector, cfg, s.clock)
	pctx := &policyContext{
		now:            now,
		cfg:            cfg,
		state:          curState,
		prevState:      prevState,
		focusStartedAt: focusStart,
		today:          derefCheckIns(today),
		finder:         finder,
	}

	var jobs []commitJob
	for _, pol := range analysisPolicies() {
		candidates, warns := pol.run(pctx)
		warnings = append(warnings, warns...)

		for _, cand := range candidates {
			inserted, evicted := s.store.Insert(cand, now)
			if !inserted {
				continue
			}
			for _, id := range evicted {
				if err := s.suggestions.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
					warnings = append(warnings, fmt.Sprintf("evicting suggestion %s: %v", id, err))
				}
			}
			if err := s.suggestions.Upsert(ctx, cand); err != nil {
				warnings = append(warnings, fmt.Sprintf("persisting suggestion: %v", err))
			}
			s.sink.AddEntry(ctx, audit.Entry{
				Category: domain.AuditSuggestion,
				Severity: domain.SeverityInfo,
				Message:  "suggestion created: " + cand.Title,
				Metadata: map[string]any{
					"suggestion_id": cand.ID,
					"kind":          string(cand.Kind),
					"policy":        pol.name,
				},
				CreatedAt: now,
			})
			if job, ok := autoScheduleJob(cand, cfg, s.gateway); ok {
				jobs = append(jobs, job)
			}
		}
	}
	s.mu.Unlock()

	autoScheduled := s.commitAll(ctx, jobs, cfg, pendingSnapshot, now, &warnings)

	s.mu.Lock()
	active := s.store.Active(now)
	s.mu.Unlock()
	s.notify(active)

	return &app.AnalyzeResponse{
		GeneratedAt:   now,
		Trigger:       trigger,
		Suggestions:   active,
		AutoScheduled: autoScheduled,
		Warnings:      warnings,
	}, nil
}

func (s *plannerService) Suggestions(ctx context.Context) ([]domain.PlannerSuggestion, error) {
	started := time.Now()
	now := s.clock.Now().UTC()

	s.mu.Lock()
	_, err := s.loadStoreLocked(ctx, now)
	if err != nil {
		s.mu.Unlock()
		s.observe(ctx, "suggestions", started, err, nil)
		return nil, err
	}
	active := s.store.Active(now)
	s.mu.Unlock()

	s.observe(ctx, "suggestions", started, nil, map[string]any{"count": len(active)})
	return active, nil
}

func (s *plannerService) Dismiss(ctx context.Context, id string) error {
	started := time.Now()
	now := s.clock.Now().UTC()

	s.mu.Lock()
	if _, err := s.loadStoreLocked(ctx, now); err != nil {
		s.mu.Unlock()
		s.observe(ctx, "dismiss", started, err, nil)
		return err
	}
	updated, err := s.store.Dismiss(id)
	if err != nil {
		s.mu.Unlock()
		s.observe(ctx, "dismiss", started, err, nil)
		return err
	}
	persistErr := s.suggestions.Upsert(ctx, updated)
	active := s.store.Active(now)
	s.mu.Unlock()

	if persistErr != nil {
		s.observe(ctx, "dismiss", started, persistErr, nil)
		return persistErr
	}

	s.sink.AddEntry(ctx, audit.Entry{
		Category:  domain.AuditSuggestion,
		Severity:  domain.SeverityInfo,
		Message:   "suggestion dismissed: " + updated.Title,
		Metadata:  map[string]any{"suggestion_id": id},
		CreatedAt: now,
	})
	s.notify(active)
	s.observe(ctx, "dismiss", started, nil, map[string]any{"suggestion_id": id})
	return nil
}

// Accept marks the suggestion as handled and hands it back for the caller to
// act on. It deliberately never calls the gateway: committing the underlying
// action stays in the caller's hands.
func (s *plannerService) Accept(ctx context.Context, id string) (*domain.PlannerSuggestion, error) {
	started := time.Now()
	now := s.clock.Now().UTC()

	s.mu.Lock()
	if _, err := s.loadStoreLocked(ctx, now); err != nil {
		s.mu.Unlock()
		s.observe(ctx, "accept", started, err, nil)
		return nil, err
	}
	accepted, err := s.store.Dismiss(id)
	if err != nil {
		s.mu.Unlock()
		s.observe(ctx, "accept", started, err, nil)
		return nil, err
	}
	active := s.store.Active(now)
	s.mu.Unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSuggestionRepo(tx).Upsert(ctx, accepted); err != nil {
			return err
		}
		repository.NewSQLiteAuditRepo(tx).AddEntry(ctx, audit.Entry{
			Category:  domain.AuditIntervention,
			Severity:  domain.SeveritySuccess,
			Message:   "intervention accepted: " + accepted.Title,
			Metadata:  map[string]any{"suggestion_id": id, "kind": string(accepted.Kind)},
			CreatedAt: now,
		})
		return nil
	})
	if err != nil {
		s.observe(ctx, "accept", started, err, nil)
		return nil, err
	}

	s.notify(active)
	s.observe(ctx, "accept", started, nil, map[string]any{"suggestion_id": id})
	return accepted, nil
}

func (s *plannerService) CancelAutoScheduled(ctx context.Context, id string) error {
	started := time.Now()
	now := s.clock.Now().UTC()

	s.mu.Lock()
	if _, err := s.loadStoreLocked(ctx, now); err != nil {
		s.mu.Unlock()
		s.observe(ctx, "cancel_auto_scheduled", started, err, nil)
		return err
	}
	sugg, ok := s.store.Get(id)
	s.mu.Unlock()

	if !ok {
		err := fmt.Errorf("suggestion %s: %w", id, repository.ErrNotFound)
		s.observe(ctx, "cancel_auto_scheduled", started, err, nil)
		return err
	}
	if sugg.Kind != domain.KindAutoScheduled || sugg.EventID == "" {
		err := fmt.Errorf("suggestion %s is not auto-scheduled", id)
		s.observe(ctx, "cancel_auto_scheduled", started, err, nil)
		return err
	}
	if s.gateway == nil {
		err := errors.New("no calendar gateway configured")
		s.observe(ctx, "cancel_auto_scheduled", started, err, nil)
		return err
	}

	if err := s.gateway.DeleteEvent(ctx, sugg.EventID); err != nil && !errors.Is(err, calendar.ErrNotFound) {
		s.sink.AddEntry(ctx, audit.Entry{
			Category:  domain.AuditAutoSchedule,
			Severity:  domain.SeverityError,
			Message:   "cancel failed: " + err.Error(),
			Metadata:  map[string]any{"suggestion_id": id, "event_id": sugg.EventID},
			CreatedAt: now,
		})
		wrapped := fmt.Errorf("deleting calendar event: %w", err)
		s.observe(ctx, "cancel_auto_scheduled", started, wrapped, nil)
		return wrapped
	}

	s.mu.Lock()
	if err := s.store.Cancel(id); err != nil {
		s.mu.Unlock()
		s.observe(ctx, "cancel_auto_scheduled", started, err, nil)
		return err
	}
	if err := s.suggestions.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.mu.Unlock()
		s.observe(ctx, "cancel_auto_scheduled", started, err, nil)
		return err
	}
	active := s.store.Active(now)
	s.mu.Unlock()

	s.sink.AddEntry(ctx, audit.Entry{
		Category:  domain.AuditAutoSchedule,
		Severity:  domain.SeverityInfo,
		Message:   "auto-scheduled event cancelled",
		Metadata:  map[string]any{"suggestion_id": id, "event_id": sugg.EventID},
		CreatedAt: now,
	})
	s.notify(active)
	s.observe(ctx, "cancel_auto_scheduled", started, nil, map[string]any{"suggestion_id": id})
	return nil
}

func (s *plannerService) SetRhythmState(ctx context.Context, state domain.RhythmState) (*app.AnalyzeResponse, error) {
	started := time.Now()
	if !domain.ValidRhythmStates[string(state)] {
		err := fmt.Errorf("invalid rhythm state %q", state)
		s.observe(ctx, "set_rhythm_state", started, err, nil)
		return nil, err
	}

	now := s.clock.Now().UTC()
	prev, err := s.stateRepo.Get(ctx)
	if err != nil {
		s.observe(ctx, "set_rhythm_state", started, err, nil)
		return nil, err
	}

	// The focus marker persists while inside a focus-like stretch and clears
	// on the way out, after this pass has had the chance to compute the
	// elapsed time from it.
	focusStart := prev.FocusStartedAt
	var persisted *time.Time
	switch {
	case state.IsFocusLike() && !prev.RhythmState.IsFocusLike():
		persisted = &now
		focusStart = &now
	case state.IsFocusLike():
		persisted = prev.FocusStartedAt
	}

	if err := s.stateRepo.Upsert(ctx, &repository.PlannerState{
		RhythmState:    state,
		FocusStartedAt: persisted,
		UpdatedAt:      now,
	}); err != nil {
		s.observe(ctx, "set_rhythm_state", started, err, nil)
		return nil, err
	}

	resp, err := s.run(ctx, app.TriggerRhythmChanged, now, prev.RhythmState, state, focusStart)
	s.observe(ctx, "set_rhythm_state", started, err, map[string]any{"state": string(state)})
	return resp, err
}

func (s *plannerService) UpdatePreferences(ctx context.Context, p domain.Preferences) (*app.AnalyzeResponse, error) {
	started := time.Now()
	now := s.clock.Now().UTC()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePreferencesRepo(tx).Upsert(ctx, &p); err != nil {
			return err
		}
		repository.NewSQLiteAuditRepo(tx).AddEntry(ctx, audit.Entry{
			Category:  domain.AuditProfileUpdated,
			Severity:  domain.SeverityInfo,
			Message:   "preferences updated",
			CreatedAt: now,
		})
		return nil
	})
	if err != nil {
		s.observe(ctx, "update_preferences", started, err, nil)
		return nil, err
	}

	pstate, err := s.stateRepo.Get(ctx)
	if err != nil {
		s.observe(ctx, "update_preferences", started, err, nil)
		return nil, err
	}

	resp, err := s.run(ctx, app.TriggerPrefsUpdated, now, pstate.RhythmState, pstate.RhythmState, pstate.FocusStartedAt)
	s.observe(ctx, "update_preferences", started, err, nil)
	return resp, err
}

func (s *plannerService) RefreshCalendar(ctx context.Context) error {
	started := time.Now()
	if s.gateway == nil {
		err := errors.New("no calendar gateway configured")
		s.observe(ctx, "refresh_calendar", started, err, nil)
		return err
	}

	now := s.clock.Now().UTC()
	events, err := s.gateway.ListEvents(ctx, startOfDay(now), startOfDay(now).Add(24*time.Hour))
	if err != nil {
		s.sink.AddEntry(ctx, audit.Entry{
			Category:  domain.AuditError,
			Severity:  domain.SeverityError,
			Message:   "calendar refresh failed: " + err.Error(),
			CreatedAt: now,
		})
		wrapped := fmt.Errorf("refreshing calendar: %w", err)
		s.observe(ctx, "refresh_calendar", started, wrapped, nil)
		return wrapped
	}

	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
	s.observe(ctx, "refresh_calendar", started, nil, map[string]any{"events": len(events)})
	return nil
}

func (s *plannerService) AddListener(fn func([]domain.PlannerSuggestion)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// loadStoreLocked re-reads configuration and the persisted suggestion set.
// Expiry runs through the store's sweep so every record leaves through its
// lifecycle; DeleteExpired then prunes the swept rows from the table.
// Must hold s.mu.
func (s *plannerService) loadStoreLocked(ctx context.Context, now time.Time) (domain.Config, error) {
	prefs, err := s.prefs.Get(ctx)
	if err != nil {
		return domain.Config{}, fmt.Errorf("reading preferences: %w", err)
	}
	cfg := domain.ApplyPreferences(*prefs)

	rows, err := s.suggestions.ListActive(ctx)
	if err != nil {
		return domain.Config{}, fmt.Errorf("loading suggestions: %w", err)
	}

	s.store.SetCapacity(cfg.MaxActiveSuggestions)
	s.store.Load(rows)
	s.store.Sweep(now)

	// Prunes the swept rows plus dismissed rows whose expiry has passed.
	if _, err := s.suggestions.DeleteExpired(ctx, now); err != nil {
		return domain.Config{}, fmt.Errorf("sweeping expired suggestions: %w", err)
	}
	return cfg, nil
}

// refreshEventsBestEffort updates the calendar snapshot before a pass. A
// failed list is a degraded pass, not a failed one.
func (s *plannerService) refreshEventsBestEffort(ctx context.Context, now time.Time, warnings *[]string) {
	if s.gateway == nil {
		return
	}
	events, err := s.gateway.ListEvents(ctx, startOfDay(now), startOfDay(now).Add(24*time.Hour))
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("calendar unavailable: %v", err))
		s.sink.AddEntry(ctx, audit.Entry{
			Category:  domain.AuditError,
			Severity:  domain.SeverityWarning,
			Message:   "calendar list failed, using last known events: " + err.Error(),
			CreatedAt: now,
		})
		return
	}
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
}

func (s *plannerService) notify(active []domain.PlannerSuggestion) {
	s.mu.Lock()
	listeners := make([]func([]domain.PlannerSuggestion), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(active)
	}
}

func (s *plannerService) observe(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}

func derefCheckIns(in []*domain.CheckIn) []domain.CheckIn {
	out := make([]domain.CheckIn, 0, len(in))
	for _, c := range in {
		out = append(out, *c)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
