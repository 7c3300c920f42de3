package testutil

import (
	"time"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/google/uuid"
)

// CheckIn options
type CheckInOption func(*domain.CheckIn)

func WithSlot(t time.Time) CheckInOption {
	return func(c *domain.CheckIn) {
		c.Slot = t
	}
}

func WithCategory(cat string) CheckInOption {
	return func(c *domain.CheckIn) {
		c.Category = cat
	}
}

func WithDone() CheckInOption {
	return func(c *domain.CheckIn) {
		c.Done = true
	}
}

func WithAnchor() CheckInOption {
	return func(c *domain.CheckIn) {
		c.IsAnchor = true
	}
}

func WithWaveID(id string) CheckInOption {
	return func(c *domain.CheckIn) {
		c.WaveID = &id
	}
}

func NewTestCheckIn(task string, opts ...CheckInOption) *domain.CheckIn {
	now := time.Now().UTC()
	c := &domain.CheckIn{
		ID:        uuid.New().String(),
		Category:  "task",
		Task:      task,
		Slot:      now.Add(time.Hour),
		LoggedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CalendarEvent options
type EventOption func(*domain.CalendarEvent)

func WithEventID(id string) EventOption {
	return func(e *domain.CalendarEvent) {
		e.ID = id
	}
}

func NewTestEvent(summary string, start, end time.Time, opts ...EventOption) domain.CalendarEvent {
	e := domain.CalendarEvent{
		ID:      uuid.New().String(),
		Summary: summary,
		Start:   start,
		End:     end,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// PlannerSuggestion options
type SuggestionOption func(*domain.PlannerSuggestion)

func WithKind(k domain.SuggestionKind) SuggestionOption {
	return func(s *domain.PlannerSuggestion) {
		s.Kind = k
	}
}

func WithPriority(p domain.SuggestionPriority) SuggestionOption {
	return func(s *domain.PlannerSuggestion) {
		s.Priority = p
	}
}

func WithCreatedAt(t time.Time) SuggestionOption {
	return func(s *domain.PlannerSuggestion) {
		s.CreatedAt = t
	}
}

func WithExpiresAt(t time.Time) SuggestionOption {
	return func(s *domain.PlannerSuggestion) {
		s.ExpiresAt = t
	}
}

func WithAnchorID(id string) SuggestionOption {
	return func(s *domain.PlannerSuggestion) {
		s.AnchorID = id
	}
}

func WithDismissed() SuggestionOption {
	return func(s *domain.PlannerSuggestion) {
		s.Dismissed = true
	}
}

func WithAction(a *domain.SuggestionAction) SuggestionOption {
	return func(s *domain.PlannerSuggestion) {
		s.Action = a
	}
}

func NewTestSuggestion(title string, opts ...SuggestionOption) *domain.PlannerSuggestion {
	now := time.Now().UTC()
	s := &domain.PlannerSuggestion{
		ID:        uuid.New().String(),
		Kind:      domain.KindBreakNeeded,
		Priority:  domain.PriorityMedium,
		Title:     title,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
