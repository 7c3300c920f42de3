package domain

import "time"

// SuggestionAction is a tagged union keyed by Kind. Only the fields relevant
// to a given kind are populated; accessors return the zero value otherwise.
type SuggestionAction struct {
	Kind ActionKind

	// create_event
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	ColorID     *string
	DurationMin int

	// navigate
	Target string

	// auto_scheduled
	EventID string
}

// NewCreateEventAction builds a create_event action for the given interval.
func NewCreateEventAction(summary, description string, start, end time.Time, colorID *string) *SuggestionAction {
	return &SuggestionAction{
		Kind:        ActionCreateEvent,
		Summary:     summary,
		Description: description,
		Start:       start,
		End:         end,
		ColorID:     colorID,
		DurationMin: int(end.Sub(start) / time.Minute),
	}
}

// NewNavigateAction builds a navigation action pointing at an app surface.
func NewNavigateAction(target string) *SuggestionAction {
	return &SuggestionAction{Kind: ActionNavigate, Target: target}
}

// NewAutoScheduledAction records a committed external calendar event.
func NewAutoScheduledAction(eventID string, start, end time.Time) *SuggestionAction {
	return &SuggestionAction{Kind: ActionAutoScheduled, EventID: eventID, Start: start, End: end}
}

// PlannerSuggestion is the planner's central unit of work. Created by an
// analysis policy, mutated only by the suggestion store and the scheduling
// policy, destroyed by expiry sweep or explicit dismissal/acceptance.
type PlannerSuggestion struct {
	ID          string
	Kind        SuggestionKind
	Priority    SuggestionPriority
	Title       string
	Description string
	Action      *SuggestionAction

	// AnchorID is the dedup key for anchor reminders; empty for other kinds.
	AnchorID string

	CreatedAt time.Time
	ExpiresAt time.Time
	Dismissed bool

	// EventID is the external calendar event id once committed.
	EventID string
}

// Active reports whether the suggestion is still live at the given instant.
func (s PlannerSuggestion) Active(now time.Time) bool {
	return !s.Dismissed && now.Before(s.ExpiresAt)
}

// Clone returns a deep copy so callers never share the store's action pointer.
func (s PlannerSuggestion) Clone() PlannerSuggestion {
	out := s
	if s.Action != nil {
		a := *s.Action
		out.Action = &a
	}
	return out
}
