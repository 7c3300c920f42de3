package planner

import (
	"fmt"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/felixgeelhaar/statekit"
)

// Suggestion lifecycle states. Proposed is the only non-terminal state; it
// ends through exactly one of dismissal, expiry, or auto-scheduling, and an
// auto-scheduled suggestion can still be cancelled.
const (
	lifeProposed      = "proposed"
	lifeDismissed     = "dismissed"
	lifeExpired       = "expired"
	lifeAutoScheduled = "auto_scheduled"
	lifeCancelled     = "cancelled"
)

const (
	eventDismiss      = "dismiss"
	eventExpire       = "expire"
	eventAutoSchedule = "auto_schedule"
	eventCancel       = "cancel"
)

type lifecycleContext struct {
	SuggestionID string
}

// lifecycle wraps a statekit machine enforcing the legal transitions for one
// suggestion. Store mutators consult it before touching the record.
type lifecycle struct {
	interpreter *statekit.Interpreter[lifecycleContext]
}

func newLifecycle(initial string, suggestionID string) (*lifecycle, error) {
	builder := statekit.NewMachine[lifecycleContext]("suggestion-lifecycle").
		WithInitial(statekit.StateID(initial)).
		WithContext(lifecycleContext{SuggestionID: suggestionID})

	builder.State(lifeProposed).
		On(eventDismiss).Target(lifeDismissed).
		On(eventExpire).Target(lifeExpired).
		On(eventAutoSchedule).Target(lifeAutoScheduled).
		Done()

	builder.State(lifeAutoScheduled).
		On(eventCancel).Target(lifeCancelled).
		On(eventExpire).Target(lifeExpired).
		Done()

	builder.State(lifeDismissed).Done()
	builder.State(lifeExpired).Done()
	builder.State(lifeCancelled).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building suggestion lifecycle: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return &lifecycle{interpreter: interpreter}, nil
}

// lifecycleFor derives the machine's initial state from a persisted record.
func lifecycleFor(s *domain.PlannerSuggestion) (*lifecycle, error) {
	initial := lifeProposed
	switch {
	case s.Dismissed:
		initial = lifeDismissed
	case s.Kind == domain.KindAutoScheduled:
		initial = lifeAutoScheduled
	}
	return newLifecycle(initial, s.ID)
}

// fire attempts the transition and reports whether it was legal. statekit
// leaves the state unchanged on an unmatched event, which is how we detect
// rejection (none of our transitions are self-loops).
func (l *lifecycle) fire(event string) error {
	before := l.current()
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if l.current() == before {
		return fmt.Errorf("suggestion in state %q does not allow %q", before, event)
	}
	return nil
}

func (l *lifecycle) current() string {
	return string(l.interpreter.State().Value)
}
