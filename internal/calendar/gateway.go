package calendar

import (
	"context"
	"time"

	"github.com/evanmoray/cadence/internal/domain"
)

// CreateEventRequest holds the parameters for creating an external event.
type CreateEventRequest struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	ColorID     *string
}

// Gateway is the planner's contract with the external calendar service.
// All three operations may fail; callers catch and audit failures rather
// than letting them escape the planner boundary.
type Gateway interface {
	// CreateEvent commits an event and returns it with its assigned id.
	CreateEvent(ctx context.Context, req CreateEventRequest) (*domain.CalendarEvent, error)

	// ListEvents returns events overlapping [timeMin, timeMax].
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]domain.CalendarEvent, error)

	// DeleteEvent removes a previously created event.
	DeleteEvent(ctx context.Context, eventID string) error

	// Available checks whether the calendar service is reachable.
	Available(ctx context.Context) bool
}
