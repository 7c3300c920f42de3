package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/evanmoray/cadence/internal/calendar"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/google/uuid"
)

// FakeClock is a settable Clock for deterministic tests.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{t: t}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Set jumps the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// FakeGateway is an in-memory calendar.Gateway that records calls and can be
// made to fail per operation.
type FakeGateway struct {
	mu sync.Mutex

	Events []domain.CalendarEvent

	CreateErr error
	ListErr   error
	DeleteErr error

	CreateCalls []calendar.CreateEventRequest
	DeleteCalls []string
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

func (g *FakeGateway) CreateEvent(_ context.Context, req calendar.CreateEventRequest) (*domain.CalendarEvent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.CreateCalls = append(g.CreateCalls, req)
	if g.CreateErr != nil {
		return nil, g.CreateErr
	}

	ev := domain.CalendarEvent{
		ID:          "fake-" + uuid.New().String()[:8],
		Summary:     req.Summary,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		ColorID:     req.ColorID,
	}
	g.Events = append(g.Events, ev)
	return &ev, nil
}

func (g *FakeGateway) ListEvents(_ context.Context, timeMin, timeMax time.Time) ([]domain.CalendarEvent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ListErr != nil {
		return nil, g.ListErr
	}

	var out []domain.CalendarEvent
	for _, ev := range g.Events {
		if ev.Start.Before(timeMax) && ev.End.After(timeMin) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (g *FakeGateway) DeleteEvent(_ context.Context, eventID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.DeleteCalls = append(g.DeleteCalls, eventID)
	if g.DeleteErr != nil {
		return g.DeleteErr
	}

	for i, ev := range g.Events {
		if ev.ID == eventID {
			g.Events = append(g.Events[:i], g.Events[i+1:]...)
			return nil
		}
	}
	return calendar.ErrNotFound
}

func (g *FakeGateway) Available(context.Context) bool { return true }
