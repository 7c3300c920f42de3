package schedule

import (
	"time"

	"github.com/evanmoray/cadence/internal/domain"
)

type ConflictKind string

const (
	ConflictEvent   ConflictKind = "event"
	ConflictCheckIn ConflictKind = "checkin"
)

// Conflict identifies one calendar event or pending check-in overlapping a
// candidate interval.
type Conflict struct {
	ID    string
	Kind  ConflictKind
	Start time.Time
	End   time.Time
}

// ConflictDetector tests candidate intervals against a snapshot of calendar
// events and pending check-ins. It holds its own copies, never fails, and has
// no side effects.
type ConflictDetector struct {
	events   []domain.CalendarEvent
	checkIns []domain.CheckIn
}

// NewConflictDetector snapshots the given events and check-ins. Done
// check-ins are dropped up front; the rest occupy a synthetic window of
// domain.PendingOccupancyMin minutes from their slot.
func NewConflictDetector(events []domain.CalendarEvent, checkIns []domain.CheckIn) *ConflictDetector {
	d := &ConflictDetector{
		events: make([]domain.CalendarEvent, len(events)),
	}
	copy(d.events, events)
	for _, c := range checkIns {
		if c.Done {
			continue
		}
		d.checkIns = append(d.checkIns, c)
	}
	return d
}

// Detect returns every known interval overlapping [start, end). The result
// is possibly empty, never nil on conflicts.
func (d *ConflictDetector) Detect(start, end time.Time) []Conflict {
	var out []Conflict
	for _, ev := range d.events {
		if Overlaps(start, end, ev.Start, ev.End) {
			out = append(out, Conflict{ID: ev.ID, Kind: ConflictEvent, Start: ev.Start, End: ev.End})
		}
	}
	for _, c := range d.checkIns {
		if Overlaps(start, end, c.Slot, c.OccupiedUntil()) {
			out = append(out, Conflict{ID: c.ID, Kind: ConflictCheckIn, Start: c.Slot, End: c.OccupiedUntil()})
		}
	}
	return out
}
