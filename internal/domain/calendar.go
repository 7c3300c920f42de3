package domain

import "time"

// CalendarEvent mirrors the external calendar's event shape. Events are
// cached read-only inside the planner for conflict checks.
type CalendarEvent struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	ColorID     *string
}

// TimeSlot is a candidate interval produced by the slot finder.
type TimeSlot struct {
	Start       time.Time
	End         time.Time
	Available   bool
	ConflictIDs []string
}

// DurationMin returns the slot length in whole minutes.
func (s TimeSlot) DurationMin() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
