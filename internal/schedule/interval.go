package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Overlaps tests two half-open intervals: touching boundaries do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// RoundUpToStep rounds t up to the next multiple of step, leaving aligned
// instants unchanged.
func RoundUpToStep(t time.Time, step time.Duration) time.Time {
	rounded := t.Truncate(step)
	if rounded.Equal(t) {
		return t
	}
	return rounded.Add(step)
}

// NewID generates a unique identifier for planner-owned entities.
func NewID() string {
	return uuid.New().String()
}

// minuteOfDay returns minutes elapsed since t's midnight.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// atMinuteOfDay returns the instant on t's calendar day at the given
// minutes-from-midnight offset.
func atMinuteOfDay(t time.Time, min int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, min/60, min%60, 0, 0, t.Location())
}
