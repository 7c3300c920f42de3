package schedule

import "time"

// Clock is the planner's single source of the current instant. Injecting it
// keeps the slot finder and the analysis policies deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
