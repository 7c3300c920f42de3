package domain

import "time"

// CheckIn is a scheduled task occurrence owned by the surrounding
// application. The planner reads and reacts to check-ins but only ever
// mutates the Done flag.
type CheckIn struct {
	ID       string
	Category string
	Task     string
	WaveID   *string
	Slot     time.Time
	LoggedAt time.Time
	Done     bool
	IsAnchor bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingOccupancyMin is the synthetic occupancy window, in minutes, that a
// not-done check-in claims from its slot during conflict detection.
const PendingOccupancyMin = 30

// OccupiedUntil returns the end of the check-in's synthetic occupancy window.
func (c CheckIn) OccupiedUntil() time.Time {
	return c.Slot.Add(PendingOccupancyMin * time.Minute)
}

// Wave is a named time band consumed for display and labeling only.
type Wave struct {
	ID        string
	Name      string
	Color     string
	StartHour int
	EndHour   int
}
