package schedule

import (
	"testing"
	"time"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(id string, start, end time.Time) domain.CalendarEvent {
	return domain.CalendarEvent{ID: id, Summary: id, Start: start, End: end}
}

func TestDetect_EventOverlap(t *testing.T) {
	d := NewConflictDetector([]domain.CalendarEvent{
		event("ev-1", at(9, 0), at(10, 0)),
		event("ev-2", at(14, 0), at(15, 0)),
	}, nil)

	conflicts := d.Detect(at(9, 30), at(10, 30))

	require.Len(t, conflicts, 1)
	assert.Equal(t, "ev-1", conflicts[0].ID)
	assert.Equal(t, ConflictEvent, conflicts[0].Kind)
}

func TestDetect_PendingCheckInSyntheticWindow(t *testing.T) {
	pending := domain.CheckIn{ID: "ci-1", Slot: at(11, 0)}
	done := domain.CheckIn{ID: "ci-2", Slot: at(11, 0), Done: true}

	d := NewConflictDetector(nil, []domain.CheckIn{pending, done})

	// Occupies [11:00, 11:30); a probe at 11:29 still conflicts.
	conflicts := d.Detect(at(11, 29), at(11, 45))
	require.Len(t, conflicts, 1)
	assert.Equal(t, "ci-1", conflicts[0].ID)
	assert.Equal(t, ConflictCheckIn, conflicts[0].Kind)
	assert.Equal(t, at(11, 30), conflicts[0].End)

	// A probe starting exactly at the window end does not.
	assert.Empty(t, d.Detect(at(11, 30), at(12, 0)))
}

func TestDetect_EmptyWhenFree(t *testing.T) {
	d := NewConflictDetector([]domain.CalendarEvent{event("ev-1", at(9, 0), at(10, 0))}, nil)

	assert.Empty(t, d.Detect(at(10, 0), at(11, 0)))
}

func TestDetect_MultipleConflicts(t *testing.T) {
	d := NewConflictDetector(
		[]domain.CalendarEvent{event("ev-1", at(9, 0), at(10, 0))},
		[]domain.CheckIn{{ID: "ci-1", Slot: at(9, 45)}},
	)

	conflicts := d.Detect(at(9, 30), at(10, 30))
	assert.Len(t, conflicts, 2)
}

func TestNewConflictDetector_SnapshotsInput(t *testing.T) {
	events := []domain.CalendarEvent{event("ev-1", at(9, 0), at(10, 0))}
	d := NewConflictDetector(events, nil)

	events[0].End = at(18, 0)

	conflicts := d.Detect(at(11, 0), at(12, 0))
	assert.Empty(t, conflicts, "detector must not observe caller mutations")
}
