package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerSuggestion_Active(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s := PlannerSuggestion{CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	assert.True(t, s.Active(now))
	assert.True(t, s.Active(now.Add(59*time.Minute)))
	assert.False(t, s.Active(now.Add(time.Hour)), "expiry instant itself is inactive")

	s.Dismissed = true
	assert.False(t, s.Active(now))
}

func TestPlannerSuggestion_CloneDoesNotShareAction(t *testing.T) {
	s := PlannerSuggestion{
		ID:     "s-1",
		Kind:   KindBreakNeeded,
		Action: NewNavigateAction("today"),
	}

	c := s.Clone()
	require.NotNil(t, c.Action)
	c.Action.Target = "elsewhere"

	assert.Equal(t, "today", s.Action.Target)
}

func TestNewCreateEventAction_DurationMin(t *testing.T) {
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	a := NewCreateEventAction("Break", "", start, start.Add(15*time.Minute), nil)

	assert.Equal(t, ActionCreateEvent, a.Kind)
	assert.Equal(t, 15, a.DurationMin)
}

func TestCheckIn_OccupiedUntil(t *testing.T) {
	slot := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	c := CheckIn{Slot: slot}

	assert.Equal(t, slot.Add(30*time.Minute), c.OccupiedUntil())
}
