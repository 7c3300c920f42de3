package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_ProposedTransitions(t *testing.T) {
	for _, event := range []string{eventDismiss, eventExpire, eventAutoSchedule} {
		l, err := newLifecycle(lifeProposed, "s-1")
		require.NoError(t, err)
		assert.NoError(t, l.fire(event), event)
	}
}

func TestLifecycle_ProposedRejectsCancel(t *testing.T) {
	l, err := newLifecycle(lifeProposed, "s-1")
	require.NoError(t, err)
	assert.Error(t, l.fire(eventCancel))
}

func TestLifecycle_AutoScheduledCancel(t *testing.T) {
	l, err := newLifecycle(lifeAutoScheduled, "s-1")
	require.NoError(t, err)
	require.NoError(t, l.fire(eventCancel))
	assert.Equal(t, lifeCancelled, l.current())
}

func TestLifecycle_TerminalStatesRejectEverything(t *testing.T) {
	for _, state := range []string{lifeDismissed, lifeExpired, lifeCancelled} {
		l, err := newLifecycle(state, "s-1")
		require.NoError(t, err)
		for _, event := range []string{eventDismiss, eventExpire, eventAutoSchedule, eventCancel} {
			assert.Error(t, l.fire(event), "%s should reject %s", state, event)
		}
	}
}
