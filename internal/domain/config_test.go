package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyPreferences_Defaults(t *testing.T) {
	cfg := ApplyPreferences(DefaultPreferences())

	assert.Equal(t, 90, cfg.FocusBreakThresholdMin)
	assert.Equal(t, 15, cfg.DefaultBreakDurationMin)
	assert.Equal(t, 9*60, cfg.WorkingHoursStartMin)
	assert.Equal(t, 18*60, cfg.WorkingHoursEndMin)
	assert.Equal(t, 3, cfg.FrictionThreshold)
	assert.Equal(t, 5, cfg.MaxActiveSuggestions)
	assert.True(t, cfg.RequireConfirmation)
}

func TestApplyPreferences_ClampsOutOfRange(t *testing.T) {
	p := DefaultPreferences()
	p.FocusBreakThresholdMin = 2     // below minimum
	p.DefaultBreakDurationMin = 600  // above maximum
	p.MaxActiveSuggestions = 100     // above maximum
	p.FrictionThreshold = -4         // below minimum

	cfg := ApplyPreferences(p)

	assert.Equal(t, 15, cfg.FocusBreakThresholdMin)
	assert.Equal(t, 120, cfg.DefaultBreakDurationMin)
	assert.Equal(t, 20, cfg.MaxActiveSuggestions)
	assert.Equal(t, 1, cfg.FrictionThreshold)
}

func TestApplyPreferences_UnsetFieldsFallBackToDefaults(t *testing.T) {
	cfg := ApplyPreferences(Preferences{})

	def := DefaultPreferences()
	assert.Equal(t, def.FocusBreakThresholdMin, cfg.FocusBreakThresholdMin)
	assert.Equal(t, def.WorkingHoursStartMin, cfg.WorkingHoursStartMin)
	assert.Equal(t, def.WorkingHoursEndMin, cfg.WorkingHoursEndMin)
	assert.Equal(t, def.SuggestionTTLMin, cfg.SuggestionTTLMin)
}

func TestApplyPreferences_InvalidWorkingHoursFallBack(t *testing.T) {
	p := DefaultPreferences()
	p.WorkingHoursStartMin = 1000
	p.WorkingHoursEndMin = 500

	cfg := ApplyPreferences(p)

	assert.Equal(t, 9*60, cfg.WorkingHoursStartMin)
	assert.Equal(t, 18*60, cfg.WorkingHoursEndMin)
}

func TestConfig_AutoScheduleFor(t *testing.T) {
	cfg := Config{AutoScheduleBreaks: true, AutoScheduleFocusBlocks: false}

	assert.True(t, cfg.AutoScheduleFor(KindBreakNeeded))
	assert.False(t, cfg.AutoScheduleFor(KindFocusBlock))
	assert.False(t, cfg.AutoScheduleFor(KindFrictionWarning), "only break/focus kinds are auto-schedulable")
}

func TestPriority_Rank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
}
