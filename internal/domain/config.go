package domain

// Preferences is the user-facing, persisted planner configuration. It is
// stored as a flat key-value record and never consumed directly: the engine
// works from the Config produced by ApplyPreferences.
type Preferences struct {
	FocusBreakThresholdMin       int
	DefaultBreakDurationMin      int
	DefaultFocusBlockDurationMin int
	AutoScheduleBreaks           bool
	AutoScheduleFocusBlocks      bool
	RequireConfirmation          bool
	WorkingHoursStartMin         int
	WorkingHoursEndMin           int
	MinEventGapMin               int
	FrictionThreshold            int
	AnchorReminderLeadMin        int
	MaxActiveSuggestions         int
	SuggestionTTLMin             int
	NotificationsEnabled         bool
}

// DefaultPreferences returns the out-of-the-box planner preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		FocusBreakThresholdMin:       90,
		DefaultBreakDurationMin:      15,
		DefaultFocusBlockDurationMin: 50,
		AutoScheduleBreaks:           false,
		AutoScheduleFocusBlocks:      false,
		RequireConfirmation:          true,
		WorkingHoursStartMin:         9 * 60,
		WorkingHoursEndMin:           18 * 60,
		MinEventGapMin:               5,
		FrictionThreshold:            3,
		AnchorReminderLeadMin:        15,
		MaxActiveSuggestions:         5,
		SuggestionTTLMin:             60,
		NotificationsEnabled:         true,
	}
}

// Config is the validated runtime form of Preferences. There is exactly one
// way to obtain it (ApplyPreferences), so the two can never drift apart.
type Config struct {
	FocusBreakThresholdMin       int
	DefaultBreakDurationMin      int
	DefaultFocusBlockDurationMin int
	AutoScheduleBreaks           bool
	AutoScheduleFocusBlocks      bool
	RequireConfirmation          bool
	WorkingHoursStartMin         int
	WorkingHoursEndMin           int
	MinEventGapMin               int
	FrictionThreshold            int
	AnchorReminderLeadMin        int
	MaxActiveSuggestions         int
	SuggestionTTLMin             int
	NotificationsEnabled         bool
}

// ApplyPreferences validates p and derives the runtime Config, clamping
// out-of-range values instead of failing. Invalid working-hour bounds fall
// back to the defaults.
func ApplyPreferences(p Preferences) Config {
	def := DefaultPreferences()

	whStart := p.WorkingHoursStartMin
	whEnd := p.WorkingHoursEndMin
	if whStart < 0 || whEnd > 24*60 || whStart >= whEnd {
		whStart = def.WorkingHoursStartMin
		whEnd = def.WorkingHoursEndMin
	}

	return Config{
		FocusBreakThresholdMin:       clampInt(p.FocusBreakThresholdMin, 15, 8*60, def.FocusBreakThresholdMin),
		DefaultBreakDurationMin:      clampInt(p.DefaultBreakDurationMin, 5, 120, def.DefaultBreakDurationMin),
		DefaultFocusBlockDurationMin: clampInt(p.DefaultFocusBlockDurationMin, 15, 4*60, def.DefaultFocusBlockDurationMin),
		AutoScheduleBreaks:           p.AutoScheduleBreaks,
		AutoScheduleFocusBlocks:      p.AutoScheduleFocusBlocks,
		RequireConfirmation:          p.RequireConfirmation,
		WorkingHoursStartMin:         whStart,
		WorkingHoursEndMin:           whEnd,
		MinEventGapMin:               clampInt(p.MinEventGapMin, 0, 60, def.MinEventGapMin),
		FrictionThreshold:            clampInt(p.FrictionThreshold, 1, 20, def.FrictionThreshold),
		AnchorReminderLeadMin:        clampInt(p.AnchorReminderLeadMin, 1, 120, def.AnchorReminderLeadMin),
		MaxActiveSuggestions:         clampInt(p.MaxActiveSuggestions, 1, 20, def.MaxActiveSuggestions),
		SuggestionTTLMin:             clampInt(p.SuggestionTTLMin, 5, 24*60, def.SuggestionTTLMin),
		NotificationsEnabled:         p.NotificationsEnabled,
	}
}

// AutoScheduleFor reports whether auto-scheduling is enabled for the kind.
func (c Config) AutoScheduleFor(kind SuggestionKind) bool {
	switch kind {
	case KindBreakNeeded:
		return c.AutoScheduleBreaks
	case KindFocusBlock:
		return c.AutoScheduleFocusBlocks
	default:
		return false
	}
}

// clampInt returns val clamped to [lo, hi], or fallback when val is zero
// (unset in the flat preference record).
func clampInt(val, lo, hi, fallback int) int {
	if val == 0 {
		return fallback
	}
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
