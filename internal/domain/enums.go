package domain

type SuggestionKind string

const (
	KindBreakNeeded        SuggestionKind = "break_needed"
	KindFocusBlock         SuggestionKind = "focus_block"
	KindScheduleAdjustment SuggestionKind = "schedule_adjustment"
	KindReflectionReminder SuggestionKind = "reflection_reminder"
	KindAnchorReminder     SuggestionKind = "anchor_reminder"
	KindFrictionWarning    SuggestionKind = "friction_warning"
	KindAutoScheduled      SuggestionKind = "auto_scheduled"
)

// ValidSuggestionKinds is the canonical set of accepted suggestion kind strings.
var ValidSuggestionKinds = map[string]bool{
	"break_needed": true, "focus_block": true, "schedule_adjustment": true,
	"reflection_reminder": true, "anchor_reminder": true,
	"friction_warning": true, "auto_scheduled": true,
}

type SuggestionPriority string

const (
	PriorityLow    SuggestionPriority = "low"
	PriorityMedium SuggestionPriority = "medium"
	PriorityHigh   SuggestionPriority = "high"
)

// Rank orders priorities for eviction: higher rank survives longer.
func (p SuggestionPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

type RhythmState string

const (
	StateFocus   RhythmState = "focus"
	StateFlow    RhythmState = "flow"
	StateOpen    RhythmState = "open"
	StateReflect RhythmState = "reflect"
	StateRecover RhythmState = "recover"
)

// ValidRhythmStates is the canonical set of accepted rhythm state strings.
var ValidRhythmStates = map[string]bool{
	"focus": true, "flow": true, "open": true, "reflect": true, "recover": true,
}

// IsFocusLike reports whether the state counts toward extended-focus tracking.
func (s RhythmState) IsFocusLike() bool {
	return s == StateFocus || s == StateFlow
}

type ActionKind string

const (
	ActionCreateEvent   ActionKind = "create_event"
	ActionNavigate      ActionKind = "navigate"
	ActionAutoScheduled ActionKind = "auto_scheduled"
	ActionSnooze        ActionKind = "snooze"
	ActionDismiss       ActionKind = "dismiss"
)

type AuditCategory string

const (
	AuditSystemInit     AuditCategory = "system-init"
	AuditSuggestion     AuditCategory = "ai-suggestion"
	AuditIntervention   AuditCategory = "ai-intervention"
	AuditAutoSchedule   AuditCategory = "auto-schedule"
	AuditProfileUpdated AuditCategory = "profile-updated"
	AuditError          AuditCategory = "error"
)

type AuditSeverity string

const (
	SeverityInfo    AuditSeverity = "info"
	SeverityWarning AuditSeverity = "warning"
	SeveritySuccess AuditSeverity = "success"
	SeverityError   AuditSeverity = "error"
)
