package app

import (
	"time"

	"github.com/evanmoray/cadence/internal/domain"
)

// TriggerKind records why an analysis pass ran. Triggers carry no payload;
// every pass re-reads current state and recomputes from scratch.
type TriggerKind string

const (
	TriggerDataUpdated   TriggerKind = "data_updated"
	TriggerRhythmChanged TriggerKind = "rhythm_changed"
	TriggerPrefsUpdated  TriggerKind = "prefs_updated"
	TriggerManual        TriggerKind = "manual"
)

var validTriggers = map[TriggerKind]bool{
	TriggerDataUpdated:   true,
	TriggerRhythmChanged: true,
	TriggerPrefsUpdated:  true,
	TriggerManual:        true,
}

func (t TriggerKind) Valid() bool {
	return validTriggers[t]
}

type AnalyzeRequest struct {
	Trigger TriggerKind
	// Now overrides the engine clock for this pass. Nil means wall time.
	Now *time.Time
}

func NewAnalyzeRequest(trigger TriggerKind) AnalyzeRequest {
	return AnalyzeRequest{Trigger: trigger}
}

type AnalyzeResponse struct {
	GeneratedAt time.Time
	Trigger     TriggerKind
	Suggestions []domain.PlannerSuggestion
	// AutoScheduled lists the IDs of suggestions committed to the calendar
	// during this pass.
	AutoScheduled []string
	Warnings      []string
}

type AnalyzeErrorCode string

const (
	AnalyzeErrInvalidTrigger AnalyzeErrorCode = "INVALID_TRIGGER"
	AnalyzeErrInternal       AnalyzeErrorCode = "INTERNAL_ERROR"
)

type AnalyzeError struct {
	Code    AnalyzeErrorCode
	Message string
}

func (e *AnalyzeError) Error() string {
	return string(e.Code) + ": " + e.Message
}
