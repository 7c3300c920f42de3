package formatter

import (
	"fmt"
	"time"

	"github.com/evanmoray/cadence/internal/domain"
)

// TruncID shortens a UUID to its first segment for display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ClockTime renders an instant as a local HH:MM.
func ClockTime(t time.Time) string {
	return t.Local().Format("15:04")
}

// HumanTimestamp renders an instant as a local date and time.
func HumanTimestamp(t time.Time) string {
	return t.Local().Format("Jan 2 15:04")
}

// FormatMinutes renders a duration in minutes as "1h30m" style text.
func FormatMinutes(min int) string {
	if min < 60 {
		return fmt.Sprintf("%dm", min)
	}
	if min%60 == 0 {
		return fmt.Sprintf("%dh", min/60)
	}
	return fmt.Sprintf("%dh%02dm", min/60, min%60)
}

// KindLabel renders a suggestion kind as a short colored label.
func KindLabel(kind domain.SuggestionKind) string {
	switch kind {
	case domain.KindBreakNeeded:
		return StyleGreen.Render("break")
	case domain.KindFocusBlock:
		return StyleBlue.Render("focus")
	case domain.KindAnchorReminder:
		return StylePurple.Render("anchor")
	case domain.KindFrictionWarning:
		return StyleRed.Render("friction")
	case domain.KindReflectionReminder:
		return StylePurple.Render("reflect")
	case domain.KindAutoScheduled:
		return StyleYellow.Render("scheduled")
	default:
		return StyleDim.Render(string(kind))
	}
}

// ActionSummary renders a one-line description of a suggestion's action.
func ActionSummary(a *domain.SuggestionAction) string {
	if a == nil {
		return Dim("-")
	}
	switch a.Kind {
	case domain.ActionCreateEvent:
		return fmt.Sprintf("%s %s-%s", a.Summary, ClockTime(a.Start), ClockTime(a.End))
	case domain.ActionNavigate:
		return Dim("open " + a.Target)
	case domain.ActionAutoScheduled:
		return fmt.Sprintf("on calendar %s-%s", ClockTime(a.Start), ClockTime(a.End))
	default:
		return Dim(string(a.Kind))
	}
}
