package formatter

import (
	"fmt"
	"strings"

	"github.com/evanmoray/cadence/internal/domain"
)

// RenderSuggestions renders the active suggestion list as a table inside a box.
func RenderSuggestions(suggestions []domain.PlannerSuggestion) string {
	if len(suggestions) == 0 {
		return Dim("No active suggestions.") + "\n"
	}

	headers := []string{"ID", "PRIORITY", "KIND", "TITLE", "ACTION"}
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []string{
			TruncID(s.ID),
			PriorityIndicator(s.Priority),
			KindLabel(s.Kind),
			s.Title,
			ActionSummary(s.Action),
		})
	}
	return RenderBox("Suggestions", RenderTable(headers, rows))
}

// RenderAnalysis renders an analysis response: the suggestion list plus any
// auto-schedule results and warnings.
func RenderAnalysis(suggestions []domain.PlannerSuggestion, autoScheduled []string, warnings []string) string {
	var b strings.Builder
	b.WriteString(RenderSuggestions(suggestions))
	b.WriteString("\n")

	if len(autoScheduled) > 0 {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("Auto-scheduled %d event(s).", len(autoScheduled))))
		b.WriteString("\n")
	}
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render("warning: " + w))
		b.WriteString("\n")
	}
	return b.String()
}
