package cli

import (
	"github.com/evanmoray/cadence/internal/planner"
	"github.com/evanmoray/cadence/internal/repository"
	"github.com/spf13/cobra"
)

// App holds references to the services and repositories used by CLI commands.
type App struct {
	Planner  planner.PlannerService
	CheckIns planner.CheckInService
	Waves    planner.WaveService
	Prefs    repository.PreferencesRepo
	Audit    repository.AuditRepo

	// IsInteractive reports whether stdin is a terminal; confirmation
	// prompts are only shown when it is.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "cadence" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "cadence",
		Short: "Adaptive day planner and intervention engine",
	}

	root.AddCommand(
		newCheckinCmd(app),
		newWaveCmd(app),
		newRhythmCmd(app),
		newAnalyzeCmd(app),
		newSuggestCmd(app),
		newPrefsCmd(app),
		newAuditCmd(app),
	)

	return root
}
