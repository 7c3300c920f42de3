package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/evanmoray/cadence/internal/cli/formatter"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newSuggestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Work with planner suggestions",
	}

	cmd.AddCommand(
		newSuggestListCmd(app),
		newSuggestAcceptCmd(app),
		newSuggestDismissCmd(app),
		newSuggestCancelCmd(app),
	)

	return cmd
}

func newSuggestListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := app.Planner.Suggestions(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderSuggestions(suggestions))
			return nil
		},
	}
}

func newSuggestAcceptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "accept ID",
		Short: "Accept a suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sugg, err := resolveSuggestion(ctx, app, args[0])
			if err != nil {
				return err
			}

			if confirm, err := confirmAccept(ctx, app, sugg); err != nil {
				return err
			} else if !confirm {
				fmt.Fprintln(cmd.OutOrStdout(), "Not accepted.")
				return nil
			}

			accepted, err := app.Planner.Accept(ctx, sugg.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Accepted: %s\n", accepted.Title)
			if accepted.Action != nil && accepted.Action.Kind == domain.ActionCreateEvent {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n",
					formatter.Dim(fmt.Sprintf("Planned for %s-%s. The event is yours to put on the calendar.",
						formatter.ClockTime(accepted.Action.Start), formatter.ClockTime(accepted.Action.End))))
			}
			return nil
		},
	}
}

func newSuggestDismissCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss ID",
		Short: "Dismiss a suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sugg, err := resolveSuggestion(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Planner.Dismiss(ctx, sugg.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dismissed: %s\n", sugg.Title)
			return nil
		},
	}
}

func newSuggestCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel an auto-scheduled suggestion and delete its calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sugg, err := resolveSuggestion(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Planner.CancelAutoScheduled(ctx, sugg.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled: %s\n", sugg.Title)
			return nil
		},
	}
}

// confirmAccept shows a huh confirmation prompt when the preferences require
// one and stdin is a terminal. Non-interactive runs accept without asking.
func confirmAccept(ctx context.Context, app *App, sugg domain.PlannerSuggestion) (bool, error) {
	prefs, err := app.Prefs.Get(ctx)
	if err != nil {
		return false, err
	}
	if !prefs.RequireConfirmation || !app.interactive() {
		return true, nil
	}

	confirmed := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Accept %q?", sugg.Title)).
			Description(sugg.Description).
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// resolveSuggestion matches a full ID or a unique prefix against the active
// suggestion list.
func resolveSuggestion(ctx context.Context, app *App, idOrPrefix string) (domain.PlannerSuggestion, error) {
	suggestions, err := app.Planner.Suggestions(ctx)
	if err != nil {
		return domain.PlannerSuggestion{}, err
	}

	var matches []domain.PlannerSuggestion
	for _, s := range suggestions {
		if s.ID == idOrPrefix {
			return s, nil
		}
		if strings.HasPrefix(s.ID, idOrPrefix) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.PlannerSuggestion{}, fmt.Errorf("no active suggestion matches %q", idOrPrefix)
	default:
		return domain.PlannerSuggestion{}, fmt.Errorf("suggestion ID %q is ambiguous (%d matches)", idOrPrefix, len(matches))
	}
}
