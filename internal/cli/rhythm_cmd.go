package cli

import (
	"context"
	"fmt"

	"github.com/evanmoray/cadence/internal/cli/formatter"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newRhythmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rhythm",
		Short: "Manage the current rhythm state",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set STATE",
		Short: "Set the rhythm state (focus, flow, open, reflect, recover)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := domain.RhythmState(args[0])
			resp, err := app.Planner.SetRhythmState(context.Background(), state)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rhythm set to %s\n\n",
				formatter.RhythmColor(state).Render(string(state)))
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderAnalysis(resp.Suggestions, resp.AutoScheduled, resp.Warnings))
			return nil
		},
	})

	return cmd
}
