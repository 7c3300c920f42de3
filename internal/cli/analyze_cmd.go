package cli

import (
	"context"
	"fmt"

	"github.com/evanmoray/cadence/internal/app"
	"github.com/evanmoray/cadence/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Run a planner analysis pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Planner.Analyze(context.Background(), app.NewAnalyzeRequest(app.TriggerManual))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderAnalysis(resp.Suggestions, resp.AutoScheduled, resp.Warnings))
			return nil
		},
	}
}
