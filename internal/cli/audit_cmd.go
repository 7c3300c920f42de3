package cli

import (
	"context"
	"fmt"

	"github.com/evanmoray/cadence/internal/cli/formatter"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newAuditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the planner's decision trail",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Audit.ListRecent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No audit entries.")
				return nil
			}

			headers := []string{"TIME", "CATEGORY", "SEVERITY", "MESSAGE"}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					formatter.Dim(formatter.HumanTimestamp(e.CreatedAt)),
					string(e.Category),
					severityLabel(e.Severity),
					e.Message,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Audit log", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")

	cmd.AddCommand(list)
	return cmd
}

func severityLabel(s domain.AuditSeverity) string {
	switch s {
	case domain.SeverityError:
		return formatter.StyleRed.Render(string(s))
	case domain.SeverityWarning:
		return formatter.StyleYellow.Render(string(s))
	case domain.SeveritySuccess:
		return formatter.StyleGreen.Render(string(s))
	default:
		return formatter.Dim(string(s))
	}
}
