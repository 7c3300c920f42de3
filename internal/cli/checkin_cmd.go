package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evanmoray/cadence/internal/cli/formatter"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newCheckinCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Manage check-ins",
	}

	cmd.AddCommand(
		newCheckinAddCmd(app),
		newCheckinListCmd(app),
		newCheckinDoneCmd(app),
		newCheckinRemoveCmd(app),
	)

	return cmd
}

func newCheckinAddCmd(app *App) *cobra.Command {
	var at, category, waveID string
	var anchor bool

	cmd := &cobra.Command{
		Use:   "add TASK...",
		Short: "Add a check-in",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(at)
			if err != nil {
				return err
			}

			ci := &domain.CheckIn{
				Task:     strings.Join(args, " "),
				Category: category,
				Slot:     slot,
				IsAnchor: anchor,
			}
			if waveID != "" {
				ci.WaveID = &waveID
			}
			if err := app.CheckIns.Create(context.Background(), ci); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added check-in %s at %s\n",
				formatter.TruncID(ci.ID), formatter.ClockTime(ci.Slot))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Scheduled time (HH:MM or RFC3339, default now)")
	cmd.Flags().StringVar(&category, "category", "task", "Check-in category")
	cmd.Flags().BoolVar(&anchor, "anchor", false, "Mark as a fixed anchor commitment")
	cmd.Flags().StringVar(&waveID, "wave", "", "Wave ID the check-in belongs to")

	return cmd
}

func newCheckinListCmd(app *App) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List check-ins for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := time.Now()
			if day != "" {
				parsed, err := time.ParseInLocation("2006-01-02", day, time.Local)
				if err != nil {
					return fmt.Errorf("invalid day %q, expected YYYY-MM-DD", day)
				}
				target = parsed
			}

			checkIns, err := app.CheckIns.ListByDay(context.Background(), target)
			if err != nil {
				return err
			}
			if len(checkIns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No check-ins found.")
				return nil
			}

			headers := []string{"ID", "TIME", "TASK", "CATEGORY", "STATUS"}
			rows := make([][]string, 0, len(checkIns))
			for _, ci := range checkIns {
				rows = append(rows, []string{
					formatter.TruncID(ci.ID),
					formatter.ClockTime(ci.Slot),
					ci.Task,
					formatter.Dim(ci.Category),
					checkinStatus(ci),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Check-ins", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day to list (YYYY-MM-DD, default today)")

	return cmd
}

func newCheckinDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a check-in as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCheckInID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.CheckIns.MarkDone(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newCheckinRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a check-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCheckInID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.CheckIns.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed check-in %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func checkinStatus(ci *domain.CheckIn) string {
	switch {
	case ci.Done:
		return formatter.StyleGreen.Render("done")
	case ci.IsAnchor:
		return formatter.StylePurple.Render("anchor")
	default:
		return formatter.Dim("pending")
	}
}

// parseSlot accepts "HH:MM" (today at that time) or a full RFC3339 timestamp.
// Empty means now.
func parseSlot(at string) (time.Time, error) {
	if at == "" {
		return time.Now(), nil
	}
	if t, err := time.ParseInLocation("15:04", at, time.Local); err == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	if t, err := time.Parse(time.RFC3339, at); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM or RFC3339", at)
}

// resolveCheckInID matches a full ID or a unique prefix against today's
// check-ins.
func resolveCheckInID(ctx context.Context, app *App, idOrPrefix string) (string, error) {
	checkIns, err := app.CheckIns.ListByDay(ctx, time.Now())
	if err != nil {
		return "", err
	}

	var matches []string
	for _, ci := range checkIns {
		if ci.ID == idOrPrefix {
			return ci.ID, nil
		}
		if strings.HasPrefix(ci.ID, idOrPrefix) {
			matches = append(matches, ci.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return idOrPrefix, nil
	default:
		return "", fmt.Errorf("check-in ID %q is ambiguous (%d matches)", idOrPrefix, len(matches))
	}
}
