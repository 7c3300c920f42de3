package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/evanmoray/cadence/internal/cli/formatter"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change planner preferences",
	}

	cmd.AddCommand(newPrefsShowCmd(app), newPrefsSetCmd(app))

	return cmd
}

func newPrefsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := app.Prefs.Get(context.Background())
			if err != nil {
				return err
			}

			kv := prefPairs(prefs)
			keys := make([]string, 0, len(kv))
			for k := range kv {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				rows = append(rows, []string{k, formatter.Bold(kv[k])})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Preferences", formatter.RenderTable([]string{"KEY", "VALUE"}, rows)))
			return nil
		},
	}
}

func newPrefsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a preference and re-run the planner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			prefs, err := app.Prefs.Get(ctx)
			if err != nil {
				return err
			}
			cleared, err := applyPrefKey(prefs, args[0], args[1])
			if err != nil {
				return err
			}

			resp, err := app.Planner.UpdatePreferences(ctx, *prefs)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
			if cleared {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n",
					formatter.Dim(fmt.Sprintf("0 clears the value; %s falls back to its default.", args[0])))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderAnalysis(resp.Suggestions, resp.AutoScheduled, resp.Warnings))
			return nil
		},
	}
}

func prefPairs(p *domain.Preferences) map[string]string {
	return map[string]string{
		"focus_break_threshold_min":        strconv.Itoa(p.FocusBreakThresholdMin),
		"default_break_duration_min":       strconv.Itoa(p.DefaultBreakDurationMin),
		"default_focus_block_duration_min": strconv.Itoa(p.DefaultFocusBlockDurationMin),
		"auto_schedule_breaks":             strconv.FormatBool(p.AutoScheduleBreaks),
		"auto_schedule_focus_blocks":       strconv.FormatBool(p.AutoScheduleFocusBlocks),
		"require_confirmation":             strconv.FormatBool(p.RequireConfirmation),
		"working_hours_start_min":          strconv.Itoa(p.WorkingHoursStartMin),
		"working_hours_end_min":            strconv.Itoa(p.WorkingHoursEndMin),
		"min_event_gap_min":                strconv.Itoa(p.MinEventGapMin),
		"friction_threshold":               strconv.Itoa(p.FrictionThreshold),
		"anchor_reminder_lead_min":         strconv.Itoa(p.AnchorReminderLeadMin),
		"max_active_suggestions":           strconv.Itoa(p.MaxActiveSuggestions),
		"suggestion_ttl_min":               strconv.Itoa(p.SuggestionTTLMin),
		"notifications_enabled":            strconv.FormatBool(p.NotificationsEnabled),
	}
}

// applyPrefKey writes one key into p. The returned flag reports that an
// integer key was set to 0, which the engine reads as "unset" and replaces
// with the built-in default.
func applyPrefKey(p *domain.Preferences, key, value string) (bool, error) {
	intFields := map[string]*int{
		"focus_break_threshold_min":        &p.FocusBreakThresholdMin,
		"default_break_duration_min":       &p.DefaultBreakDurationMin,
		"default_focus_block_duration_min": &p.DefaultFocusBlockDurationMin,
		"working_hours_start_min":          &p.WorkingHoursStartMin,
		"working_hours_end_min":            &p.WorkingHoursEndMin,
		"min_event_gap_min":                &p.MinEventGapMin,
		"friction_threshold":               &p.FrictionThreshold,
		"anchor_reminder_lead_min":         &p.AnchorReminderLeadMin,
		"max_active_suggestions":           &p.MaxActiveSuggestions,
		"suggestion_ttl_min":               &p.SuggestionTTLMin,
	}
	boolFields := map[string]*bool{
		"auto_schedule_breaks":       &p.AutoScheduleBreaks,
		"auto_schedule_focus_blocks": &p.AutoScheduleFocusBlocks,
		"require_confirmation":       &p.RequireConfirmation,
		"notifications_enabled":      &p.NotificationsEnabled,
	}

	if dst, ok := intFields[key]; ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			return false, fmt.Errorf("preference %s expects an integer, got %q", key, value)
		}
		*dst = n
		return n == 0, nil
	}
	if dst, ok := boolFields[key]; ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("preference %s expects true/false, got %q", key, value)
		}
		*dst = b
		return false, nil
	}
	return false, fmt.Errorf("unknown preference key %q", key)
}
