package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanmoray/cadence/internal/cli/formatter"
	"github.com/evanmoray/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newWaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wave",
		Short: "Manage day waves",
	}

	cmd.AddCommand(newWaveAddCmd(app), newWaveListCmd(app))

	return cmd
}

func newWaveAddCmd(app *App) *cobra.Command {
	var startHour, endHour int
	var color string

	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a wave",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.Wave{
				Name:      strings.Join(args, " "),
				Color:     color,
				StartHour: startHour,
				EndHour:   endHour,
			}
			if err := app.Waves.Create(context.Background(), w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added wave %q (%02d:00-%02d:00)\n", w.Name, w.StartHour, w.EndHour)
			return nil
		},
	}

	cmd.Flags().IntVar(&startHour, "start", 9, "Hour the wave starts (0-23)")
	cmd.Flags().IntVar(&endHour, "end", 12, "Hour the wave ends (1-24)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")

	return cmd
}

func newWaveListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List waves",
		RunE: func(cmd *cobra.Command, args []string) error {
			waves, err := app.Waves.List(context.Background())
			if err != nil {
				return err
			}
			if len(waves) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No waves defined.")
				return nil
			}

			headers := []string{"ID", "NAME", "HOURS", "COLOR"}
			rows := make([][]string, 0, len(waves))
			for _, w := range waves {
				rows = append(rows, []string{
					formatter.TruncID(w.ID),
					w.Name,
					fmt.Sprintf("%02d:00-%02d:00", w.StartHour, w.EndHour),
					formatter.Dim(w.Color),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Waves", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}
