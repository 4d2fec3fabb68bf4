package cli

import (
	"fmt"

	"github.com/alexanderramin/fiszki/internal/badge"
	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show points, progress and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDashboard(cmd.Context(), app)
			if err != nil {
				return fmt.Errorf("loading statistics: %w", err)
			}
			upcoming := badge.Upcoming(d.Stats, limit)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(d.Stats, upcoming, d.GroupCounts()))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "upcoming", badge.DefaultUpcomingLimit, "number of upcoming badges to show (0 for all)")

	return cmd
}
