package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fiszki/internal/badge"
	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBadgesCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "badges",
		Short: "List earned and upcoming badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDashboard(cmd.Context(), app)
			if err != nil {
				return fmt.Errorf("loading statistics: %w", err)
			}
			out := cmd.OutOrStdout()
			if all {
				fmt.Fprint(out, formatter.FormatCatalog(d.Stats))
				return nil
			}

			earned := badge.Earned(d.Stats)
			var b strings.Builder
			b.WriteString(formatter.Header(fmt.Sprintf("Earned (%d/%d)", len(earned), len(badge.Catalog()))))
			b.WriteString("\n")
			if len(earned) == 0 {
				b.WriteString("  " + formatter.Dim("No badges yet. Keep practicing!") + "\n")
			}
			for _, e := range earned {
				b.WriteString("  " + formatter.FormatBadge(e) + "\n")
			}
			if upcoming := badge.Upcoming(d.Stats, badge.DefaultUpcomingLimit); len(upcoming) > 0 {
				b.WriteString("\n" + formatter.Header("Next up") + "\n")
				b.WriteString(formatter.FormatUpcoming(upcoming))
			}
			fmt.Fprint(out, b.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "show the whole catalog")

	return cmd
}
