package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGroupsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "groups <mode>",
		Short:     "List the study groups of a mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: modeArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := app.studyMode(args[0])
			if err != nil {
				return err
			}
			groups, err := sm.Groups(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing groups: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGroups(sm.Mode(), groups, time.Now()))
			return nil
		},
	}
}
