package cli

import (
	"errors"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/spf13/cobra"
)

func newStudyCmd(app *App) *cobra.Command {
	var (
		groupIDs       []string
		includeLearned bool
	)

	cmd := &cobra.Command{
		Use:       "study <mode>",
		Short:     "Start a practice session",
		Long:      "Start a practice session in one exercise mode. Without --group the TUI asks which groups to study.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: modeArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := app.studyMode(args[0])
			if err != nil {
				return err
			}
			if app.IsInteractive == nil || !app.IsInteractive() {
				return errors.New("study needs an interactive terminal")
			}
			var preset *groupPreset
			if len(groupIDs) > 0 {
				preset = &groupPreset{groupIDs: groupIDs, includeLearned: includeLearned}
			}
			return runTUI(cmd, app, func(s *SharedState) View {
				return sm.newStudyView(s, preset)
			})
		},
	}
	cmd.Flags().StringSliceVarP(&groupIDs, "group", "g", nil, "group id to study (repeatable)")
	cmd.Flags().BoolVar(&includeLearned, "include-learned", false, "also practice items already learned")

	return cmd
}

func modeArgs() []string {
	out := make([]string, len(domain.AllModes))
	for i, m := range domain.AllModes {
		out[i] = string(m)
	}
	return out
}
