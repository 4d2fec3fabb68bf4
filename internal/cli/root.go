package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "fiszki" command and registers all
// subcommands against the provided App. Run without a subcommand on a
// terminal it opens the TUI at the mode menu.
func NewRootCmd(app *App) *cobra.Command {
	var opts GlobalOptions

	root := &cobra.Command{
		Use:           "fiszki",
		Short:         "Vocabulary and grammar practice in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Configure == nil {
				return nil
			}
			configure := app.Configure
			app.Configure = nil
			return configure(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return cmd.Help()
			}
			return runTUI(cmd, app, nil)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.fiszki/config.yaml)")
	root.PersistentFlags().BoolVar(&opts.Offline, "offline", false, "study decks from the local database")

	root.AddCommand(
		newStudyCmd(app),
		newGroupsCmd(app),
		newStatsCmd(app),
		newBadgesCmd(app),
		newCheckCmd(app),
		newImportCmd(app),
	)

	return root
}

// runTUI opens the TUI. first, when non-nil, builds the view shown above
// the mode menu.
func runTUI(cmd *cobra.Command, app *App, first func(*SharedState) View) error {
	// Seed before the program starts so views only ever read the board.
	app.board()
	m := newAppModel(app, first)
	run := app.RunProgram
	if run == nil {
		run = runProgram
	}
	if err := run(m, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func runProgram(m tea.Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
