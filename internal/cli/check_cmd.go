package cli

import (
	"fmt"

	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	"github.com/alexanderramin/fiszki/internal/matcher"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <expected> <answer>",
		Short: "Show how an answer is matched against the expected one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, answer := args[0], args[1]
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %q\n", formatter.Dim("expected:"), matcher.Normalize(expected))
			fmt.Fprintf(out, "%s %q\n", formatter.Dim("answer:  "), matcher.Normalize(answer))
			if matcher.Match(answer, expected) {
				fmt.Fprintln(out, formatter.StyleGreen.Render("✔ match"))
			} else {
				fmt.Fprintln(out, formatter.StyleRed.Render("✘ no match"))
			}
			return nil
		},
	}
}
