package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/fiszki/internal/cli/formatter"
	"github.com/alexanderramin/fiszki/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a JSON deck into the offline database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := importer.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				if errs := importer.ValidateDeck(deck); len(errs) > 0 {
					return describeValidation(&importer.ValidationError{Errs: errs})
				}
				fmt.Fprintln(out, formatter.StyleGreen.Render("✔ deck is valid"))
				return nil
			}
			if app.Importer == nil {
				return errors.New("import needs the offline database")
			}
			res, err := app.Importer.Import(cmd.Context(), deck)
			if err != nil {
				return describeValidation(err)
			}
			fmt.Fprintf(out, "%s imported %s and %s into %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Plural(res.Groups, "group", "groups"),
				formatter.Plural(res.Items, "item", "items"),
				res.Mode.Label(),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the deck without writing it")

	return cmd
}

// describeValidation lists every deck problem on its own line.
func describeValidation(err error) error {
	var verr *importer.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	lines := make([]string, 0, len(verr.Errs))
	for _, e := range verr.Errs {
		lines = append(lines, "  - "+e.Error())
	}
	return fmt.Errorf("%s:\n%s", formatter.Plural(len(verr.Errs), "problem", "problems")+" in deck", strings.Join(lines, "\n"))
}
