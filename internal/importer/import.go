package importer

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fiszki/internal/db"
	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/repository"
)

// Result summarises a completed import.
type Result struct {
	Mode   domain.ExerciseMode
	Groups int
	Items  int
}

// Importer writes decks to the offline store in a single transaction.
type Importer struct {
	uow db.UnitOfWork
}

func New(uow db.UnitOfWork) *Importer {
	return &Importer{uow: uow}
}

// Import validates, converts and stores deck. Validation problems are
// returned together as a *ValidationError and nothing is written.
func (im *Importer) Import(ctx context.Context, deck *DeckImport) (*Result, error) {
	if errs := ValidateDeck(deck); len(errs) > 0 {
		return nil, &ValidationError{Errs: errs}
	}
	conv, err := Convert(deck)
	if err != nil {
		return nil, err
	}

	err = im.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteDeckRepo(tx)
		for _, g := range conv.Groups {
			if err := repo.UpsertGroup(ctx, g); err != nil {
				return fmt.Errorf("group %q: %w", g.Name, err)
			}
		}
		for _, it := range conv.Items {
			if err := repo.UpsertItem(ctx, it); err != nil {
				return fmt.Errorf("item %s: %w", it.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing deck: %w", err)
	}
	return &Result{Mode: conv.Mode, Groups: len(conv.Groups), Items: len(conv.Items)}, nil
}
