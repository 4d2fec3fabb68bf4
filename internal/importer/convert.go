package importer

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/repository"
	"github.com/google/uuid"
)

// Converted is a validated deck ready for persistence.
type Converted struct {
	Mode   domain.ExerciseMode
	Groups []repository.DeckGroup
	Items  []repository.DeckItem
}

// Convert assigns ids where missing and encodes each item payload with its
// id. Call ValidateDeck first; Convert assumes the deck is valid.
func Convert(deck *DeckImport) (*Converted, error) {
	mode, ok := domain.ParseMode(deck.Mode)
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", deck.Mode)
	}

	out := &Converted{Mode: mode}
	for _, g := range deck.Groups {
		groupID := g.ID
		if groupID == "" {
			groupID = uuid.NewString()
		}
		out.Groups = append(out.Groups, repository.DeckGroup{
			ID:          groupID,
			Mode:        mode,
			Name:        g.Name,
			Description: g.Description,
			Language:    g.Language,
		})

		for i, raw := range g.Items {
			var fields map[string]any
			if err := json.Unmarshal(raw, &fields); err != nil {
				return nil, fmt.Errorf("decoding item %d of %q: %w", i, g.Name, err)
			}
			id, _ := fields["id"].(string)
			if id == "" {
				id = uuid.NewString()
				fields["id"] = id
			}
			// learned state lives in item_progress
			delete(fields, "learned")

			payload, err := json.Marshal(fields)
			if err != nil {
				return nil, fmt.Errorf("encoding item %s: %w", id, err)
			}
			out.Items = append(out.Items, repository.DeckItem{ID: id, GroupID: groupID, Order: i, Payload: payload})
		}
	}
	return out, nil
}
