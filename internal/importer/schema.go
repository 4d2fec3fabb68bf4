// Package importer loads JSON decks into the offline store.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// DeckImport is the top-level shape of a deck file.
type DeckImport struct {
	Mode   string        `json:"mode" validate:"required"`
	Groups []GroupImport `json:"groups" validate:"required,min=1,dive"`
}

// GroupImport is one study group. Items keep their raw JSON so each mode
// decodes its own shape.
type GroupImport struct {
	ID          string            `json:"id,omitempty"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description,omitempty"`
	Language    string            `json:"language,omitempty" validate:"omitempty,len=2,lowercase"`
	Items       []json.RawMessage `json:"items" validate:"required,min=1"`
}

// LoadFile reads and parses a deck file.
func LoadFile(path string) (*DeckImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	return Parse(data)
}

// Parse decodes a deck without validating it.
func Parse(data []byte) (*DeckImport, error) {
	var deck DeckImport
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("parsing deck JSON: %w", err)
	}
	return &deck, nil
}
