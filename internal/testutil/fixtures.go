package testutil

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/google/uuid"
)

const fixtureTime = "2026-01-01T00:00:00Z"

// GroupOption customises a seeded group.
type GroupOption func(*seedGroup)

type seedGroup struct {
	id          string
	description string
	language    string
}

func WithGroupID(id string) GroupOption {
	return func(g *seedGroup) { g.id = id }
}

func WithDescription(d string) GroupOption {
	return func(g *seedGroup) { g.description = d }
}

func WithLanguage(lang string) GroupOption {
	return func(g *seedGroup) { g.language = lang }
}

// SeedGroup inserts a group of mode holding items, each stored as its JSON
// payload. Items must carry an "id" field. It returns the group id.
func SeedGroup[T any](t *testing.T, database *sql.DB, mode domain.ExerciseMode, name string, items []T, opts ...GroupOption) string {
	t.Helper()
	g := seedGroup{id: uuid.NewString(), language: "fr"}
	for _, o := range opts {
		o(&g)
	}

	_, err := database.Exec(`INSERT INTO study_groups (id, mode, name, description, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, g.id, string(mode), name, g.description, g.language, fixtureTime, fixtureTime)
	if err != nil {
		t.Fatalf("seeding group: %v", err)
	}
	for i, it := range items {
		payload, err := json.Marshal(it)
		if err != nil {
			t.Fatalf("encoding item: %v", err)
		}
		var head struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(payload, &head); err != nil || head.ID == "" {
			t.Fatalf("seeded item %d has no id", i)
		}
		_, err = database.Exec(`INSERT INTO study_items (id, group_id, order_index, payload, created_at)
			VALUES (?, ?, ?, ?, ?)`, head.ID, g.id, i, string(payload), fixtureTime)
		if err != nil {
			t.Fatalf("seeding item: %v", err)
		}
	}
	return g.id
}

// MarkLearned records learned progress for item ids directly.
func MarkLearned(t *testing.T, database *sql.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := database.Exec(`INSERT INTO item_progress (item_id, learned, updated_at) VALUES (?, 1, ?)
			ON CONFLICT(item_id) DO UPDATE SET learned = 1`, id, fixtureTime)
		if err != nil {
			t.Fatalf("marking %s learned: %v", id, err)
		}
	}
}

var fixtureWords = [][2]string{
	{"kot", "chat"}, {"pies", "chien"}, {"dom", "maison"}, {"szkoła", "école"},
	{"woda", "eau"}, {"chleb", "pain"}, {"jabłko", "pomme"}, {"książka", "livre"},
}

// Flashcards builds n cards with ids prefix-1..prefix-n.
func Flashcards(prefix string, n int) []domain.Flashcard {
	out := make([]domain.Flashcard, n)
	for i := range out {
		w := fixtureWords[i%len(fixtureWords)]
		out[i] = domain.Flashcard{ID: prefix + "-" + strconv.Itoa(i+1), TextPl: w[0], TextTarget: w[1]}
	}
	return out
}

// Translations builds n translation items with ids prefix-1..prefix-n.
func Translations(prefix string, n int) []domain.TranslationItem {
	out := make([]domain.TranslationItem, n)
	for i := range out {
		w := fixtureWords[i%len(fixtureWords)]
		out[i] = domain.TranslationItem{ID: prefix + "-" + strconv.Itoa(i+1), TextPl: w[0], TextTarget: w[1], Category: "A1"}
	}
	return out
}
