package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckRepo_UpsertKeepsProgress(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	decks := NewSQLiteDeckRepo(db)
	study := NewSQLiteStudyRepo[domain.Flashcard](db, domain.ModeFlashcards)

	require.NoError(t, decks.UpsertGroup(ctx, DeckGroup{ID: "g", Mode: domain.ModeFlashcards, Name: "Animals"}))
	require.NoError(t, decks.UpsertItem(ctx, DeckItem{ID: "c1", GroupID: "g", Payload: []byte(`{"id":"c1","text_pl":"kot","text_target":"chat"}`)}))
	require.NoError(t, study.ReportProgress(ctx, "c1", true))

	require.NoError(t, decks.UpsertGroup(ctx, DeckGroup{ID: "g", Mode: domain.ModeFlashcards, Name: "Zwierzęta", Description: "v2"}))
	require.NoError(t, decks.UpsertItem(ctx, DeckItem{ID: "c1", GroupID: "g", Payload: []byte(`{"id":"c1","text_pl":"kot","text_target":"le chat"}`)}))

	groups, err := study.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Zwierzęta", groups[0].Name)
	assert.Equal(t, "v2", groups[0].Description)
	assert.Equal(t, 1, groups[0].LearnedItems)

	items, err := study.StartSession(ctx, []string{"g"}, true, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "le chat", items[0].TextTarget)
	assert.True(t, items[0].Learned)
}

func TestDeckRepo_UpsertGroup_ModeClash(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	decks := NewSQLiteDeckRepo(db)

	require.NoError(t, decks.UpsertGroup(ctx, DeckGroup{ID: "g", Mode: domain.ModeFlashcards, Name: "A"}))
	err := decks.UpsertGroup(ctx, DeckGroup{ID: "g", Mode: domain.ModeFillBlank, Name: "B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another mode")
}

func TestDeckRepo_DeleteGroup(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	g := testutil.SeedGroup(t, db, domain.ModeFlashcards, "Animals", testutil.Flashcards("a", 2))
	decks := NewSQLiteDeckRepo(db)

	require.NoError(t, decks.DeleteGroup(ctx, g))
	assert.ErrorIs(t, decks.DeleteGroup(ctx, g), ErrNotFound)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM study_items`).Scan(&n))
	assert.Zero(t, n)
}
