package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepo_Dashboard(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedGroup(t, db, domain.ModeFlashcards, "Cards", testutil.Flashcards("f", 4))
	testutil.SeedGroup(t, db, domain.ModeTranslatePlToFr, "Words", testutil.Translations("t", 3))
	testutil.MarkLearned(t, db, "f-1", "f-2", "t-3")

	s, err := NewSQLiteStatsRepo(db).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ModeCount{Total: 4, Learned: 2}, s.Modes[domain.ModeFlashcards])
	assert.Equal(t, domain.ModeCount{Total: 3, Learned: 1}, s.Modes[domain.ModeTranslatePlToFr])
	assert.Equal(t, domain.ModeCount{}, s.Modes[domain.ModeGuessObject])
	assert.Len(t, s.Modes, len(domain.AllModes))
	assert.Equal(t, 7, s.TotalItems)
	assert.Equal(t, 3, s.TotalLearned)
	assert.Zero(t, s.TotalPoints)
}

func TestStatsRepo_Dashboard_Empty(t *testing.T) {
	db := testutil.NewTestDB(t)

	s, err := NewSQLiteStatsRepo(db).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.TotalItems)
	assert.Zero(t, s.Learned(domain.ModeFillBlank))
}
