// Package badge evaluates the fixed achievement catalog against a user
// statistics snapshot. Every function here is pure.
package badge

import "github.com/alexanderramin/fiszki/internal/domain"

type Tier string

const (
	TierBronze  Tier = "bronze"
	TierSilver  Tier = "silver"
	TierGold    Tier = "gold"
	TierDiamond Tier = "diamond"
)

type Category string

const (
	CategoryPoints   Category = "points"
	CategoryStreak   Category = "streak"
	CategoryProgress Category = "progress"
	CategorySpecial  Category = "special"
)

// Definition is one catalog entry. A badge is earned once its current
// progress value reaches Requirement.
type Definition struct {
	ID            string
	Name          string
	NamePl        string
	Description   string
	DescriptionPl string
	Emoji         string
	Category      Category
	Tier          Tier
	Requirement   int

	// current overrides the category's progress value for special badges.
	current func(domain.UserStats) int
}

// Current returns the scalar progress value the badge is measured by.
func (d Definition) Current(s domain.UserStats) int {
	if d.current != nil {
		return d.current(s)
	}
	switch d.Category {
	case CategoryPoints:
		return s.TotalPoints
	case CategoryStreak:
		return s.HighestCombo
	case CategoryProgress:
		return s.TotalLearned
	}
	return 0
}

// Satisfied is the badge predicate.
func (d Definition) Satisfied(s domain.UserStats) bool {
	return d.Current(s) >= d.Requirement
}

var catalog = []Definition{
	{ID: "first-points", Name: "First Steps", NamePl: "Pierwsze kroki", Description: "Earn your first 10 points", DescriptionPl: "Zdobądź pierwsze 10 punktów", Emoji: "🌱", Category: CategoryPoints, Tier: TierBronze, Requirement: 10},
	{ID: "points-100", Name: "Point Collector", NamePl: "Kolekcjoner punktów", Description: "Earn 100 points", DescriptionPl: "Zdobądź 100 punktów", Emoji: "⭐", Category: CategoryPoints, Tier: TierBronze, Requirement: 100},
	{ID: "points-500", Name: "Point Hunter", NamePl: "Łowca punktów", Description: "Earn 500 points", DescriptionPl: "Zdobądź 500 punktów", Emoji: "🏅", Category: CategoryPoints, Tier: TierSilver, Requirement: 500},
	{ID: "points-1000", Name: "Point Master", NamePl: "Mistrz punktów", Description: "Earn 1000 points", DescriptionPl: "Zdobądź 1000 punktów", Emoji: "🏆", Category: CategoryPoints, Tier: TierGold, Requirement: 1000},
	{ID: "points-5000", Name: "Point Legend", NamePl: "Legenda punktów", Description: "Earn 5000 points", DescriptionPl: "Zdobądź 5000 punktów", Emoji: "💎", Category: CategoryPoints, Tier: TierDiamond, Requirement: 5000},

	{ID: "combo-5", Name: "On Fire", NamePl: "W ogniu", Description: "Reach a 5x combo", DescriptionPl: "Osiągnij combo 5x", Emoji: "🔥", Category: CategoryStreak, Tier: TierBronze, Requirement: 5},
	{ID: "combo-10", Name: "Combo King", NamePl: "Król combo", Description: "Reach a 10x combo", DescriptionPl: "Osiągnij combo 10x", Emoji: "👑", Category: CategoryStreak, Tier: TierSilver, Requirement: 10},
	{ID: "combo-25", Name: "Unstoppable", NamePl: "Nie do zatrzymania", Description: "Reach a 25x combo", DescriptionPl: "Osiągnij combo 25x", Emoji: "⚡", Category: CategoryStreak, Tier: TierGold, Requirement: 25},
	{ID: "combo-50", Name: "Perfect Streak", NamePl: "Perfekcyjna seria", Description: "Reach a 50x combo", DescriptionPl: "Osiągnij combo 50x", Emoji: "🌟", Category: CategoryStreak, Tier: TierDiamond, Requirement: 50},

	{ID: "learned-10", Name: "Quick Learner", NamePl: "Szybki uczeń", Description: "Learn 10 items", DescriptionPl: "Naucz się 10 słów", Emoji: "📚", Category: CategoryProgress, Tier: TierBronze, Requirement: 10},
	{ID: "learned-50", Name: "Knowledge Seeker", NamePl: "Poszukiwacz wiedzy", Description: "Learn 50 items", DescriptionPl: "Naucz się 50 słów", Emoji: "🎓", Category: CategoryProgress, Tier: TierSilver, Requirement: 50},
	{ID: "learned-100", Name: "Scholar", NamePl: "Uczony", Description: "Learn 100 items", DescriptionPl: "Naucz się 100 słów", Emoji: "🧠", Category: CategoryProgress, Tier: TierGold, Requirement: 100},
	{ID: "learned-250", Name: "Vocabulary Master", NamePl: "Mistrz słownictwa", Description: "Learn 250 items", DescriptionPl: "Naucz się 250 słów", Emoji: "🏛️", Category: CategoryProgress, Tier: TierDiamond, Requirement: 250},

	{ID: "all-rounder", Name: "All-Rounder", NamePl: "Wszechstronny", Description: "Learn at least 5 items in each mode", DescriptionPl: "Naucz się przynajmniej 5 słów w każdym trybie", Emoji: "🌈", Category: CategorySpecial, Tier: TierGold, Requirement: 5, current: weakestMode},
	{ID: "flashcard-fan", Name: "Flashcard Fan", NamePl: "Fan fiszek", Description: "Learn 25 flashcards", DescriptionPl: "Naucz się 25 fiszek", Emoji: "🃏", Category: CategorySpecial, Tier: TierSilver, Requirement: 25, current: flashcardsLearned},
	{ID: "translator", Name: "Translator", NamePl: "Tłumacz", Description: "Learn 50 translations (PL→FR + FR→PL combined)", DescriptionPl: "Naucz się 50 tłumaczeń łącznie", Emoji: "🌐", Category: CategorySpecial, Tier: TierGold, Requirement: 50, current: translationsLearned},
}

func weakestMode(s domain.UserStats) int {
	lowest := -1
	for _, m := range domain.AllModes {
		if n := s.Learned(m); lowest < 0 || n < lowest {
			lowest = n
		}
	}
	return max(lowest, 0)
}

func flashcardsLearned(s domain.UserStats) int {
	return s.Learned(domain.ModeFlashcards)
}

func translationsLearned(s domain.UserStats) int {
	return s.Learned(domain.ModeTranslatePlToFr) + s.Learned(domain.ModeTranslateFrToPl)
}

// Catalog returns a copy of every badge in display order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a badge by id.
func Lookup(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
