// Package modes supplies the item adapter of every exercise mode.
package modes

import (
	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/session"
)

// Flashcards asks for the target-language side of a card.
func Flashcards() session.Adapter[domain.Flashcard] {
	return session.Adapter[domain.Flashcard]{
		Mode:     domain.ModeFlashcards,
		ID:       func(f domain.Flashcard) string { return f.ID },
		Prompt:   func(f domain.Flashcard) string { return f.TextPl },
		Answer:   func(f domain.Flashcard) string { return f.TextTarget },
		ImageURL: func(f domain.Flashcard) string { return f.ImageURL },
	}
}

func TranslatePlToFr() session.Adapter[domain.TranslationItem] {
	return session.Adapter[domain.TranslationItem]{
		Mode:     domain.ModeTranslatePlToFr,
		TaskType: domain.TaskTranslatePlToTarget,
		ID:       translationID,
		Prompt:   func(t domain.TranslationItem) string { return t.TextPl },
		Answer:   func(t domain.TranslationItem) string { return t.TextTarget },
		Category: translationCategory,
	}
}

func TranslateFrToPl() session.Adapter[domain.TranslationItem] {
	return session.Adapter[domain.TranslationItem]{
		Mode:     domain.ModeTranslateFrToPl,
		TaskType: domain.TaskTranslateTargetToPl,
		ID:       translationID,
		Prompt:   func(t domain.TranslationItem) string { return t.TextTarget },
		Answer:   func(t domain.TranslationItem) string { return t.TextPl },
		Category: translationCategory,
	}
}

func translationID(t domain.TranslationItem) string { return t.ID }
func translationCategory(t domain.TranslationItem) string { return t.Category }

// GuessObject shows a description and asks for the object. The AI verifier
// has no task for it.
func GuessObject() session.Adapter[domain.GuessObjectItem] {
	return session.Adapter[domain.GuessObjectItem]{
		Mode:     domain.ModeGuessObject,
		ID:       func(g domain.GuessObjectItem) string { return g.ID },
		Prompt:   func(g domain.GuessObjectItem) string { return g.DescriptionTarget },
		Answer:   func(g domain.GuessObjectItem) string { return g.AnswerTarget },
		Hint:     func(g domain.GuessObjectItem) string { return g.Hint },
		Category: func(g domain.GuessObjectItem) string { return g.Category },
	}
}

// FillBlank prompts with the sentence and its placeholder; the answer is the
// missing word only.
func FillBlank() session.Adapter[domain.FillBlankItem] {
	return session.Adapter[domain.FillBlankItem]{
		Mode:     domain.ModeFillBlank,
		TaskType: domain.TaskFillBlank,
		ID:       func(f domain.FillBlankItem) string { return f.ID },
		Prompt:   func(f domain.FillBlankItem) string { return f.SentenceWithBlank },
		Answer:   func(f domain.FillBlankItem) string { return f.Answer },
		Hint:     func(f domain.FillBlankItem) string { return f.Hint },
		Category: func(f domain.FillBlankItem) string { return f.GrammarFocus },
	}
}
