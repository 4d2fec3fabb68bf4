package modes

import (
	"testing"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/matcher"
	"github.com/stretchr/testify/assert"
)

func TestTranslationDirections(t *testing.T) {
	item := domain.TranslationItem{ID: "t1", TextPl: "dzień dobry", TextTarget: "bonjour", Category: "greetings"}

	plFr := TranslatePlToFr().Item(item)
	assert.Equal(t, domain.StudyItem{ID: "t1", Prompt: "dzień dobry", ExpectedAnswer: "bonjour", Category: "greetings"}, plFr)

	frPl := TranslateFrToPl().Item(item)
	assert.Equal(t, "bonjour", frPl.Prompt)
	assert.Equal(t, "dzień dobry", frPl.ExpectedAnswer)

	assert.Equal(t, domain.TaskTranslatePlToTarget, TranslatePlToFr().TaskType)
	assert.Equal(t, domain.TaskTranslateTargetToPl, TranslateFrToPl().TaskType)
}

func TestFlashcards(t *testing.T) {
	a := Flashcards()
	it := a.Item(domain.Flashcard{ID: "f1", TextPl: "jajko", TextTarget: "l'œuf", ImageURL: "/img/egg.png"})
	assert.Equal(t, "jajko", it.Prompt)
	assert.Equal(t, "/img/egg.png", it.ImageURL)
	assert.Equal(t, domain.TaskNone, a.TaskType)
	assert.True(t, matcher.Match("loeuf", it.ExpectedAnswer))
}

func TestGuessObject(t *testing.T) {
	a := GuessObject()
	it := a.Item(domain.GuessObjectItem{ID: "g1", DescriptionTarget: "On s'assoit dessus", AnswerTarget: "une chaise", Hint: "meuble", Category: "maison"})
	assert.Equal(t, "On s'assoit dessus", it.Prompt)
	assert.Equal(t, "une chaise", it.ExpectedAnswer)
	assert.Equal(t, "meuble", it.Hint)
	assert.Equal(t, domain.TaskNone, a.TaskType)
}

func TestFillBlank(t *testing.T) {
	a := FillBlank()
	it := a.Item(domain.FillBlankItem{
		ID: "b1", SentenceWithBlank: "Je ___ français.", Answer: "parle",
		FullSentence: "Je parle français.", GrammarFocus: "présent",
	})
	assert.Contains(t, it.Prompt, domain.BlankPlaceholder)
	assert.Equal(t, "parle", it.ExpectedAnswer)
	assert.Equal(t, "présent", it.Category)
	assert.Equal(t, domain.TaskFillBlank, a.TaskType)
}
