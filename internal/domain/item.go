package domain

import "time"

// StudyItem is the mode-independent view of one practice unit. Exercise
// modes project their own item shapes onto it for matching and display.
type StudyItem struct {
	ID             string
	Prompt         string
	ExpectedAnswer string
	Hint           string
	Category       string
	ImageURL       string
}

// StudyGroup is a named collection of items within one mode.
type StudyGroup struct {
	ID           string
	Name         string
	Description  string
	Language     string
	TotalItems   int
	LearnedItems int
	UpdatedAt    time.Time
}

// Item shapes below mirror the backend payloads and are decoded directly.

// Flashcard is a vocabulary card with a Polish front and a target-language back.
type Flashcard struct {
	ID         string `json:"id"`
	TextPl     string `json:"text_pl"`
	TextTarget string `json:"text_target"`
	ImageURL   string `json:"image_url,omitempty"`
	Learned    bool   `json:"learned,omitempty"`
}

// TranslationItem is shared by both translation directions.
type TranslationItem struct {
	ID         string `json:"id"`
	TextPl     string `json:"text_pl"`
	TextTarget string `json:"text_target"`
	Category   string `json:"category,omitempty"`
	Learned    bool   `json:"learned,omitempty"`
}

type GuessObjectItem struct {
	ID                string `json:"id"`
	DescriptionTarget string `json:"description_target"`
	AnswerTarget      string `json:"answer_target"`
	Hint              string `json:"hint,omitempty"`
	Category          string `json:"category,omitempty"`
	Learned           bool   `json:"learned,omitempty"`
}

// BlankPlaceholder marks the gap in a fill-blank sentence.
const BlankPlaceholder = "___"

type FillBlankItem struct {
	ID                string `json:"id"`
	SentenceWithBlank string `json:"sentence_with_blank"`
	Answer            string `json:"answer"`
	FullSentence      string `json:"full_sentence,omitempty"`
	Hint              string `json:"hint,omitempty"`
	GrammarFocus      string `json:"grammar_focus,omitempty"`
	Learned           bool   `json:"learned,omitempty"`
}
