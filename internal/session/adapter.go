package session

import "github.com/alexanderramin/fiszki/internal/domain"

// Adapter projects a mode's item shape onto what the controller needs. ID,
// Prompt and Answer are required; the rest are optional.
type Adapter[T any] struct {
	Mode domain.ExerciseMode
	// TaskType selects the AI verification task. TaskNone disables it.
	TaskType domain.TaskType

	ID     func(T) string
	Prompt func(T) string
	Answer func(T) string

	Hint     func(T) string
	Category func(T) string
	ImageURL func(T) string
	Known    func(T) bool
}

// Item builds the display view of t.
func (a Adapter[T]) Item(t T) domain.StudyItem {
	it := domain.StudyItem{
		ID:             a.ID(t),
		Prompt:         a.Prompt(t),
		ExpectedAnswer: a.Answer(t),
	}
	if a.Hint != nil {
		it.Hint = a.Hint(t)
	}
	if a.Category != nil {
		it.Category = a.Category(t)
	}
	if a.ImageURL != nil {
		it.ImageURL = a.ImageURL(t)
	}
	return it
}

func (a Adapter[T]) known(t T) bool {
	return a.Known != nil && a.Known(t)
}
