package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/modes"
	"github.com/alexanderramin/fiszki/internal/session"
	"github.com/go-playground/validator/v10"
)

// ValidationError collects every problem found in a deck.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("deck has %d problem(s): %s", len(e.Errs), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error { return e.Errs }

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
}

// ValidateDeck checks the deck structure and that every item carries the
// fields its mode's adapter reads. It returns all problems found.
func ValidateDeck(deck *DeckImport) []error {
	var errs []error
	if err := validate.Struct(deck); err != nil {
		errs = append(errs, fieldErrors(err)...)
	}

	mode, ok := domain.ParseMode(deck.Mode)
	if deck.Mode != "" && !ok {
		errs = append(errs, fmt.Errorf("mode: unknown mode %q", deck.Mode))
	}

	ids := make(map[string]string)
	for gi, g := range deck.Groups {
		prefix := fmt.Sprintf("groups[%d]", gi)
		if g.ID != "" {
			if prev, dup := ids[g.ID]; dup {
				errs = append(errs, fmt.Errorf("%s.id: %q already used by %s", prefix, g.ID, prev))
			}
			ids[g.ID] = prefix
		}
		if !ok {
			continue
		}
		for ii, raw := range g.Items {
			path := fmt.Sprintf("%s.items[%d]", prefix, ii)
			id, err := checkItem(mode, raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				continue
			}
			if id == "" {
				continue
			}
			if prev, dup := ids[id]; dup {
				errs = append(errs, fmt.Errorf("%s.id: %q already used by %s", path, id, prev))
			}
			ids[id] = path
		}
	}
	return errs
}

func fieldErrors(err error) []error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Errorf("%s: %s", fieldPath(fe.Namespace()), describe(fe)))
	}
	return out
}

// fieldPath turns "DeckImport.groups[0].name" into "groups[0].name".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("needs at least %s entries", fe.Param())
	case "len":
		return fmt.Sprintf("must be %s characters", fe.Param())
	case "lowercase":
		return "must be lowercase"
	}
	return fmt.Sprintf("failed %q", fe.Tag())
}

// checkItem decodes raw as mode's item shape and returns its id, which may be
// empty.
func checkItem(mode domain.ExerciseMode, raw json.RawMessage) (string, error) {
	switch mode {
	case domain.ModeFlashcards:
		return checkWith(modes.Flashcards(), raw)
	case domain.ModeTranslatePlToFr:
		return checkWith(modes.TranslatePlToFr(), raw)
	case domain.ModeTranslateFrToPl:
		return checkWith(modes.TranslateFrToPl(), raw)
	case domain.ModeGuessObject:
		return checkWith(modes.GuessObject(), raw)
	case domain.ModeFillBlank:
		id, err := checkWith(modes.FillBlank(), raw)
		if err != nil {
			return "", err
		}
		var item domain.FillBlankItem
		_ = json.Unmarshal(raw, &item)
		if !strings.Contains(item.SentenceWithBlank, domain.BlankPlaceholder) {
			return "", fmt.Errorf("sentence_with_blank must contain %q", domain.BlankPlaceholder)
		}
		return id, nil
	}
	return "", fmt.Errorf("unknown mode %q", mode)
}

func checkWith[T any](a session.Adapter[T], raw json.RawMessage) (string, error) {
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return "", fmt.Errorf("invalid item: %w", err)
	}
	if strings.TrimSpace(a.Prompt(item)) == "" {
		return "", errors.New("prompt field is empty")
	}
	if strings.TrimSpace(a.Answer(item)) == "" {
		return "", errors.New("answer field is empty")
	}
	return a.ID(item), nil
}
