package domain

// ExerciseMode identifies one mode instance. The value doubles as the URL
// path segment used by the study endpoints.
type ExerciseMode string

const (
	ModeFlashcards      ExerciseMode = "fiszki"
	ModeTranslatePlToFr ExerciseMode = "translate-pl-fr"
	ModeTranslateFrToPl ExerciseMode = "translate-fr-pl"
	ModeGuessObject     ExerciseMode = "guess-object"
	ModeFillBlank       ExerciseMode = "fill-blank"
)

// AllModes lists every mode in menu order.
var AllModes = []ExerciseMode{
	ModeFlashcards,
	ModeTranslatePlToFr,
	ModeTranslateFrToPl,
	ModeGuessObject,
	ModeFillBlank,
}

// ParseMode resolves a mode from its path segment.
func ParseMode(s string) (ExerciseMode, bool) {
	for _, m := range AllModes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

func (m ExerciseMode) Label() string {
	switch m {
	case ModeFlashcards:
		return "Flashcards"
	case ModeTranslatePlToFr:
		return "Translate PL → FR"
	case ModeTranslateFrToPl:
		return "Translate FR → PL"
	case ModeGuessObject:
		return "Guess the object"
	case ModeFillBlank:
		return "Fill the blank"
	}
	return string(m)
}

type Phase string

const (
	PhaseSelection Phase = "selection"
	PhaseLoading   Phase = "loading"
	PhaseActive    Phase = "active"
	PhaseSummary   Phase = "summary"
)

type AnswerStatus string

const (
	AnswerTyping  AnswerStatus = "typing"
	AnswerCorrect AnswerStatus = "correct"
	AnswerWrong   AnswerStatus = "wrong"
)

// Verdict is the per-character result of a word-guess check.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
)

func (v Verdict) Valid() bool {
	return v == VerdictCorrect || v == VerdictPresent || v == VerdictAbsent
}

// TaskType tells the AI verifier what kind of exercise produced an answer.
type TaskType string

const (
	TaskNone                TaskType = ""
	TaskTranslatePlToTarget TaskType = "translate_pl_to_target"
	TaskTranslateTargetToPl TaskType = "translate_target_to_pl"
	TaskFillBlank           TaskType = "fill_blank"
)
