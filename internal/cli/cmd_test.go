package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/importer"
	"github.com/alexanderramin/fiszki/internal/repository"
	"github.com/alexanderramin/fiszki/internal/session"
	"github.com/alexanderramin/fiszki/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an offline App backed by an in-memory deck store.
func testApp(t *testing.T) (*App, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)

	return &App{
		Flashcards:    repository.NewSQLiteStudyRepo[domain.Flashcard](database, domain.ModeFlashcards),
		TranslatePlFr: repository.NewSQLiteStudyRepo[domain.TranslationItem](database, domain.ModeTranslatePlToFr),
		TranslateFrPl: repository.NewSQLiteStudyRepo[domain.TranslationItem](database, domain.ModeTranslateFrToPl),
		GuessObject:   repository.NewSQLiteStudyRepo[domain.GuessObjectItem](database, domain.ModeGuessObject),
		FillBlank:     repository.NewSQLiteStudyRepo[domain.FillBlankItem](database, domain.ModeFillBlank),
		Stats:         repository.NewSQLiteStatsRepo(database),
		Importer:      importer.New(testutil.NewTestUoW(database)),
		Session:       fastSession(),
		Offline:       true,
	}, database
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeDeck(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app, _ := testApp(t)
	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "study")
	assert.Contains(t, out, "--offline")
}

func TestRootCmd_InteractiveOpensTUI(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return true }
	var got tea.Model
	app.RunProgram = func(m tea.Model, _ io.Reader, _ io.Writer) error {
		got = m
		return nil
	}

	_, err := executeCmd(t, app)
	require.NoError(t, err)
	m, ok := got.(appModel)
	require.True(t, ok)
	assert.Len(t, m.viewStack, 1)
}

func TestRootCmd_ConfigureRunsOnceWithFlags(t *testing.T) {
	app, _ := testApp(t)
	var calls []GlobalOptions
	app.Configure = func(o GlobalOptions) error {
		calls = append(calls, o)
		return nil
	}

	_, err := executeCmd(t, app, "--config", "/tmp/fiszki.yaml", "--offline", "check", "a", "a")
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, GlobalOptions{ConfigPath: "/tmp/fiszki.yaml", Offline: true}, calls[0])
}

func TestRootCmd_SeedBoardOnlyForTUI(t *testing.T) {
	app, _ := testApp(t)
	seeds := 0
	app.SeedBoard = func(context.Context) *session.Scoreboard {
		seeds++
		return session.NewScoreboard(700, 12)
	}

	_, err := executeCmd(t, app, "check", "chat", "chat")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "badges")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "groups", "fiszki")
	require.NoError(t, err)
	assert.Zero(t, seeds, "plain commands must not fetch the profile")

	app.IsInteractive = func() bool { return true }
	var seededBeforeRun bool
	app.RunProgram = func(tea.Model, io.Reader, io.Writer) error {
		seededBeforeRun = seeds == 1
		return nil
	}
	_, err = executeCmd(t, app)
	require.NoError(t, err)
	assert.True(t, seededBeforeRun)
	assert.Equal(t, 700, app.Board.Totals().TotalPoints)

	_, err = executeCmd(t, app)
	require.NoError(t, err)
	assert.Equal(t, 1, seeds, "the board is seeded once")
}

// --- groups ---

func TestGroupsCmd_ListsGroupsWithProgress(t *testing.T) {
	app, database := testApp(t)
	testutil.SeedGroup(t, database, domain.ModeFlashcards, "Zwierzęta", testutil.Flashcards("z", 4), testutil.WithGroupID("animals"))
	testutil.MarkLearned(t, database, "z-1")

	out, err := executeCmd(t, app, "groups", "fiszki")
	require.NoError(t, err)
	assert.Contains(t, out, "FLASHCARDS")
	assert.Contains(t, out, "Zwierzęta")
	assert.Contains(t, out, "animals")
	assert.Contains(t, out, "1/4")
}

func TestGroupsCmd_EmptyMode(t *testing.T) {
	app, _ := testApp(t)
	out, err := executeCmd(t, app, "groups", "fill-blank")
	require.NoError(t, err)
	assert.Contains(t, out, "No groups for Fill the blank.")
}

func TestGroupsCmd_UnknownMode(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "groups", "karaoke")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mode "karaoke"`)
	assert.Contains(t, err.Error(), "translate-pl-fr")
}

func TestGroupsCmd_UnavailableMode(t *testing.T) {
	app, _ := testApp(t)
	app.GuessObject = nil
	_, err := executeCmd(t, app, "groups", "guess-object")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

// --- stats & badges ---

func TestStatsCmd_OfflineProgress(t *testing.T) {
	app, database := testApp(t)
	testutil.SeedGroup(t, database, domain.ModeFlashcards, "Zwierzęta", testutil.Flashcards("z", 12))
	ids := make([]string, 0, 10)
	for _, c := range testutil.Flashcards("z", 10) {
		ids = append(ids, c.ID)
	}
	testutil.MarkLearned(t, database, ids...)

	out, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "YOUR PROGRESS")
	assert.Contains(t, out, "Flashcards")
	assert.Contains(t, out, "Quick Learner")
	assert.Contains(t, out, "NEXT UP")
}

func TestBadgesCmd_EarnedAndUpcoming(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "badges")
	require.NoError(t, err)
	assert.Contains(t, out, "EARNED (0/")
	assert.Contains(t, out, "No badges yet")
	assert.Contains(t, out, "NEXT UP")
}

func TestBadgesCmd_All(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "badges", "--all")
	require.NoError(t, err)
	for _, name := range []string{"First Steps", "Combo King", "Scholar", "Translator"} {
		assert.Contains(t, out, name)
	}
}

// --- check ---

func TestCheckCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "check", "Élève", "  eleve!")
	require.NoError(t, err)
	assert.Contains(t, out, `"eleve"`)
	assert.Contains(t, out, "✔ match")

	out, err = executeCmd(t, app, "check", "chat", "chien")
	require.NoError(t, err)
	assert.Contains(t, out, "✘ no match")
}

func TestCheckCmd_NeedsTwoArgs(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "check", "chat")
	require.Error(t, err)
}

// --- import ---

const cliDeck = `{"mode":"fiszki","groups":[{"id":"kitchen","name":"Kuchnia","items":[
	{"id":"k1","text_pl":"nóż","text_target":"couteau"},
	{"id":"k2","text_pl":"łyżka","text_target":"cuillère"}
]}]}`

func TestImportCmd_WritesDeck(t *testing.T) {
	app, _ := testApp(t)
	path := writeDeck(t, cliDeck)

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 group and 2 items into Flashcards")

	out, err = executeCmd(t, app, "groups", "fiszki")
	require.NoError(t, err)
	assert.Contains(t, out, "Kuchnia")
}

func TestImportCmd_DryRunWritesNothing(t *testing.T) {
	app, _ := testApp(t)
	path := writeDeck(t, cliDeck)

	out, err := executeCmd(t, app, "import", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "deck is valid")

	out, err = executeCmd(t, app, "groups", "fiszki")
	require.NoError(t, err)
	assert.Contains(t, out, "No groups for Flashcards.")
}

func TestImportCmd_ListsEveryProblem(t *testing.T) {
	app, _ := testApp(t)
	path := writeDeck(t, `{"mode":"fiszki","groups":[{"items":[{"text_pl":"a","text_target":"b"}]},{"name":"x","items":[{"text_pl":"kot","text_target":" "}]}]}`)

	_, err := executeCmd(t, app, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 problems in deck")
	assert.Contains(t, err.Error(), "groups[0].name: is required")
	assert.Contains(t, err.Error(), "groups[1].items[0]: answer field is empty")
}

func TestImportCmd_MissingFile(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "import", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading deck")
}

func TestImportCmd_NeedsOfflineStore(t *testing.T) {
	app, _ := testApp(t)
	app.Importer = nil
	_, err := executeCmd(t, app, "import", writeDeck(t, cliDeck))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline database")
}

// --- study ---

func TestStudyCmd_RequiresTerminal(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "study", "fiszki")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestStudyCmd_PresetOpensStudyView(t *testing.T) {
	app, database := testApp(t)
	testutil.SeedGroup(t, database, domain.ModeFlashcards, "Zwierzęta", testutil.Flashcards("z", 1), testutil.WithGroupID("animals"))
	app.IsInteractive = func() bool { return true }

	var got appModel
	app.RunProgram = func(m tea.Model, _ io.Reader, _ io.Writer) error {
		got = m.(appModel)
		return nil
	}

	_, err := executeCmd(t, app, "study", "fiszki", "--group", "animals", "--include-learned")
	require.NoError(t, err)
	require.Len(t, got.viewStack, 2)
	sv, ok := got.viewStack[1].(*studyView[domain.Flashcard])
	require.True(t, ok)
	require.NotNil(t, sv.preset)
	assert.Equal(t, []string{"animals"}, sv.preset.groupIDs)
	assert.True(t, sv.preset.includeLearned)
}

func TestStudyCmd_SQLiteSessionEndToEnd(t *testing.T) {
	app, database := testApp(t)
	testutil.SeedGroup(t, database, domain.ModeFlashcards, "Zwierzęta", testutil.Flashcards("z", 1), testutil.WithGroupID("animals"))

	d := NewTestDriver(t, app, studyFirst(t, app, "fiszki", "animals"))
	d.TypeLine("chat")

	snap := snapshotOf[domain.Flashcard](t, d)
	assert.Equal(t, domain.PhaseSummary, snap.Phase)
	assert.Equal(t, 1, snap.Stats.Correct)
	assert.Contains(t, d.View(), "SESSION SUMMARY")
}
