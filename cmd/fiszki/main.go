package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/fiszki/internal/api"
	"github.com/alexanderramin/fiszki/internal/cli"
	"github.com/alexanderramin/fiszki/internal/config"
	"github.com/alexanderramin/fiszki/internal/db"
	"github.com/alexanderramin/fiszki/internal/domain"
	"github.com/alexanderramin/fiszki/internal/importer"
	"github.com/alexanderramin/fiszki/internal/logging"
	"github.com/alexanderramin/fiszki/internal/repository"
	"github.com/alexanderramin/fiszki/internal/session"
	"github.com/mattn/go-isatty"
)

// profileTimeout bounds the profile call that seeds the scoreboard.
const profileTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close()
		}
	}()

	app := &cli.App{}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.Configure = func(opts cli.GlobalOptions) error {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}

		logFile, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		closers = append(closers, logFile)
		logger := logging.Setup(cfg.Log.Level, logFile)

		database, err := db.OpenDB(cfg.Offline.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		closers = append(closers, database)

		app.Logger = logger
		app.Session = cfg.SessionOptions()
		app.Importer = importer.New(db.NewSQLiteUnitOfWork(database))
		app.Offline = opts.Offline || cfg.Offline.Enabled

		if app.Offline {
			wireOffline(app, database)
			logger.Info("fiszki started", "offline", true, "db", cfg.Offline.DBPath)
			return nil
		}
		wireOnline(app, cfg, logger)
		logger.Info("fiszki started", "offline", false, "base_url", cfg.API.BaseURL)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}

// wireOffline serves every mode from the local deck store. Scoring, the word
// game and AI checks need the backend and stay disabled.
func wireOffline(app *cli.App, conn db.DBTX) {
	app.Flashcards = repository.NewSQLiteStudyRepo[domain.Flashcard](conn, domain.ModeFlashcards)
	app.TranslatePlFr = repository.NewSQLiteStudyRepo[domain.TranslationItem](conn, domain.ModeTranslatePlToFr)
	app.TranslateFrPl = repository.NewSQLiteStudyRepo[domain.TranslationItem](conn, domain.ModeTranslateFrToPl)
	app.GuessObject = repository.NewSQLiteStudyRepo[domain.GuessObjectItem](conn, domain.ModeGuessObject)
	app.FillBlank = repository.NewSQLiteStudyRepo[domain.FillBlankItem](conn, domain.ModeFillBlank)
	app.Stats = repository.NewSQLiteStatsRepo(conn)
}

func wireOnline(app *cli.App, cfg *config.Config, logger *slog.Logger) {
	client := api.NewClient(cfg.APIClient(), api.NewLogObserver(logger))

	app.Flashcards = api.NewStudyClient[domain.Flashcard](client, domain.ModeFlashcards)
	app.TranslatePlFr = api.NewStudyClient[domain.TranslationItem](client, domain.ModeTranslatePlToFr)
	app.TranslateFrPl = api.NewStudyClient[domain.TranslationItem](client, domain.ModeTranslateFrToPl)
	app.GuessObject = api.NewStudyClient[domain.GuessObjectItem](client, domain.ModeGuessObject)
	app.FillBlank = api.NewStudyClient[domain.FillBlankItem](client, domain.ModeFillBlank)
	app.Scorer = api.NewScoreClient(client)
	app.MiniGame = api.NewWordleClient(client)
	app.Verifier = api.NewVerifyClient(client)

	stats := api.NewStatsClient(client)
	app.Stats = stats
	app.SeedBoard = func(ctx context.Context) *session.Scoreboard {
		return seedScoreboard(ctx, stats, logger)
	}
}

// seedScoreboard starts the header totals from the account profile. A failed
// call starts from zero; the first scored answer corrects it.
func seedScoreboard(ctx context.Context, stats *api.StatsClient, logger *slog.Logger) *session.Scoreboard {
	ctx, cancel := context.WithTimeout(ctx, profileTimeout)
	defer cancel()
	p, err := stats.Profile(ctx)
	if err != nil {
		logger.Warn("loading profile stats failed", "error", err)
		return session.NewScoreboard(0, 0)
	}
	return session.NewScoreboard(p.TotalPoints, p.HighestCombo)
}
