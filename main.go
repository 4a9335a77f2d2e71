// main.go
//
// Entry point for the hangman binary.
//
//	hangman              play in the terminal (HANGMAN_UI=screen|line)
//	hangman serve        run the JSON game API on PORT
//	hangman import FILE  load a word file into the WORDS_DB dictionary
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/tui"
	"github.com/robalobadob/hangman/internal/words"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("hangman exited")
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup (screen, log file,
// database) always happens.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	closeLog, err := setupLogging(cfg, cmd == "" && cfg.UI == config.UIScreen)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "":
		err = play(ctx, cfg)
	case "serve":
		err = serve(ctx, cfg)
	case "import":
		if len(os.Args) < 3 {
			return errors.New("usage: hangman import FILE")
		}
		err = importWords(ctx, cfg, os.Args[2])
	default:
		return fmt.Errorf("unknown command %q (want serve or import)", cmd)
	}
	if errors.Is(err, context.Canceled) {
		log.Info().Str("command", cmd).Msg("interrupted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", commandName(cmd), err)
	}
	return nil
}

func commandName(cmd string) string {
	if cmd == "" {
		return "play"
	}
	return cmd
}

// setupLogging points the global logger at LOG_FILE when set. The screen UI
// owns the terminal, so without a file its logs are discarded.
func setupLogging(cfg config.Config, screen bool) (func(), error) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return func() { _ = f.Close() }, nil
	case screen:
		log.Logger = zerolog.New(io.Discard)
	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return func() {}, nil
}

func play(ctx context.Context, cfg config.Config) error {
	src, _, done, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	var ui tui.UI
	if cfg.UI == config.UIScreen {
		s, err := tui.OpenScreen()
		if err != nil {
			return err
		}
		defer s.Close()
		ui = s
	} else {
		ui = tui.NewLineUI(os.Stdin, os.Stdout)
	}

	sess := tui.NewSession(ui, src)
	err = sess.Run(ctx)
	played, won := sess.Stats()
	log.Info().Int("played", played).Int("won", won).Msg("session over")
	return err
}

func serve(ctx context.Context, cfg config.Config) error {
	if config.DevSecret() {
		log.Warn().Msg("HANGMAN_SECRET is the development default; set it before exposing the server")
	}
	src, list, done, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	daily, err := words.NewDaily(list, cfg.DailyKey)
	if err != nil {
		return err
	}

	srv := httpserver.New(store.NewMemoryStore(), httpserver.Options{
		Words:        src,
		Daily:        daily,
		TokenKey:     cfg.TokenKey,
		TokenTTL:     cfg.TokenTTL,
		ClientOrigin: cfg.ClientOrigin,
	})
	log.Info().Str("port", cfg.Port).Msg("starting hangman server")
	return srv.Run(ctx, ":"+cfg.Port, cfg.IdleTTL)
}

func importWords(ctx context.Context, cfg config.Config, path string) error {
	if cfg.WordsDB == "" {
		return errors.New("WORDS_DB must be set to import words")
	}
	list, err := words.ReadFile(path)
	if err != nil {
		return err
	}
	db, err := openDictionary(ctx, cfg.WordsDB)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := words.Import(ctx, db, list)
	if err != nil {
		return err
	}
	log.Info().Int("added", n).Int("read", len(list)).Str("db", cfg.WordsDB).Msg("words imported")
	return nil
}

// openSource picks the SQLite dictionary when WORDS_DB is set and the word
// file (or embedded list) otherwise. It also returns that dictionary's
// words in order so the daily word comes from the same place.
func openSource(ctx context.Context, cfg config.Config) (words.Source, []string, func(), error) {
	if cfg.WordsDB != "" {
		db, err := openDictionary(ctx, cfg.WordsDB)
		if err != nil {
			return nil, nil, nil, err
		}
		list, err := words.All(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("read %s: %w", cfg.WordsDB, err)
		}
		return words.NewSQLiteSource(db), list, func() { _ = db.Close() }, nil
	}
	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		return nil, nil, nil, err
	}
	src, err := words.NewListSource(list)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Debug().Int("words", len(list)).Msg("word list loaded")
	return src, list, func() {}, nil
}

func openDictionary(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := words.OpenDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := words.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
