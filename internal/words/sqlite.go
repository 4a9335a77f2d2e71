// internal/words/sqlite.go
//
// SQLite-backed dictionary.
// Responsibilities:
//   - Opening the dictionary database with safe defaults (WAL, busy timeout).
//   - Applying the embedded schema scripts (idempotent, recorded in _migrations).
//   - Importing word lists in one transaction.
//   - Listing the dictionary in order (All, used for the daily word).
//   - Serving random words without repeats (SQLiteSource).
//
// The database is only read while playing; nothing about games is stored.

package words

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/assets"
)

// OpenDB opens (and creates if missing) a SQLite dictionary database.
// ":memory:" is accepted and pinned to a single connection so every query
// sees the same database.
func OpenDB(dsn string) (*sql.DB, error) {
	if dsn == ":memory:" {
		db, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
		return db, nil
	}

	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	return db, nil
}

// Migrate applies the embedded schema scripts in lexical order, skipping
// those already recorded in _migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	fsys := assets.Migrations()
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Import adds the usable words of list to the dictionary and returns how
// many were new. Existing words are left alone.
func Import(ctx context.Context, db *sql.DB, list []string) (int, error) {
	clean := Filter(list)
	if len(clean) == 0 {
		return 0, ErrEmptyList
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word) VALUES (?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range clean {
		res, err := stmt.ExecContext(ctx, w)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return added, nil
}

// All returns every usable dictionary word in insertion order.
func All(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT word FROM words ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out = Filter(out)
	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// SQLiteSource serves words from a dictionary database in random order,
// each word at most once per source.
type SQLiteSource struct {
	db *sql.DB

	mu     sync.Mutex
	loaded bool
	ids    []int64 // shuffled, consumed from the front
}

func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// Next returns a random word not yet served by this source.
func (s *SQLiteSource) Next(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.load(ctx); err != nil {
			return "", err
		}
	}
	for len(s.ids) > 0 {
		id := s.ids[0]
		s.ids = s.ids[1:]

		var raw string
		err := s.db.QueryRowContext(ctx, `SELECT word FROM words WHERE id=?`, id).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("select word %d: %w", id, err)
		}
		if w, ok := Clean(raw); ok {
			return w, nil
		}
		log.Warn().Int64("id", id).Str("word", raw).Msg("skipping unusable dictionary word")
	}
	return "", ErrExhausted
}

// load reads every word id once and shuffles them.
func (s *SQLiteSource) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM words`)
	if err != nil {
		return fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return ErrEmptyList
	}
	if err := shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] }); err != nil {
		return err
	}
	s.ids = ids
	s.loaded = true
	log.Debug().Int("words", len(ids)).Msg("dictionary loaded")
	return nil
}
