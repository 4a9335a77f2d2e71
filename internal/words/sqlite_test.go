package words

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestSQLiteImportAndServe(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// second run must be a no-op
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate again: %v", err)
	}

	added, err := Import(ctx, db, []string{"otter", "Badger", "o'clock", "otter", "weasel"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if added != 3 {
		t.Fatalf("Import added %d, want 3", added)
	}
	added, err = Import(ctx, db, []string{"OTTER", "stoat"})
	if err != nil {
		t.Fatalf("Import again: %v", err)
	}
	if added != 1 {
		t.Fatalf("second Import added %d, want 1", added)
	}

	all, err := All(ctx, db)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if got := strings.Join(all, ","); got != "OTTER,BADGER,WEASEL,STOAT" {
		t.Fatalf("All = %s", got)
	}

	src := NewSQLiteSource(db)
	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		w, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		if seen[w] {
			t.Fatalf("word %q served twice", w)
		}
		seen[w] = true
	}
	for _, w := range []string{"OTTER", "BADGER", "WEASEL", "STOAT"} {
		if !seen[w] {
			t.Fatalf("word %q never served; got %v", w, seen)
		}
	}
	if _, err := src.Next(ctx); !errors.Is(err, ErrExhausted) {
		t.Fatalf("Next after exhaustion err = %v, want ErrExhausted", err)
	}
}

func TestSQLiteEmptyDictionary(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(filepath.Join(t.TempDir(), "dict", "words.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if _, err := NewSQLiteSource(db).Next(ctx); !errors.Is(err, ErrEmptyList) {
		t.Fatalf("Next on empty dictionary err = %v, want ErrEmptyList", err)
	}
	if _, err := All(ctx, db); !errors.Is(err, ErrEmptyList) {
		t.Fatalf("All on empty dictionary err = %v, want ErrEmptyList", err)
	}
	if _, err := Import(ctx, db, []string{"it's"}); !errors.Is(err, ErrEmptyList) {
		t.Fatalf("Import of junk err = %v, want ErrEmptyList", err)
	}
}
