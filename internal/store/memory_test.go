package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/hangman/internal/game"
)

func newGame(t *testing.T, secret string) *game.Engine {
	t.Helper()
	e, err := game.New(secret)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestCreateAndWith(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	id, err := st.Create(ctx, newGame(t, "store"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("id %q is not a UUID: %v", id, err)
	}

	err = st.With(ctx, id, func(e *game.Engine) error {
		_, err := e.SubmitGuess("s")
		return err
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	var revealed string
	_ = st.With(ctx, id, func(e *game.Engine) error {
		revealed = e.RevealedWord()
		return nil
	})
	if revealed != "S____" {
		t.Fatalf("revealed = %q, want S____", revealed)
	}

	if err := st.With(ctx, "nope", func(*game.Engine) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("With(unknown) err = %v, want ErrNotFound", err)
	}
}

func TestWithSerializesGuesses(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	id, err := st.Create(ctx, newGame(t, "QUIZ"))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.With(ctx, id, func(e *game.Engine) error {
				if _, err := e.SubmitGuess("A"); err == nil {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
				return nil
			})
		}()
	}
	wg.Wait()
	if accepted != 1 {
		t.Fatalf("letter accepted %d times, want 1", accepted)
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := &memory{games: make(map[string]*entry), now: func() time.Time { return now }}

	old, _ := m.Create(ctx, newGame(t, "old"))
	now = now.Add(20 * time.Minute)
	fresh, _ := m.Create(ctx, newGame(t, "fresh"))
	now = now.Add(15 * time.Minute)

	if n := m.Prune(ctx, 30*time.Minute); n != 1 {
		t.Fatalf("Prune removed %d, want 1", n)
	}
	if err := m.With(ctx, old, func(*game.Engine) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old game still present: %v", err)
	}
	if err := m.With(ctx, fresh, func(*game.Engine) error { return nil }); err != nil {
		t.Fatalf("fresh game pruned: %v", err)
	}
}
