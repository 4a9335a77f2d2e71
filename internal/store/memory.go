// internal/store/memory.go
//
// In-memory home for the games served over HTTP.
//
// Characteristics:
//   - Each game engine belongs to exactly one entry; the entry's mutex is the
//     only way to reach it, so the engine itself needs no locking.
//   - Games are keyed by a random UUID.
//   - Idle games are dropped by Prune; nothing survives a restart.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/hangman/internal/game"
)

var ErrNotFound = errors.New("game not found")

// Store holds live games for the HTTP server.
type Store interface {
	// Create adds e and returns its new ID.
	Create(ctx context.Context, e *game.Engine) (string, error)

	// With runs fn with exclusive access to the game. fn must not keep e.
	With(ctx context.Context, id string, fn func(e *game.Engine) error) error

	// Prune drops games untouched for longer than idle and returns how many.
	Prune(ctx context.Context, idle time.Duration) int
}

type entry struct {
	mu       sync.Mutex // serializes access to eng
	eng      *game.Engine
	lastSeen time.Time
}

// memory is a map-based Store.
type memory struct {
	mu    sync.RWMutex // guards games
	games map[string]*entry
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*entry), now: time.Now}
}

func (m *memory) Create(ctx context.Context, e *game.Engine) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[id] = &entry{eng: e, lastSeen: m.now()}
	return id, nil
}

func (m *memory) With(ctx context.Context, id string, fn func(e *game.Engine) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	en, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	en.mu.Lock()
	defer en.mu.Unlock()
	en.lastSeen = m.now()
	return fn(en.eng)
}

func (m *memory) Prune(_ context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, en := range m.games {
		en.mu.Lock()
		stale := en.lastSeen.Before(cutoff)
		en.mu.Unlock()
		if stale {
			delete(m.games, id)
			n++
		}
	}
	return n
}
