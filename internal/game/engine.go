// internal/game/engine.go
//
// Core game engine for a single Hangman game.
// Responsibilities:
//   - Validate and normalize the secret word at construction.
//   - Normalize guesses (trim, uppercase, exactly one letter A–Z).
//   - Track guessed letters in a fixed [26]bool table and count misses.
//   - Drive the state machine: running → lost | won.
//
// Notes:
//   - Loss is evaluated before win after every guess. A guess that uses up
//     the last miss is scored as a loss even if every other letter of the
//     secret is already known.
//   - The engine has no locks; callers own one engine each.
package game

import (
	"fmt"
	"strings"
)

// Engine holds the state of one game. The zero value is not usable; call New.
type Engine struct {
	secret    []byte
	inSecret  [AlphabetSize]bool // distinct letters of the secret
	guessed   [AlphabetSize]bool
	misses    int
	maxMisses int
	status    Status
}

// New starts a game for secret. The secret is trimmed and upper-cased and
// must then consist only of letters A–Z.
func New(secret string) (*Engine, error) {
	return newEngine(secret, MaxMisses)
}

func newEngine(secret string, maxMisses int) (*Engine, error) {
	s := strings.ToUpper(strings.TrimSpace(secret))
	if s == "" {
		return nil, ErrInvalidSecret
	}
	e := &Engine{secret: []byte(s), maxMisses: maxMisses}
	for i := 0; i < len(s); i++ {
		j := letterIndex(s[i])
		if j < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSecret, secret)
		}
		e.inSecret[j] = true
	}
	return e, nil
}

// SubmitGuess applies one guess token. A nil error means the guess was
// accepted and the Outcome describes it.
//
// Rejections leave the game untouched:
//   - ErrGameOver if the game already ended.
//   - ErrInvalidGuess if raw is not exactly one letter after normalization.
//   - ErrDuplicateGuess if the letter was guessed before.
func (e *Engine) SubmitGuess(raw string) (Outcome, error) {
	if e.status.Terminal() {
		return Outcome{}, fmt.Errorf("%w (%s)", ErrGameOver, e.status)
	}
	i, ok := normalizeGuess(raw)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidGuess, raw)
	}
	letter := rune('A' + i)
	if e.guessed[i] {
		return Outcome{}, fmt.Errorf("%w: %c", ErrDuplicateGuess, letter)
	}

	e.guessed[i] = true
	out := Outcome{Letter: letter, Hit: e.inSecret[i]}
	if out.Hit {
		out.Revealed = strings.Count(string(e.secret), string(letter))
	} else if e.misses < e.maxMisses {
		e.misses++
	}

	// Loss first, then win.
	switch {
	case e.misses >= e.maxMisses:
		e.status = Lost
	case e.solved():
		e.status = Won
	}

	out.Misses = e.misses
	out.Status = e.status
	return out, nil
}

// solved reports whether every distinct letter of the secret is guessed.
func (e *Engine) solved() bool {
	for i, need := range e.inSecret {
		if need && !e.guessed[i] {
			return false
		}
	}
	return true
}

// normalizeGuess trims and upper-cases raw and returns the alphabet index
// of the single letter it must contain.
func normalizeGuess(raw string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) != 1 {
		return 0, false
	}
	i := letterIndex(s[0])
	return i, i >= 0
}

// letterIndex maps an uppercase ASCII letter to 0..25, or -1 otherwise.
func letterIndex(c byte) int {
	if c < 'A' || c > 'Z' {
		return -1
	}
	return int(c - 'A')
}
