// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Status: lifecycle of a single game (running → won/lost).
//   - Outcome: what one accepted guess did to the game.
//   - Board: the fixed 26-slot guessed-letter layout.
//   - Snapshot: a plain copy of every view value, for renderers and the API.
//   - Sentinel errors reported by SubmitGuess and New.

package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxMisses is the number of wrong guesses that ends a game.
	MaxMisses = 6

	// AlphabetSize is the number of letters a guess may take (A–Z).
	AlphabetSize = 26

	// MaskRune stands in for letters of the secret not yet guessed.
	MaskRune = '_'

	// blankSlot fills board slots for letters not yet guessed.
	blankSlot = ' '
)

var (
	ErrInvalidSecret  = errors.New("secret must be one or more letters A-Z")
	ErrInvalidGuess   = errors.New("guess must be a single letter A-Z")
	ErrDuplicateGuess = errors.New("letter already guessed")
	ErrGameOver       = errors.New("game is over")
)

// Status is the coarse state of a game. Won and Lost are terminal.
type Status int

const (
	Running Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// Terminal reports whether no further guesses can be processed.
func (s Status) Terminal() bool { return s == Won || s == Lost }

// MarshalText encodes the status as its lowercase name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "running":
		*s = Running
	case "won":
		*s = Won
	case "lost":
		*s = Lost
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

// Outcome describes the effect of one accepted guess.
type Outcome struct {
	Letter   rune   // normalized uppercase letter
	Hit      bool   // letter occurs in the secret
	Revealed int    // positions of the secret it uncovered
	Misses   int    // miss count after the guess
	Status   Status // status after the guess
}

// Board is the guessed-letter layout in alphabet order: slot i holds 'A'+i
// once that letter is guessed and a blank otherwise.
type Board [AlphabetSize]rune

// Rows splits the board into two rows of 13 slots, space separated.
func (b Board) Rows() [2]string {
	var rows [2]string
	half := AlphabetSize / 2
	for r := 0; r < 2; r++ {
		var sb strings.Builder
		for i, slot := range b[r*half : (r+1)*half] {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(slot)
		}
		rows[r] = sb.String()
	}
	return rows
}

// Snapshot is a value copy of the view state. Secret is only set once the
// game is over so a running game can be shown without leaking the answer.
type Snapshot struct {
	Revealed   string    `json:"revealed"`
	Length     int       `json:"length"`
	Board      [2]string `json:"board"`
	Guessed    string    `json:"guessed"`
	Misses     int       `json:"misses"`
	MissesLeft int       `json:"missesLeft"`
	MaxMisses  int       `json:"maxMisses"`
	Stage      int       `json:"stage"`
	Status     Status    `json:"status"`
	Secret     string    `json:"secret,omitempty"`
}
