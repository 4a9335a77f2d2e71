// Package tui runs Hangman in a terminal: it asks a word source for a
// secret, owns one game engine per round, feeds it the player's guesses and
// draws the result after every call.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/robalobadob/hangman/internal/art"
	"github.com/robalobadob/hangman/internal/game"
)

// ErrQuit is returned by a UI when the player asks to leave or input ends.
var ErrQuit = errors.New("player quit")

// Frame is everything a UI draws for one screen update.
type Frame struct {
	Game    game.Snapshot
	Art     []string
	Message string
	Prompt  string
}

// UI is a terminal front end. Implementations block on input and must
// return ctx.Err() when ctx is cancelled while waiting.
type UI interface {
	Draw(f Frame) error
	ReadGuess(ctx context.Context) (string, error)
	Confirm(ctx context.Context, question string) (bool, error)
	Notify(ctx context.Context, msg string) error
}

func newFrame(e *game.Engine, msg, prompt string) Frame {
	return Frame{
		Game:    e.Snapshot(),
		Art:     art.Lines(e.Stage()),
		Message: msg,
		Prompt:  prompt,
	}
}

// spaced puts a space between letters so masked words are easy to count.
func spaced(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Split(s, ""), " ")
}
