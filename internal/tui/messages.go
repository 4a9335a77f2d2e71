package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/hangman/internal/game"
)

const (
	promptGuess  = "Guess any letter"
	promptReplay = "Play again? (y/n)"
	msgWelcome   = "A new word has been chosen."
)

// Feedback describes the result of SubmitGuess(raw) for the player.
func Feedback(raw string, out game.Outcome, err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidGuess):
		return "Please input a letter"
	case errors.Is(err, game.ErrDuplicateGuess):
		return fmt.Sprintf("You have already guessed '%s'", strings.ToUpper(strings.TrimSpace(raw)))
	case errors.Is(err, game.ErrGameOver):
		return "The game is already over"
	case err != nil:
		return err.Error()
	}

	if out.Hit {
		return fmt.Sprintf("'%c' is in the word! %s", out.Letter, missesLeft(out.Misses))
	}
	return fmt.Sprintf("'%c' is not in the word. %s", out.Letter, missesLeft(out.Misses))
}

// EndMessage is shown once a game has finished. A win reveals the word,
// a loss reports the misses and the word.
func EndMessage(s game.Snapshot) string {
	switch s.Status {
	case game.Won:
		return fmt.Sprintf("Congratulations! You solved the word '%s'!", s.Secret)
	case game.Lost:
		return fmt.Sprintf("Shoot.. You've used all %d misses. The word was '%s'. Better luck next time", s.Misses, s.Secret)
	}
	return ""
}

func missesLeft(misses int) string {
	left := game.MaxMisses - misses
	if left == 1 {
		return "1 miss left"
	}
	return fmt.Sprintf("%d misses left", left)
}
