package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

// Session plays rounds until the player declines a replay, quits, or the
// word source runs dry. Each round gets a fresh engine.
type Session struct {
	ui  UI
	src words.Source

	played int
	won    int
}

func NewSession(ui UI, src words.Source) *Session {
	return &Session{ui: ui, src: src}
}

// Stats reports rounds finished and rounds won so far.
func (s *Session) Stats() (played, won int) { return s.played, s.won }

// Run blocks until the session ends. Quitting, cancelling ctx and an
// exhausted dictionary end it normally and return nil.
func (s *Session) Run(ctx context.Context) error {
	for {
		word, err := s.src.Next(ctx)
		if errors.Is(err, words.ErrExhausted) {
			log.Info().Int("played", s.played).Msg("dictionary exhausted")
			return s.quiet(s.ui.Notify(ctx, fmt.Sprintf("No words left to play. You won %d of %d. Thanks for playing!", s.won, s.played)))
		}
		if err != nil {
			return s.quiet(fmt.Errorf("next word: %w", err))
		}

		eng, err := game.New(word)
		if err != nil {
			// sources filter their words; skip anything that slipped through
			log.Warn().Err(err).Str("word", word).Msg("word source returned unusable word")
			continue
		}

		if err := s.play(ctx, eng); err != nil {
			return s.quiet(err)
		}

		again, err := s.ui.Confirm(ctx, fmt.Sprintf("%s  [won %d of %d]", promptReplay, s.won, s.played))
		if err != nil {
			return s.quiet(err)
		}
		if !again {
			return nil
		}
	}
}

// play runs one round to a terminal status.
func (s *Session) play(ctx context.Context, eng *game.Engine) error {
	if err := s.ui.Draw(newFrame(eng, msgWelcome, promptGuess)); err != nil {
		return err
	}
	for eng.Status() == game.Running {
		tok, err := s.ui.ReadGuess(ctx)
		if err != nil {
			return err
		}
		out, gerr := eng.SubmitGuess(tok)
		log.Debug().Str("token", tok).Bool("accepted", gerr == nil).
			Bool("hit", out.Hit).Int("misses", eng.Misses()).Msg("guess")

		msg := Feedback(tok, out, gerr)
		prompt := promptGuess
		if eng.Status().Terminal() {
			msg = EndMessage(eng.Snapshot())
			prompt = ""
		}
		if err := s.ui.Draw(newFrame(eng, msg, prompt)); err != nil {
			return err
		}
	}

	s.played++
	if eng.Status() == game.Won {
		s.won++
	}
	log.Info().Str("status", eng.Status().String()).Int("misses", eng.Misses()).
		Int("played", s.played).Int("won", s.won).Msg("round finished")
	return nil
}

// quiet maps a player quit or an interrupt to a clean exit.
func (s *Session) quiet(err error) error {
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		log.Info().Err(err).Int("played", s.played).Msg("session stopped")
		return nil
	}
	return err
}
