package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

// seqSource hands out its words in order, then reports exhaustion.
type seqSource []string

func (s *seqSource) Next(context.Context) (string, error) {
	if len(*s) == 0 {
		return "", words.ErrExhausted
	}
	w := (*s)[0]
	*s = (*s)[1:]
	return w, nil
}

func runLines(t *testing.T, input string, list ...string) (string, *Session) {
	t.Helper()
	var out bytes.Buffer
	src := seqSource(list)
	s := NewSession(NewLineUI(strings.NewReader(input), &out), &src)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return out.String(), s
}

func TestSessionWinThenDecline(t *testing.T) {
	out, s := runLines(t, "c\nc\n1\nab\na\nt\nmaybe\nn\n", "cat", "dog")
	for _, want := range []string{
		"'C' is in the word! 6 misses left",
		"You have already guessed 'C'",
		"Please input a letter",
		"Word:    C A _",
		"Congratulations! You solved the word 'CAT'!",
		"Please answer y or n",
		"Play again? (y/n)  [won 1 of 1]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if played, won := s.Stats(); played != 1 || won != 1 {
		t.Fatalf("Stats() = %d, %d; want 1, 1", played, won)
	}
}

func TestSessionLossReplayAndExhaustion(t *testing.T) {
	out, s := runLines(t, "q\nx\nz\nj\nv\nk\ny\ng\no\ny\n", "dog", "go")
	for _, want := range []string{
		"'Q' is not in the word. 5 misses left",
		"'V' is not in the word. 1 miss left",
		"Shoot.. You've used all 6 misses. The word was 'DOG'",
		"Congratulations! You solved the word 'GO'!",
		"No words left to play. You won 1 of 2.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "Word:    D O G") {
		t.Error("lost game revealed the word on the board")
	}
	if played, won := s.Stats(); played != 2 || won != 1 {
		t.Fatalf("Stats() = %d, %d; want 2, 1", played, won)
	}
}

func TestSessionEndOfInputQuits(t *testing.T) {
	out, s := runLines(t, "a\n", "hangman")
	if played, _ := s.Stats(); played != 0 {
		t.Fatalf("played = %d, want 0", played)
	}
	if !strings.Contains(out, "'A' is in the word!") {
		t.Fatalf("guess before EOF not processed:\n%s", out)
	}
}

func TestSessionSkipsUnusableWords(t *testing.T) {
	out, _ := runLines(t, "o\nk\nn\n", "it's", "ok")
	if !strings.Contains(out, "You solved the word 'OK'") {
		t.Fatalf("session did not move past the bad word:\n%s", out)
	}
}

type failingSource struct{}

func (failingSource) Next(context.Context) (string, error) { return "", io.ErrUnexpectedEOF }

func TestSessionSourceError(t *testing.T) {
	s := NewSession(NewLineUI(strings.NewReader(""), io.Discard), failingSource{})
	if err := s.Run(context.Background()); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("Run err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestLineUICancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	ui := NewLineUI(r, io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if _, err := ui.ReadGuess(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadGuess err = %v, want context.Canceled", err)
	}
}

func TestSessionInterruptStopsCleanly(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	src := seqSource{"cat"}
	s := NewSession(NewLineUI(r, io.Discard), &src)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run after interrupt = %v, want nil", err)
	}
	if played, _ := s.Stats(); played != 0 {
		t.Fatalf("played = %d, want 0", played)
	}

	// a source that notices the cancellation first also stops cleanly
	list, err := words.NewListSource([]string{"dog"})
	if err != nil {
		t.Fatal(err)
	}
	if err := NewSession(NewLineUI(strings.NewReader(""), io.Discard), list).Run(ctx); err != nil {
		t.Fatalf("Run with cancelled ctx = %v, want nil", err)
	}
}

func TestFeedback(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		out  game.Outcome
		err  error
		want string
	}{
		{"hit", "e", game.Outcome{Letter: 'E', Hit: true, Misses: 2}, nil, "'E' is in the word! 4 misses left"},
		{"miss", "q", game.Outcome{Letter: 'Q', Misses: 5}, nil, "'Q' is not in the word. 1 miss left"},
		{"invalid", "12", game.Outcome{}, game.ErrInvalidGuess, "Please input a letter"},
		{"duplicate", " e ", game.Outcome{}, game.ErrDuplicateGuess, "You have already guessed 'E'"},
		{"over", "e", game.Outcome{}, game.ErrGameOver, "The game is already over"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Feedback(tc.raw, tc.out, tc.err); got != tc.want {
				t.Fatalf("Feedback = %q, want %q", got, tc.want)
			}
		})
	}
}
