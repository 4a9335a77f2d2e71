package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

// screenText returns the visible screen as lines.
func screenText(s tcell.SimulationScreen) []string {
	cells, w, h := s.GetContents()
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(c.Runes[0])
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

func typeKeys(s tcell.SimulationScreen, keys string) {
	for _, r := range keys {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func TestScreenSessionWin(t *testing.T) {
	sim := newSimScreen(t)
	ui := NewScreenUI(sim)
	src := seqSource{"go"}
	typeKeys(sim, "g1gon")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s := NewSession(ui, &src)
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := screenText(sim)
	if got := lines[rowWord]; !strings.Contains(got, "G O") {
		t.Fatalf("word row = %q", got)
	}
	if got := lines[rowMessage]; !strings.Contains(got, "You solved the word 'GO'") {
		t.Fatalf("message row = %q", got)
	}
	if got := lines[rowPrompt]; !strings.Contains(got, "Play again?") {
		t.Fatalf("prompt row = %q", got)
	}
	if played, won := s.Stats(); played != 1 || won != 1 {
		t.Fatalf("Stats() = %d, %d", played, won)
	}
}

func TestScreenEscapeQuits(t *testing.T) {
	sim := newSimScreen(t)
	ui := NewScreenUI(sim)
	src := seqSource{"hangman"}
	typeKeys(sim, "z")
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := NewSession(ui, &src).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := screenText(sim)
	if got := lines[rowMisses]; !strings.Contains(got, "Misses:  1/6") {
		t.Fatalf("misses row = %q", got)
	}
	if got := lines[rowArt+2]; !strings.Contains(got, "O") {
		t.Fatalf("head missing from stage 1 art: %q", got)
	}
	if got := lines[rowBoard+1]; !strings.Contains(got, "Z") {
		t.Fatalf("board row = %q", got)
	}
}

func TestScreenReadGuessCancel(t *testing.T) {
	sim := newSimScreen(t)
	ui := NewScreenUI(sim)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if _, err := ui.ReadGuess(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadGuess err = %v, want context.Canceled", err)
	}
}
