package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/hangman/internal/game"
)

// Screen layout rows.
const (
	rowTitle   = 0
	rowArt     = 2
	rowWord    = 10
	rowBoard   = 12
	rowMisses  = 15
	rowMessage = 17
	rowPrompt  = 19
	colLeft    = 2
)

var (
	styleText   = tcell.StyleDefault
	styleTitle  = tcell.StyleDefault.Bold(true)
	styleWord   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWon    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLost   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePrompt = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

// ScreenUI draws on a full terminal screen and reads single keystrokes:
// every key press is one guess, Esc or Ctrl-C quits.
type ScreenUI struct {
	s    tcell.Screen
	last Frame
}

// OpenScreen initialises the real terminal. Close restores it.
func OpenScreen() (*ScreenUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return NewScreenUI(s), nil
}

// NewScreenUI wraps an initialised screen.
func NewScreenUI(s tcell.Screen) *ScreenUI {
	s.SetStyle(styleText)
	return &ScreenUI{s: s}
}

func (u *ScreenUI) Close() { u.s.Fini() }

func (u *ScreenUI) Draw(f Frame) error {
	u.last = f
	u.render()
	return nil
}

func (u *ScreenUI) render() {
	f := u.last
	u.s.Clear()
	u.text(colLeft, rowTitle, styleTitle, "H A N G M A N")
	for i, l := range f.Art {
		u.text(colLeft, rowArt+i, styleText, l)
	}
	if f.Game.Length > 0 {
		u.text(colLeft, rowWord, styleText, "Word:    ")
		u.text(colLeft+9, rowWord, styleWord, spaced(f.Game.Revealed))
		u.text(colLeft, rowBoard, styleText, "Guessed: "+f.Game.Board[0])
		u.text(colLeft+9, rowBoard+1, styleText, f.Game.Board[1])
		u.text(colLeft, rowMisses, styleText, missLine(f))
	}
	msgStyle := styleText
	switch f.Game.Status {
	case game.Won:
		msgStyle = styleWon
	case game.Lost:
		msgStyle = styleLost
	}
	u.text(colLeft, rowMessage, msgStyle, f.Message)
	if f.Prompt != "" {
		u.text(colLeft, rowPrompt, stylePrompt, "> "+f.Prompt)
	}
	u.s.Show()
}

func (u *ScreenUI) ReadGuess(ctx context.Context) (string, error) {
	u.last.Prompt = promptGuess + " (Esc to quit)"
	u.render()
	for {
		ev, err := u.key(ctx)
		if err != nil {
			return "", err
		}
		switch ev.Key() {
		case tcell.KeyRune:
			return string(ev.Rune()), nil
		case tcell.KeyEnter, tcell.KeyBackspace, tcell.KeyBackspace2:
			continue
		}
		// any other key is offered as a guess and rejected by the engine
		return ev.Name(), nil
	}
}

func (u *ScreenUI) Confirm(ctx context.Context, question string) (bool, error) {
	u.last.Prompt = question
	u.render()
	for {
		ev, err := u.key(ctx)
		if err != nil {
			return false, err
		}
		switch ev.Rune() {
		case 'y', 'Y':
			return true, nil
		case 'n', 'N':
			return false, nil
		}
	}
}

// Notify shows msg alone and waits for any key.
func (u *ScreenUI) Notify(ctx context.Context, msg string) error {
	u.last = Frame{Message: msg, Prompt: "Press any key"}
	u.render()
	_, err := u.key(ctx)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// key waits for the next key press. Resizes redraw the last frame; Esc and
// Ctrl-C become ErrQuit.
func (u *ScreenUI) key(ctx context.Context) (*tcell.EventKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = u.s.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		switch ev := u.s.PollEvent().(type) {
		case nil:
			// screen finalised
			return nil, ErrQuit
		case *tcell.EventResize:
			u.s.Sync()
			u.render()
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return nil, ErrQuit
			}
			return ev, nil
		}
	}
}

func (u *ScreenUI) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		u.s.SetContent(x, y, r, nil, style)
		x++
	}
}

func missLine(f Frame) string {
	return fmt.Sprintf("Misses:  %d/%d", f.Game.Misses, f.Game.MaxMisses)
}
