package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

const banner = "======================="

// LineUI plays over plain text streams, one guess per line. It works on
// any terminal and with piped input.
type LineUI struct {
	out io.Writer
	in  *bufio.Scanner

	once  sync.Once
	lines chan string
	err   error // scanner error, set before lines is closed
}

func NewLineUI(r io.Reader, w io.Writer) *LineUI {
	return &LineUI{out: w, in: bufio.NewScanner(r), lines: make(chan string)}
}

func (u *LineUI) Draw(f Frame) error {
	var sb strings.Builder
	sb.WriteString(banner + "\n")
	for _, l := range f.Art {
		sb.WriteString(l + "\n")
	}
	fmt.Fprintf(&sb, "\nWord:    %s\n", spaced(f.Game.Revealed))
	fmt.Fprintf(&sb, "Guessed: %s\n         %s\n", f.Game.Board[0], f.Game.Board[1])
	fmt.Fprintf(&sb, "Misses:  %d/%d\n", f.Game.Misses, f.Game.MaxMisses)
	if f.Message != "" {
		sb.WriteString("\n" + f.Message + "\n")
	}
	_, err := io.WriteString(u.out, sb.String())
	return err
}

func (u *LineUI) ReadGuess(ctx context.Context) (string, error) {
	u.prompt(promptGuess)
	return u.readLine(ctx)
}

// Confirm asks until it gets a yes or no answer.
func (u *LineUI) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		u.prompt(question)
		line, err := u.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(u.out, "Please answer y or n")
	}
}

func (u *LineUI) Notify(_ context.Context, msg string) error {
	_, err := fmt.Fprintln(u.out, msg)
	return err
}

func (u *LineUI) prompt(msg string) {
	fmt.Fprintf(u.out, "> %s: ", msg)
}

// readLine waits for the next input line or ctx. The scanner runs in its
// own goroutine so a blocked read never holds up cancellation.
func (u *LineUI) readLine(ctx context.Context) (string, error) {
	u.once.Do(func() { go u.pump() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-u.lines:
		if !ok {
			if u.err != nil {
				return "", fmt.Errorf("read input: %w", u.err)
			}
			return "", ErrQuit
		}
		return line, nil
	}
}

func (u *LineUI) pump() {
	for u.in.Scan() {
		u.lines <- u.in.Text()
	}
	u.err = u.in.Err()
	close(u.lines)
}
