package game

import "strings"

// RevealedWord returns the secret with unguessed letters replaced by MaskRune.
func (e *Engine) RevealedWord() string {
	var sb strings.Builder
	sb.Grow(len(e.secret))
	for _, c := range e.secret {
		if e.guessed[letterIndex(c)] {
			sb.WriteByte(c)
		} else {
			sb.WriteByte(MaskRune)
		}
	}
	return sb.String()
}

// Board returns the guessed letters in alphabet order.
func (e *Engine) Board() Board {
	var b Board
	for i, ok := range e.guessed {
		if ok {
			b[i] = rune('A' + i)
		} else {
			b[i] = blankSlot
		}
	}
	return b
}

// Guessed returns the guessed letters in alphabet order, without blanks.
func (e *Engine) Guessed() string {
	var sb strings.Builder
	for i, ok := range e.guessed {
		if ok {
			sb.WriteByte(byte('A' + i))
		}
	}
	return sb.String()
}

// Stage selects the illustration to draw, 0 through MaxMisses.
func (e *Engine) Stage() int { return e.misses }

func (e *Engine) Misses() int { return e.misses }

func (e *Engine) MissesLeft() int { return e.maxMisses - e.misses }

func (e *Engine) Status() Status { return e.status }

// Secret returns the word being guessed. Renderers should only show it once
// Status is terminal.
func (e *Engine) Secret() string { return string(e.secret) }

// Snapshot copies the current view state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Revealed:   e.RevealedWord(),
		Length:     len(e.secret),
		Board:      e.Board().Rows(),
		Guessed:    e.Guessed(),
		Misses:     e.misses,
		MissesLeft: e.MissesLeft(),
		MaxMisses:  e.maxMisses,
		Stage:      e.Stage(),
		Status:     e.status,
	}
	if e.status.Terminal() {
		s.Secret = e.Secret()
	}
	return s
}
