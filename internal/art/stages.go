// Package art holds the hangman illustrations, one per miss count.
package art

import (
	"strings"

	"github.com/robalobadob/hangman/internal/game"
)

var stages = [game.MaxMisses + 1]string{
	`
  +---+
  |   |
      |
      |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
      |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
  |   |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
 /|   |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
 /|\  |
      |
      |
=========`,
	`
  +---+
  |   |
  O   |
 /|\  |
 /    |
      |
=========`,
	`
  +---+
  |   |
  O   |
 /|\  |
 / \  |
      |
=========`,
}

// Count is the number of stages, one more than the miss limit.
const Count = len(stages)

// Stage returns the illustration for index i, clamped to the table.
func Stage(i int) string {
	if i < 0 {
		i = 0
	}
	if i >= Count {
		i = Count - 1
	}
	return strings.TrimPrefix(stages[i], "\n")
}

// Lines returns Stage(i) split into lines, for renderers that draw cell by cell.
func Lines(i int) []string {
	return strings.Split(Stage(i), "\n")
}
