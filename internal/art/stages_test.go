package art

import (
	"testing"

	"github.com/robalobadob/hangman/internal/game"
)

func TestStageTable(t *testing.T) {
	if Count != game.MaxMisses+1 {
		t.Fatalf("Count = %d, want %d", Count, game.MaxMisses+1)
	}
	seen := map[string]int{}
	for i := 0; i < Count; i++ {
		s := Stage(i)
		if prev, dup := seen[s]; dup {
			t.Fatalf("stage %d duplicates stage %d", i, prev)
		}
		seen[s] = i
		if n := len(Lines(i)); n != 7 {
			t.Fatalf("stage %d has %d lines, want 7", i, n)
		}
	}
}

func TestStageClamps(t *testing.T) {
	if Stage(-3) != Stage(0) {
		t.Fatal("negative index not clamped to first stage")
	}
	if Stage(99) != Stage(Count-1) {
		t.Fatal("large index not clamped to last stage")
	}
}
