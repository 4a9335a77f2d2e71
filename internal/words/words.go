// internal/words/words.go
//
// Secret word supply for the game engine.
//
// Responsibilities:
//   - Load a dictionary from WORDS_FILE or fall back to the embedded default.
//   - Keep only words made of letters A–Z; lines with apostrophes, digits or
//     other punctuation are skipped, never stripped into new words.
//   - Hand out words in random order without repeats (Source.Next), and
//     report ErrExhausted once every word has been used.
//
// Words are returned uppercase so the engine receives them ready to use.

package words

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/hangman/assets"
)

var (
	ErrExhausted = errors.New("words: dictionary exhausted")
	ErrEmptyList = errors.New("words: no usable words")
)

// Source supplies one secret word per game.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// ListSource serves an in-memory word list in random order, each word once.
// It is safe for concurrent use.
type ListSource struct {
	mu    sync.Mutex
	words []string
	order []int // shuffled indexes into words, consumed from the front
}

// NewListSource filters list and prepares a random serving order.
// It returns ErrEmptyList if nothing usable remains after filtering.
func NewListSource(list []string) (*ListSource, error) {
	w := Filter(list)
	if len(w) == 0 {
		return nil, ErrEmptyList
	}
	order := make([]int, len(w))
	for i := range order {
		order[i] = i
	}
	if err := shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] }); err != nil {
		return nil, err
	}
	return &ListSource{words: w, order: order}, nil
}

// Next returns the next unused word.
func (s *ListSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return "", ErrExhausted
	}
	w := s.words[s.order[0]]
	s.order = s.order[1:]
	return w, nil
}

// Words returns the filtered list in load order.
func (s *ListSource) Words() []string { return s.words }

// Remaining reports how many words Next can still return.
func (s *ListSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Load reads the dictionary at path, or the embedded default when path is
// empty. The result is already filtered.
func Load(path string) ([]string, error) {
	var (
		raw []string
		err error
	)
	if path == "" {
		raw, err = assets.DefaultWords()
	} else {
		raw, err = ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	out := Filter(raw)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrEmptyList, path)
	}
	return out, nil
}

// ReadFile returns the non-blank, non-comment lines of a word file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// Clean trims and upper-cases w and reports whether it is a usable secret.
func Clean(w string) (string, bool) {
	w = strings.ToUpper(strings.TrimSpace(w))
	if w == "" {
		return "", false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return "", false
		}
	}
	return w, true
}

// Filter cleans every entry, dropping unusable words and duplicates.
func Filter(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, raw := range list {
		w, ok := Clean(raw)
		if !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// shuffle is a Fisher–Yates shuffle driven by crypto/rand.
func shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("shuffle: %w", err)
		}
		swap(i, int(j.Int64()))
	}
	return nil
}
