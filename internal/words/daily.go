package words

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Daily picks the same word for everyone on a given UTC date. The word is
// chosen by HMAC(key, YYYY-MM-DD), so it cannot be guessed without the key.
type Daily struct {
	words []string
	key   []byte
}

// NewDaily filters list and keeps it in the given order; the order matters
// because it decides which word each date maps to.
func NewDaily(list []string, key []byte) (*Daily, error) {
	w := Filter(list)
	if len(w) == 0 {
		return nil, ErrEmptyList
	}
	return &Daily{words: w, key: key}, nil
}

// Word returns the UTC date of t as YYYY-MM-DD and the word for that date.
func (d *Daily) Word(t time.Time) (date, word string) {
	date = t.UTC().Format(time.DateOnly)
	mac := hmac.New(sha256.New, d.key)
	mac.Write([]byte(date))
	n := binary.BigEndian.Uint64(mac.Sum(nil))
	return date, d.words[n%uint64(len(d.words))]
}
