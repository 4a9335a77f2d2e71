// internal/config/config.go
//
// Runtime configuration, read from the environment after an optional .env
// file. Every setting has a default so the game runs with no setup.
//
// Environment variables:
//   LOG_LEVEL       zerolog level (default info)
//   LOG_FILE        log destination (default stderr, or discarded in screen UI)
//   HANGMAN_UI      screen | line (default screen)
//   WORDS_FILE      dictionary file, one word per line
//   WORDS_DB        SQLite dictionary, takes precedence over WORDS_FILE for
//                   both random and daily words
//   PORT            HTTP port for `hangman serve` (default 5175)
//   CLIENT_ORIGIN   CORS origin (default http://localhost:5173)
//   HANGMAN_SECRET  master secret for game tokens and the daily word; empty
//                   means the development default
//   TOKEN_TTL       game token lifetime (default 24h)
//   GAME_IDLE_TTL   idle server games are dropped after this (default 30m)

package config

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/hkdf"
)

// UI modes for the terminal game.
const (
	UIScreen = "screen"
	UILine   = "line"
)

const devSecret = "dev_secret_change_me"

type Config struct {
	LogLevel zerolog.Level
	LogFile  string
	UI       string

	WordsFile string
	WordsDB   string

	Port         string
	ClientOrigin string
	TokenTTL     time.Duration
	IdleTTL      time.Duration

	// Keys derived from HANGMAN_SECRET.
	TokenKey []byte
	DailyKey []byte
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	var c Config

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return c, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	c.LogLevel = lvl
	c.LogFile = os.Getenv("LOG_FILE")

	c.UI = getEnv("HANGMAN_UI", UIScreen)
	if c.UI != UIScreen && c.UI != UILine {
		return c, fmt.Errorf("HANGMAN_UI: unknown mode %q (want %s or %s)", c.UI, UIScreen, UILine)
	}

	c.WordsFile = os.Getenv("WORDS_FILE")
	c.WordsDB = os.Getenv("WORDS_DB")
	c.Port = getEnv("PORT", "5175")
	c.ClientOrigin = getEnv("CLIENT_ORIGIN", "http://localhost:5173")

	if c.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return c, err
	}
	if c.IdleTTL, err = getDuration("GAME_IDLE_TTL", 30*time.Minute); err != nil {
		return c, err
	}

	secret := []byte(getEnv("HANGMAN_SECRET", devSecret))
	if c.TokenKey, err = deriveKey(secret, "hangman game token"); err != nil {
		return c, err
	}
	if c.DailyKey, err = deriveKey(secret, "hangman daily word"); err != nil {
		return c, err
	}
	return c, nil
}

// DevSecret reports whether HANGMAN_SECRET was left at its built-in value.
func DevSecret() bool {
	return getEnv("HANGMAN_SECRET", devSecret) == devSecret
}

// deriveKey expands secret into a 32-byte key bound to purpose.
func deriveKey(secret []byte, purpose string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(purpose)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}

func getDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", k, d)
	}
	return d, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
