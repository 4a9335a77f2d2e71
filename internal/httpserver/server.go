// internal/httpserver/server.go
//
// HTTP server wiring for Hangman.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily endpoint: POST /daily/new (mounted when a daily list is set).
//
// Notes:
//   - Every game is owned by whoever holds its token; /game/new hands the
//     token out and every later call must present it as a Bearer token.
//   - The secret word is never sent while a game is running.
//   - Rejected guesses (not a single letter, repeated letter) are answered 200 with
//     accepted=false; guesses after the game ended are 409.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/art"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// maxGuessBody caps a guess request; a real one is a few dozen bytes.
const maxGuessBody = 1 << 10

// Options configures a Server.
type Options struct {
	Words        words.Source
	Daily        *words.Daily // nil disables /daily
	TokenKey     []byte
	TokenTTL     time.Duration
	ClientOrigin string
}

// Server bundles router, game store and word supply.
type Server struct {
	r      *chi.Mux
	store  store.Store
	words  words.Source
	daily  *words.Daily
	tokens tokens
	now    func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		words:  opts.Words,
		daily:  opts.Daily,
		tokens: tokens{key: opts.TokenKey, ttl: opts.TokenTTL, now: time.Now},
		now:    time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hangman","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/{id}","POST /daily/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		remaining := -1
		if c, ok := s.words.(interface{ Remaining() int }); ok {
			remaining = c.Remaining()
		}
		writeJSON(w, http.StatusOK, map[string]int{"remaining": remaining})
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/game/{id}", s.handleState)

	if s.daily != nil {
		s.mountDaily(s.r)
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves on addr until ctx is cancelled, pruning games idle for longer
// than idle in the background.
func (s *Server) Run(ctx context.Context, addr string, idle time.Duration) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go s.pruneLoop(ctx, idle)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	log.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	}
}

func (s *Server) pruneLoop(ctx context.Context, idle time.Duration) {
	every := idle / 2
	if every < time.Second {
		every = time.Second
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Prune(ctx, idle); n > 0 {
				log.Info().Int("games", n).Msg("pruned idle games")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single browser origin to call the API.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ GAME ---------------------------------------

type newGameRes struct {
	GameID    string        `json:"gameId"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Date      string        `json:"date,omitempty"` // daily games only
	State     game.Snapshot `json:"state"`
	Art       string        `json:"art"`
}

type stateRes struct {
	GameID string        `json:"gameId"`
	State  game.Snapshot `json:"state"`
	Art    string        `json:"art"`
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Accepted bool          `json:"accepted"`
	Reason   string        `json:"reason,omitempty"` // invalid_guess | duplicate_guess
	Letter   string        `json:"letter,omitempty"`
	Hit      bool          `json:"hit"`
	Revealed int           `json:"revealed"`
	State    game.Snapshot `json:"state"`
	Art      string        `json:"art"`
}

// handleNewGame draws a word and starts a game owned by the returned token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	word, err := s.words.Next(r.Context())
	if errors.Is(err, words.ErrExhausted) {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("next word")
		writeError(w, http.StatusInternalServerError, "word_source_failed")
		return
	}
	s.startGame(w, r, word, "")
}

// startGame creates a game for word and answers with its ID and token.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, word, date string) {
	eng, err := game.New(word)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("unusable secret from word source")
		writeError(w, http.StatusInternalServerError, "bad_word")
		return
	}
	snap, stage := eng.Snapshot(), eng.Stage()
	id, err := s.store.Create(r.Context(), eng)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tokens.sign(id)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	hlog.FromRequest(r).Info().Str("gameId", id).Int("length", len(word)).Bool("daily", date != "").Msg("game started")

	writeJSON(w, http.StatusOK, newGameRes{
		GameID:    id,
		Token:     tok,
		ExpiresAt: exp,
		Date:      date,
		State:     snap,
		Art:       art.Stage(stage),
	})
}

// handleGuess applies one guess to a game the caller owns.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	r.Body = http.MaxBytesReader(w, r.Body, maxGuessBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large")
			return
		}
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !s.authorize(w, r, req.GameID) {
		return
	}

	var res guessRes
	var over bool
	err := s.store.With(r.Context(), req.GameID, func(e *game.Engine) error {
		out, gerr := e.SubmitGuess(req.Guess)
		switch {
		case gerr == nil:
			res.Accepted = true
			res.Letter = string(out.Letter)
			res.Hit = out.Hit
			res.Revealed = out.Revealed
		case errors.Is(gerr, game.ErrInvalidGuess):
			res.Reason = "invalid_guess"
		case errors.Is(gerr, game.ErrDuplicateGuess):
			res.Reason = "duplicate_guess"
		case errors.Is(gerr, game.ErrGameOver):
			over = true
		default:
			return gerr
		}
		res.State = e.Snapshot()
		res.Art = art.Stage(e.Stage())
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("gameId", req.GameID).Msg("guess")
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}
	if over {
		writeError(w, http.StatusConflict, "game_over")
		return
	}
	if res.State.Status.Terminal() {
		hlog.FromRequest(r).Info().Str("gameId", req.GameID).Str("status", res.State.Status.String()).
			Int("misses", res.State.Misses).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, res)
}

// handleState returns the current view of a game the caller owns.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.authorize(w, r, id) {
		return
	}
	res := stateRes{GameID: id}
	err := s.store.With(r.Context(), id, func(e *game.Engine) error {
		res.State = e.Snapshot()
		res.Art = art.Stage(e.Stage())
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "state_failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// authorize checks the Bearer token belongs to gameID, answering 401 if not.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, gameID string) bool {
	tok := bearer(r)
	if tok == "" {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return false
	}
	if err := s.tokens.verify(tok, gameID); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("gameId", gameID).Msg("token rejected")
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return false
	}
	return true
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
