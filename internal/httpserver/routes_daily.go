// internal/httpserver/routes_daily.go
//
// HTTP route for the "word of the day".
//   - POST /daily/new → start a game whose secret is the same for everyone
//     on the current UTC date.
//
// Word selection is HMAC(dailyKey, YYYY-MM-DD) over the daily list, so it
// cannot be predicted without the server secret.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	date, word := s.daily.Word(s.now())
	s.startGame(w, r, word, date)
}
