package server

import (
	"net/http"
)

// RequireBearer rejects requests whose Authorization header does not carry
// the process credential. A missing credential is answered with 401 and a
// wrong one with 403, so the caller can tell "log in" from "log in again".
func (s *Server) RequireBearer() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if err := s.guard.Authorize(r.Header.Get("Authorization")); err != nil {
				writeError(w, r, err)
				return
			}
			next(w, r)
		}
	}
}
