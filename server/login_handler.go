package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// LoginHandler exchanges the fixed username/password pair for the bearer credential (POST /login)
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		credential, err := s.issuer.Authenticate(req.Username, req.Password)
		if err != nil {
			// Don't reveal which of username or password was wrong
			log.Warn().Str("username", req.Username).Msg("login failed")
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Message: "login successful",
			Token:   credential,
		})
	}
}
