package server

import (
	"net/http"

	"github.com/jrsteele09/linkedin-post-stats/auth"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/rs/zerolog/log"
)

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// RegisterHandler creates a local account. The caller is not logged in.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := readCredentials(r)
		if err != nil {
			log.Debug().Err(err).Msg("rejected register body")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
			return
		}

		if _, err := s.auth.Register(r.Context(), creds.Username, creds.Password); err != nil {
			status := statusForError(err)
			if status == http.StatusInternalServerError {
				log.Err(err).Msg("registration failed")
			}
			writeJSON(w, status, errorResponse{Error: autherrors.Message(err, msgInternalError)})
			return
		}
		writeJSON(w, http.StatusCreated, messageResponse{Message: auth.MsgRegistered})
	}
}

// LoginHandler verifies credentials and sets the session cookie.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := readCredentials(r)
		if err != nil {
			log.Debug().Err(err).Msg("rejected login body")
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
			return
		}

		result, err := s.auth.Login(r.Context(), creds.Username, creds.Password)
		if err != nil {
			status := statusForError(err)
			if status == http.StatusInternalServerError {
				log.Err(err).Msg("login failed")
			}
			writeJSON(w, status, messageResponse{Message: autherrors.Message(err, msgInternalError)})
			return
		}

		s.SetSessionCookie(w, result.Token)
		writeJSON(w, http.StatusOK, loginResponse{
			Message: auth.MsgLoggedIn,
			User: userResponse{
				ID:       result.User.ID,
				Username: result.User.Username,
			},
		})
	}
}

// LogoutHandler ends the session if there is one. It always succeeds.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.auth.Logout(r.Context(), s.sessionToken(r))
		s.ClearSessionCookie(w)
		writeJSON(w, http.StatusOK, messageResponse{Message: auth.MsgLoggedOut})
	}
}

func (s *Server) ProtectedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("user", userIDFromContext(r.Context())).Msg("protected route accessed")
		writeJSON(w, http.StatusOK, messageResponse{Message: auth.MsgProtectedGranted})
	}
}

func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
