package server

import (
	"net/http"

	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/linkedin"
	"github.com/rs/zerolog/log"
)

type linkedInStatusResponse struct {
	LinkedInAuthenticated bool `json:"linkedInAuthenticated"`
}

// LinkedInAuthHandler sends the browser to LinkedIn's consent screen.
func (s *Server) LinkedInAuthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectURL, err := s.connector.Initiate(r.Context(), sessionTokenFromContext(r.Context()))
		if err != nil {
			status := statusForError(err)
			if status == http.StatusInternalServerError {
				log.Err(err).Msg("failed to start linkedin authorization")
				writeJSON(w, status, errorResponse{Error: msgInternalError})
				return
			}
			writeJSON(w, status, messageResponse{Message: msgNotAuthorized})
			return
		}
		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// LinkedInCallbackHandler receives the authorization code from LinkedIn. The
// browser is the caller, so failures are plain text.
func (s *Server) LinkedInCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		redirectURL, err := s.connector.HandleCallback(r.Context(), s.sessionToken(r), linkedin.CallbackParams{
			Code:             q.Get("code"),
			State:            q.Get("state"),
			Error:            q.Get("error"),
			ErrorDescription: q.Get("error_description"),
		})
		switch {
		case err == nil:
			http.Redirect(w, r, redirectURL, http.StatusFound)
		case autherrors.Is(err, autherrors.ErrUnauthorized):
			http.Error(w, msgNotAuthorized, http.StatusUnauthorized)
		case autherrors.Is(err, autherrors.ErrInvalidState):
			http.Error(w, msgInvalidState, http.StatusBadRequest)
		default:
			log.Err(err).Msg("linkedin callback failed")
			http.Error(w, msgLinkedInOAuthError, http.StatusInternalServerError)
		}
	}
}

func (s *Server) IsLinkedInAuthenticatedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connected, err := s.connector.IsConnected(r.Context(), sessionTokenFromContext(r.Context()))
		if err != nil {
			writeJSON(w, statusForError(err), messageResponse{Message: msgNotAuthorized})
			return
		}
		writeJSON(w, http.StatusOK, linkedInStatusResponse{LinkedInAuthenticated: connected})
	}
}

func (s *Server) LinkedInStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.stats.GetStats(r.Context(), sessionTokenFromContext(r.Context()))
		if err != nil {
			writeJSON(w, statusForError(err), relayErrorBody(err, msgStatsFailed))
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// LinkedInDisconnectHandler forgets the LinkedIn token so the member can
// reconnect after LinkedIn has rejected it.
func (s *Server) LinkedInDisconnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.connector.Disconnect(r.Context(), sessionTokenFromContext(r.Context())); err != nil {
			status := statusForError(err)
			if status == http.StatusInternalServerError {
				log.Err(err).Msg("failed to disconnect linkedin")
				writeJSON(w, status, errorResponse{Error: msgInternalError})
				return
			}
			writeJSON(w, status, messageResponse{Message: msgNotAuthorized})
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msgDisconnected})
	}
}

func (s *Server) LinkedInProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.profile.GetProfile(r.Context(), sessionTokenFromContext(r.Context()))
		if err != nil {
			writeJSON(w, statusForError(err), relayErrorBody(err, msgProfileFailed))
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}
