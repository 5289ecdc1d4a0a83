package server

import (
	"encoding/json"
	"net/http"

	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	msgInternalError      = "Internal server error"
	msgInvalidBody        = "Invalid request body"
	msgInvalidState       = "Invalid state parameter"
	msgLinkedInOAuthError = "LinkedIn OAuth failed"
	msgNotAuthorized      = "Not Authorized"
	msgTokenRejected      = "LinkedIn access token was rejected"
	msgStatsFailed        = "Failed to fetch LinkedIn stats"
	msgProfileFailed      = "Failed to fetch LinkedIn profile"
	msgDisconnected       = "LinkedIn account disconnected"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to write response body")
	}
}

// statusForError maps an error class onto an HTTP status code.
func statusForError(err error) int {
	switch {
	case autherrors.Is(err, autherrors.ErrValidation),
		autherrors.Is(err, autherrors.ErrInvalidState):
		return http.StatusBadRequest
	case autherrors.Is(err, autherrors.ErrDuplicateUsername):
		return http.StatusConflict
	case autherrors.Is(err, autherrors.ErrUnauthorized),
		autherrors.Is(err, autherrors.ErrUnauthenticated),
		autherrors.Is(err, autherrors.ErrUpstreamUnauthorized),
		autherrors.Is(err, autherrors.ErrNoSuchSession),
		autherrors.Is(err, autherrors.ErrSessionExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// relayErrorBody is the body for a failed LinkedIn relay call. Upstream
// detail is logged by the linkedin package and never returned.
func relayErrorBody(err error, fallback string) interface{} {
	switch {
	case autherrors.Is(err, autherrors.ErrUnauthenticated):
		return messageResponse{Message: msgNotAuthorized}
	case autherrors.Is(err, autherrors.ErrUpstreamUnauthorized):
		return errorResponse{Error: msgTokenRejected}
	default:
		return errorResponse{Error: fallback}
	}
}
