package auth

import (
	"strings"

	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
)

// ValidateLoginCredentials rejects a login attempt that is missing either
// field before any lookup happens.
func ValidateLoginCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return autherrors.NewUserError(autherrors.ErrValidation, MsgMissingCredentials)
	}
	return nil
}

// ValidateState checks the shape of an OAuth state parameter.
func ValidateState(state string) error {
	if state == "" {
		return autherrors.ErrInvalidState
	}
	// Should not contain whitespace
	if strings.TrimSpace(state) != state {
		return autherrors.ErrInvalidState
	}
	return nil
}
