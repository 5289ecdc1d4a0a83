package errors

import "errors"

// Error classes shared by the credential store, session manager, auth state
// machine and the LinkedIn relay. The HTTP layer maps them to status codes.
var (
	// Validation errors
	ErrValidation        = errors.New("validation failure")
	ErrDuplicateUsername = errors.New("username already exists")

	// Credential errors
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")

	// Session errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNoSuchSession  = errors.New("no such session")
	ErrSessionExpired = errors.New("session expired")

	// LinkedIn errors
	ErrUnauthenticated      = errors.New("linkedin account not connected")
	ErrInvalidState         = errors.New("invalid oauth state")
	ErrOAuthExchangeFailed  = errors.New("linkedin oauth exchange failed")
	ErrUpstreamUnauthorized = errors.New("linkedin rejected the access token")
	ErrUpstream             = errors.New("linkedin upstream failure")
)

// UserError carries a message that is safe to show to the caller alongside
// the error class it belongs to.
type UserError struct {
	Class   error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Class
}

// NewUserError returns a UserError of the given class.
func NewUserError(class error, message string) error {
	return &UserError{Class: class, Message: message}
}

// Message returns the caller-facing message of err if it carries one, or
// fallback otherwise.
func Message(err error, fallback string) string {
	var ue *UserError
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return fallback
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
