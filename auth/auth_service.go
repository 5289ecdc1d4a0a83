package auth

import (
	"context"

	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/sessions"
	"github.com/jrsteele09/linkedin-post-stats/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token string      // Session cookie value
	User  *users.User // The authenticated user
}

// Service drives local registration, login and logout. It owns no state of
// its own: users live in the credential store and logins in the session manager.
type Service struct {
	users    *users.Service
	sessions *sessions.Manager
}

// NewService initializes a new Service with required dependencies.
func NewService(userService *users.Service, sessionManager *sessions.Manager) (*Service, error) {
	if userService == nil {
		return nil, errors.New("[auth.NewService] user service is required")
	}
	if sessionManager == nil {
		return nil, errors.New("[auth.NewService] session manager is required")
	}
	return &Service{
		users:    userService,
		sessions: sessionManager,
	}, nil
}

// Register creates a user. It does not log the user in.
func (s *Service) Register(ctx context.Context, username, password string) (*users.User, error) {
	user, err := s.users.Register(ctx, username, password)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies the credentials and starts a session. Failures are
// ErrValidation for missing fields, or ErrUnauthorized carrying a message
// that says whether the username or the password was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if err := ValidateLoginCredentials(username, password); err != nil {
		return nil, err
	}

	userID, err := s.users.Verify(ctx, username, password)
	switch {
	case autherrors.Is(err, autherrors.ErrUserNotFound):
		return nil, autherrors.NewUserError(autherrors.ErrUnauthorized, MsgIncorrectUsername)
	case autherrors.Is(err, autherrors.ErrWrongPassword):
		return nil, autherrors.NewUserError(autherrors.ErrUnauthorized, MsgIncorrectPassword)
	case err != nil:
		return nil, errors.Wrap(err, "[auth.Login] Verify")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Login] Get")
	}

	token, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Login] Create session")
	}
	log.Info().Str("user", userID).Msg("user logged in")
	return &LoginResult{Token: token, User: user}, nil
}

// Logout ends the session. It succeeds whether or not a session existed.
func (s *Service) Logout(ctx context.Context, token string) {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		log.Err(err).Msg("failed to destroy session on logout")
	}
}

// CurrentUser returns the id of the logged in user, if any.
func (s *Service) CurrentUser(ctx context.Context, token string) (string, bool) {
	return s.sessions.ResolveUser(ctx, token)
}
