package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/pkg/errors"
)

// bcrypt only hashes the first 72 bytes and rejects anything longer.
const maxPasswordBytes = 72

// Service is the credential store: it registers users and verifies their
// passwords. There are no update or delete operations.
type Service struct {
	repo    UserRepo
	nowTime func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(repo UserRepo, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[users.NewService] user repo is required")
	}
	s := &Service{
		repo:    repo,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Register hashes rawPassword and stores a new user. It fails with
// ErrValidation for an empty username or for a password that is empty or
// longer than bcrypt accepts, and with ErrDuplicateUsername when the
// username is taken.
func (s *Service) Register(ctx context.Context, username, rawPassword string) (*User, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, autherrors.NewUserError(autherrors.ErrValidation, "Username is required.")
	}
	if rawPassword == "" {
		return nil, autherrors.NewUserError(autherrors.ErrValidation, "Password is required.")
	}
	if len(rawPassword) > maxPasswordBytes {
		return nil, autherrors.NewUserError(autherrors.ErrValidation, "Password is too long.")
	}

	hash, err := HashPassword(rawPassword)
	if err != nil {
		return nil, errors.Wrap(err, "[users.Register] HashPassword")
	}

	user := &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		DateJoined:   s.nowTime().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if autherrors.Is(err, autherrors.ErrDuplicateUsername) {
			return nil, autherrors.NewUserError(autherrors.ErrDuplicateUsername, "Username already exists.")
		}
		return nil, errors.Wrapf(err, "[users.Register] error storing user %q", username)
	}
	return user, nil
}

// Verify checks rawPassword against the stored hash and returns the user id.
func (s *Service) Verify(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.repo.GetByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		return "", errors.Wrapf(err, "[users.Verify] GetByUsername %q", username)
	}
	if !CheckPasswordHash(rawPassword, user.PasswordHash) {
		return "", autherrors.ErrWrongPassword
	}
	return user.ID, nil
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "[users.Get] GetByID %q", id)
	}
	return user, nil
}
