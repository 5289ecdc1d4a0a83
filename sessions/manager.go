package sessions

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DefaultMaxAge = 24 * time.Hour

// Manager issues and resolves login sessions. Every mutation is written
// through to the Repo, so a Manager can be shared by all request goroutines
// and by several processes pointing at the same store.
type Manager struct {
	repo    Repo
	signer  *tokenSigner
	maxAge  time.Duration
	nowTime func() time.Time
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the clock used for expiry checks (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithMaxAge sets how long a session lives after it is created.
func WithMaxAge(maxAge time.Duration) ManagerOption {
	return func(m *Manager) {
		m.maxAge = maxAge
	}
}

func NewManager(repo Repo, secret []byte, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[sessions.NewManager] session repo is required")
	}
	if len(secret) == 0 {
		return nil, errors.New("[sessions.NewManager] session secret is required")
	}
	m := &Manager{
		repo:    repo,
		maxAge:  DefaultMaxAge,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	m.signer = &tokenSigner{
		secret:  secret,
		nowTime: m.nowTime,
	}
	return m, nil
}

// MaxAge returns the lifetime given to new sessions.
func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// Create starts a session for userID and returns the cookie token for it.
func (m *Manager) Create(ctx context.Context, userID string) (string, error) {
	now := m.nowTime().UTC()
	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.maxAge),
	}
	if err := m.repo.Upsert(ctx, session); err != nil {
		return "", errors.Wrap(err, "[sessions.Create] Upsert")
	}
	token, err := m.signer.sign(session.ID, now, session.ExpiresAt)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ResolveUser returns the user id of a live session.
func (m *Manager) ResolveUser(ctx context.Context, token string) (string, bool) {
	session, err := m.load(ctx, token)
	if err != nil {
		return "", false
	}
	return session.UserID, true
}

// AttachLinkedInToken stores a LinkedIn access token on the session. A zero
// expiry means LinkedIn did not report one.
func (m *Manager) AttachLinkedInToken(ctx context.Context, token, accessToken string, expiry time.Time) error {
	return m.update(ctx, token, func(s *Session) {
		s.LinkedInAccessToken = accessToken
		s.LinkedInTokenExpiry = expiry.UTC()
	})
}

// GetLinkedInToken returns the LinkedIn access token attached to the session.
func (m *Manager) GetLinkedInToken(ctx context.Context, token string) (string, bool) {
	session, err := m.load(ctx, token)
	if err != nil {
		return "", false
	}
	if !session.HasLinkedInToken(m.nowTime()) {
		return "", false
	}
	return session.LinkedInAccessToken, true
}

// DetachLinkedInToken forgets the LinkedIn token, leaving the login intact.
func (m *Manager) DetachLinkedInToken(ctx context.Context, token string) error {
	return m.update(ctx, token, func(s *Session) {
		s.LinkedInAccessToken = ""
		s.LinkedInTokenExpiry = time.Time{}
	})
}

// SetOAuthState remembers the hash of the state nonce sent to LinkedIn.
func (m *Manager) SetOAuthState(ctx context.Context, token, state string) error {
	return m.update(ctx, token, func(s *Session) {
		s.OAuthStateHash = hashState(state)
	})
}

// ConsumeOAuthState checks state against the remembered nonce. The stored
// nonce is cleared whatever the outcome so it can be used only once.
func (m *Manager) ConsumeOAuthState(ctx context.Context, token, state string) error {
	session, err := m.load(ctx, token)
	if err != nil {
		return err
	}
	expected := session.OAuthStateHash
	if expected != "" {
		session.OAuthStateHash = ""
		if err := m.repo.Upsert(ctx, session); err != nil {
			return errors.Wrap(err, "[sessions.ConsumeOAuthState] Upsert")
		}
	}
	if expected == "" || state == "" {
		return autherrors.ErrInvalidState
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(hashState(state))) != 1 {
		return autherrors.ErrInvalidState
	}
	return nil
}

// Destroy removes the session. A token that cannot be read is ignored.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	sessionID, _ := m.signer.parse(token)
	if sessionID == "" {
		return nil
	}
	if err := m.repo.Delete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "[sessions.Destroy] Delete")
	}
	return nil
}

// update rewrites the whole record. Concurrent updates to one session are
// last-writer-wins.
func (m *Manager) update(ctx context.Context, token string, mutate func(*Session)) error {
	session, err := m.load(ctx, token)
	if err != nil {
		return err
	}
	mutate(session)
	if err := m.repo.Upsert(ctx, session); err != nil {
		return errors.Wrap(err, "[sessions.update] Upsert")
	}
	return nil
}

// load resolves token to a live session. Expired sessions are deleted on sight.
func (m *Manager) load(ctx context.Context, token string) (*Session, error) {
	sessionID, err := m.signer.parse(token)
	if autherrors.Is(err, autherrors.ErrSessionExpired) {
		m.remove(ctx, sessionID)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	session, err := m.repo.Get(ctx, sessionID)
	if err != nil {
		if !autherrors.Is(err, autherrors.ErrNoSuchSession) {
			log.Err(err).Str("session", sessionID).Msg("session lookup failed")
		}
		return nil, autherrors.ErrNoSuchSession
	}
	if session.Expired(m.nowTime()) {
		m.remove(ctx, sessionID)
		return nil, autherrors.ErrSessionExpired
	}
	return session, nil
}

func (m *Manager) remove(ctx context.Context, sessionID string) {
	if err := m.repo.Delete(ctx, sessionID); err != nil {
		log.Err(err).Str("session", sessionID).Msg("failed to remove expired session")
	}
}

func hashState(state string) string {
	sum := sha256.Sum256([]byte(state))
	return hex.EncodeToString(sum[:])
}
