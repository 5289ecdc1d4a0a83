package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/sessions"
	"github.com/pkg/errors"
)

type store struct {
	rdb       *redis.Client
	keyPrefix string
	nowTime   func() time.Time
}

// StoreOption defines a function type to modify the store instance.
type StoreOption func(*store)

// WithNowTime sets the clock used to compute key TTLs (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *store) {
		s.nowTime = nowFunc
	}
}

// NewStore returns a sessions.Repo that keeps each session as a JSON value
// under "<prefix>:sessions:<id>". Keys expire with the session.
func NewStore(rdb *redis.Client, prefix string, options ...StoreOption) sessions.Repo {
	s := &store{
		rdb:       rdb,
		keyPrefix: fmt.Sprintf("%s:sessions", prefix),
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *store) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, sessionID)
}

func (s *store) Upsert(ctx context.Context, session *sessions.Session) error {
	ttl := session.ExpiresAt.Sub(s.nowTime())
	if ttl <= 0 {
		return s.Delete(ctx, session.ID)
	}
	value, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "error marshaling session %q", session.ID)
	}
	if err := s.rdb.Set(ctx, s.key(session.ID), value, ttl).Err(); err != nil {
		return errors.Wrapf(err, "error storing session %q", session.ID)
	}
	return nil
}

func (s *store) Get(ctx context.Context, sessionID string) (*sessions.Session, error) {
	value, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, autherrors.ErrNoSuchSession
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error retrieving session %q", sessionID)
	}
	session := &sessions.Session{}
	if err := json.Unmarshal(value, session); err != nil {
		return nil, errors.Wrapf(err, "error unmarshaling session %q", sessionID)
	}
	return session, nil
}

func (s *store) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return errors.Wrapf(err, "error deleting session %q", sessionID)
	}
	return nil
}
