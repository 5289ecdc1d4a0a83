package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() []byte
	GetMaxSessionAge() time.Duration
	GetSessionCookieName() string
}

type Security struct {
	SessionSecret     string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionMaxAge     time.Duration `envconfig:"SESSION_MAX_AGE" default:"24h"`
	SessionCookieName string        `envconfig:"SESSION_COOKIE_NAME" default:"sid"`
}

var _ SecurityConfig = Security{}

func (s Security) GetSessionSecret() []byte {
	return []byte(s.SessionSecret)
}

func (s Security) GetMaxSessionAge() time.Duration {
	if s.SessionMaxAge <= 0 {
		return 24 * time.Hour
	}
	return s.SessionMaxAge
}

func (s Security) GetSessionCookieName() string {
	if s.SessionCookieName == "" {
		return "sid"
	}
	return s.SessionCookieName
}
