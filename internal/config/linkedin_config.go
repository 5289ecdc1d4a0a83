package config

import "time"

type LinkedInConfig interface {
	GetLinkedInClientID() string
	GetLinkedInClientSecret() string
	GetLinkedInRedirectURI() string
	GetLinkedInPostID() string
	GetLinkedInScopes() []string
	GetLinkedInAuthURL() string
	GetLinkedInTokenURL() string
	GetLinkedInAPIBaseURL() string
	GetLinkedInOIDCIssuer() string
	GetLinkedInEnforceState() bool
	GetHTTPClientTimeout() time.Duration
}

// LinkedIn holds the LinkedIn application registration. Empty auth and token
// URLs fall back to LinkedIn's public endpoints.
type LinkedIn struct {
	ClientID          string        `envconfig:"LINKEDIN_CLIENT_ID"`
	ClientSecret      string        `envconfig:"LINKEDIN_CLIENT_SECRET"`
	RedirectURI       string        `envconfig:"LINKEDIN_REDIRECT_URI" default:"http://localhost:5000/linkedin/callback"`
	PostID            string        `envconfig:"LINKEDIN_POST_ID"`
	Scopes            []string      `envconfig:"LINKEDIN_SCOPES" default:"r_liteprofile,r_organization_social,w_member_social"`
	AuthURL           string        `envconfig:"LINKEDIN_AUTH_URL"`
	TokenURL          string        `envconfig:"LINKEDIN_TOKEN_URL"`
	APIBaseURL        string        `envconfig:"LINKEDIN_API_BASE_URL" default:"https://api.linkedin.com/v2"`
	OIDCIssuer        string        `envconfig:"LINKEDIN_OIDC_ISSUER" default:"https://www.linkedin.com/oauth"`
	EnforceState      bool          `envconfig:"LINKEDIN_ENFORCE_STATE" default:"true"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10s"`
}

var _ LinkedInConfig = LinkedIn{}

func (l LinkedIn) GetLinkedInClientID() string     { return l.ClientID }
func (l LinkedIn) GetLinkedInClientSecret() string { return l.ClientSecret }
func (l LinkedIn) GetLinkedInRedirectURI() string  { return l.RedirectURI }
func (l LinkedIn) GetLinkedInPostID() string       { return l.PostID }
func (l LinkedIn) GetLinkedInScopes() []string     { return l.Scopes }
func (l LinkedIn) GetLinkedInAuthURL() string      { return l.AuthURL }
func (l LinkedIn) GetLinkedInTokenURL() string     { return l.TokenURL }
func (l LinkedIn) GetLinkedInAPIBaseURL() string   { return l.APIBaseURL }
func (l LinkedIn) GetLinkedInOIDCIssuer() string   { return l.OIDCIssuer }
func (l LinkedIn) GetLinkedInEnforceState() bool   { return l.EnforceState }

func (l LinkedIn) GetHTTPClientTimeout() time.Duration {
	if l.HTTPClientTimeout <= 0 {
		return 10 * time.Second
	}
	return l.HTTPClientTimeout
}
