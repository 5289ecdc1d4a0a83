package linkedin

import (
	"net/http"

	"github.com/jrsteele09/linkedin-post-stats/internal/config"
	"golang.org/x/oauth2"
	linkedinoauth "golang.org/x/oauth2/linkedin"
)

const restliProtocolVersion = "2.0.0"

// Option configures the LinkedIn clients in this package.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient sets the client used for every outbound call to LinkedIn.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

func buildOptions(cfg config.LinkedInConfig, opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: cfg.GetHTTPClientTimeout()}
	}
	return o
}

// newOAuthConfig returns the authorization code flow settings. Client
// credentials go in the form body as LinkedIn expects.
func newOAuthConfig(cfg config.LinkedInConfig) *oauth2.Config {
	endpoint := linkedinoauth.Endpoint
	if cfg.GetLinkedInAuthURL() != "" {
		endpoint.AuthURL = cfg.GetLinkedInAuthURL()
	}
	if cfg.GetLinkedInTokenURL() != "" {
		endpoint.TokenURL = cfg.GetLinkedInTokenURL()
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &oauth2.Config{
		ClientID:     cfg.GetLinkedInClientID(),
		ClientSecret: cfg.GetLinkedInClientSecret(),
		Endpoint:     endpoint,
		RedirectURL:  cfg.GetLinkedInRedirectURI(),
		Scopes:       cfg.GetLinkedInScopes(),
	}
}

// bearerClient wraps base so every request carries accessToken.
func bearerClient(base *http.Client, accessToken string) *http.Client {
	return &http.Client{
		Timeout: base.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: accessToken,
				TokenType:   "Bearer",
			}),
			Base: base.Transport,
		},
	}
}
