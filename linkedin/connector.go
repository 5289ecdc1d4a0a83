package linkedin

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/jrsteele09/linkedin-post-stats/auth"
	"github.com/jrsteele09/linkedin-post-stats/internal/config"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const stateLength = 32

// CallbackParams are the query parameters LinkedIn sends to the redirect URI.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// Connector links a logged in session to a LinkedIn member through the
// OAuth 2.0 authorization code flow.
type Connector struct {
	oauthConfig   *oauth2.Config
	sessions      *sessions.Manager
	httpClient    *http.Client
	clientBaseURL string
	enforceState  bool
}

func NewConnector(cfg config.LinkedInConfig, clientBaseURL string, manager *sessions.Manager, opts ...Option) (*Connector, error) {
	if manager == nil {
		return nil, errors.New("[linkedin.NewConnector] session manager is required")
	}
	o := buildOptions(cfg, opts)
	return &Connector{
		oauthConfig:   newOAuthConfig(cfg),
		sessions:      manager,
		httpClient:    o.httpClient,
		clientBaseURL: clientBaseURL,
		enforceState:  cfg.GetLinkedInEnforceState(),
	}, nil
}

// Initiate returns the LinkedIn authorization URL for the session's user.
func (c *Connector) Initiate(ctx context.Context, token string) (string, error) {
	if _, ok := c.sessions.ResolveUser(ctx, token); !ok {
		return "", autherrors.ErrUnauthorized
	}
	state, err := generateState()
	if err != nil {
		return "", errors.Wrap(err, "[linkedin.Initiate] generateState")
	}
	if err := c.sessions.SetOAuthState(ctx, token, state); err != nil {
		return "", errors.Wrap(err, "[linkedin.Initiate] SetOAuthState")
	}
	return c.oauthConfig.AuthCodeURL(state), nil
}

// HandleCallback exchanges the authorization code for an access token and
// attaches it to the session. On success it returns where to send the browser.
func (c *Connector) HandleCallback(ctx context.Context, token string, params CallbackParams) (string, error) {
	if _, ok := c.sessions.ResolveUser(ctx, token); !ok {
		return "", autherrors.ErrUnauthorized
	}

	if c.enforceState {
		if err := auth.ValidateState(params.State); err != nil {
			return "", err
		}
		if err := c.sessions.ConsumeOAuthState(ctx, token, params.State); err != nil {
			switch {
			case autherrors.Is(err, autherrors.ErrInvalidState):
				return "", err
			case autherrors.Is(err, autherrors.ErrNoSuchSession),
				autherrors.Is(err, autherrors.ErrSessionExpired):
				return "", autherrors.ErrUnauthorized
			}
			return "", errors.Wrap(err, "[linkedin.HandleCallback] ConsumeOAuthState")
		}
	}

	if params.Error != "" {
		log.Warn().Str("error", params.Error).Str("description", params.ErrorDescription).Msg("linkedin denied authorization")
		return "", autherrors.ErrOAuthExchangeFailed
	}
	if params.Code == "" {
		return "", autherrors.ErrOAuthExchangeFailed
	}

	exchangeCtx := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	oauthToken, err := c.oauthConfig.Exchange(exchangeCtx, params.Code)
	if err != nil {
		log.Err(err).Msg("linkedin token exchange failed")
		return "", errors.Wrapf(autherrors.ErrOAuthExchangeFailed, "[linkedin.HandleCallback] %v", err)
	}

	if err := c.sessions.AttachLinkedInToken(ctx, token, oauthToken.AccessToken, oauthToken.Expiry); err != nil {
		return "", errors.Wrap(err, "[linkedin.HandleCallback] AttachLinkedInToken")
	}
	return c.clientBaseURL + "/?isLoggedIn=true&linkedInAuthenticated=true", nil
}

// IsConnected reports whether a LinkedIn token is attached to the session.
// The token is not checked against LinkedIn.
func (c *Connector) IsConnected(ctx context.Context, token string) (bool, error) {
	if _, ok := c.sessions.ResolveUser(ctx, token); !ok {
		return false, autherrors.ErrUnauthorized
	}
	_, ok := c.sessions.GetLinkedInToken(ctx, token)
	return ok, nil
}

// Disconnect forgets the LinkedIn token while keeping the local login.
func (c *Connector) Disconnect(ctx context.Context, token string) error {
	if _, ok := c.sessions.ResolveUser(ctx, token); !ok {
		return autherrors.ErrUnauthorized
	}
	if err := c.sessions.DetachLinkedInToken(ctx, token); err != nil {
		return errors.Wrap(err, "[linkedin.Disconnect] DetachLinkedInToken")
	}
	return nil
}

// generateState creates a random base64url string
func generateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
