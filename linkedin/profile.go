package linkedin

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/linkedin-post-stats/internal/config"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Profile is the member's OpenID Connect userinfo.
type Profile struct {
	Subject string `json:"sub"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// ProfileClient reads the connected member's profile. The OIDC provider is
// discovered on first use and kept.
type ProfileClient struct {
	issuer     string
	sessions   *sessions.Manager
	httpClient *http.Client

	provider     *oidc.Provider
	providerLock sync.RWMutex
}

func NewProfileClient(cfg config.LinkedInConfig, manager *sessions.Manager, opts ...Option) (*ProfileClient, error) {
	if manager == nil {
		return nil, errors.New("[linkedin.NewProfileClient] session manager is required")
	}
	o := buildOptions(cfg, opts)
	return &ProfileClient{
		issuer:     cfg.GetLinkedInOIDCIssuer(),
		sessions:   manager,
		httpClient: o.httpClient,
	}, nil
}

// GetProfile returns the member behind the session's LinkedIn token.
func (c *ProfileClient) GetProfile(ctx context.Context, token string) (*Profile, error) {
	accessToken, ok := c.sessions.GetLinkedInToken(ctx, token)
	if !ok {
		return nil, autherrors.ErrUnauthenticated
	}

	ctx = oidc.ClientContext(ctx, c.httpClient)
	provider, err := c.getProvider(ctx)
	if err != nil {
		log.Err(err).Str("issuer", c.issuer).Msg("oidc discovery failed")
		return nil, errors.Wrapf(autherrors.ErrUpstream, "[linkedin.GetProfile] %v", err)
	}

	endpoint := provider.UserInfoEndpoint()
	if endpoint == "" {
		return nil, errors.Wrap(autherrors.ErrUpstream, "[linkedin.GetProfile] provider has no userinfo endpoint")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(autherrors.ErrUpstream, "[linkedin.GetProfile] NewRequest: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := bearerClient(c.httpClient, accessToken).Do(req)
	if err != nil {
		log.Err(err).Msg("linkedin userinfo request failed")
		return nil, errors.Wrapf(autherrors.ErrUpstream, "[linkedin.GetProfile] %v", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "userinfo"); err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err := json.NewDecoder(resp.Body).Decode(profile); err != nil {
		log.Err(err).Msg("invalid linkedin userinfo response")
		return nil, errors.Wrapf(autherrors.ErrUpstream, "[linkedin.GetProfile] decode: %v", err)
	}
	return profile, nil
}

func (c *ProfileClient) getProvider(ctx context.Context) (*oidc.Provider, error) {
	c.providerLock.RLock()
	provider := c.provider
	c.providerLock.RUnlock()
	if provider != nil {
		return provider, nil
	}

	provider, err := oidc.NewProvider(ctx, c.issuer)
	if err != nil {
		return nil, err
	}
	c.providerLock.Lock()
	c.provider = provider
	c.providerLock.Unlock()
	return provider, nil
}
