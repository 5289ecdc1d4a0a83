package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/linkedin-post-stats/internal/config"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/internal/utils"
	"github.com/jrsteele09/linkedin-post-stats/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const ugcPostURNPrefix = "urn:li:ugcPost:"

// Stats are the engagement counts of the tracked post.
type Stats struct {
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
	Likes    int `json:"likes"`
}

// socialActionsResponse covers both the flat counters and the summary
// objects LinkedIn returns from /socialActions.
type socialActionsResponse struct {
	NumShares       *int             `json:"numShares"`
	NumComments     *int             `json:"numComments"`
	NumLikes        *int             `json:"numLikes"`
	LikesSummary    *likesSummary    `json:"likesSummary"`
	CommentsSummary *commentsSummary `json:"commentsSummary"`
}

type likesSummary struct {
	TotalLikes *int `json:"totalLikes"`
}

type commentsSummary struct {
	AggregatedTotalComments *int `json:"aggregatedTotalComments"`
}

func (r *socialActionsResponse) stats() *Stats {
	var totalLikes, totalComments *int
	if r.LikesSummary != nil {
		totalLikes = r.LikesSummary.TotalLikes
	}
	if r.CommentsSummary != nil {
		totalComments = r.CommentsSummary.AggregatedTotalComments
	}
	return &Stats{
		Shares:   utils.Value(r.NumShares),
		Comments: utils.FirstSet(r.NumComments, totalComments),
		Likes:    utils.FirstSet(r.NumLikes, totalLikes),
	}
}

// FormatPostURN turns a bare post id into a ugcPost URN. Ids that are already
// URNs are returned unchanged.
func FormatPostURN(postID string) string {
	postID = strings.TrimSpace(postID)
	if strings.HasPrefix(postID, "urn:li:") {
		return postID
	}
	return ugcPostURNPrefix + postID
}

// StatsClient fetches engagement counts for one configured post using the
// LinkedIn token attached to the caller's session.
type StatsClient struct {
	apiBaseURL string
	postURN    string
	sessions   *sessions.Manager
	httpClient *http.Client
}

func NewStatsClient(cfg config.LinkedInConfig, manager *sessions.Manager, opts ...Option) (*StatsClient, error) {
	if manager == nil {
		return nil, errors.New("[linkedin.NewStatsClient] session manager is required")
	}
	o := buildOptions(cfg, opts)
	return &StatsClient{
		apiBaseURL: strings.TrimSuffix(cfg.GetLinkedInAPIBaseURL(), "/"),
		postURN:    FormatPostURN(cfg.GetLinkedInPostID()),
		sessions:   manager,
		httpClient: o.httpClient,
	}, nil
}

// GetStats makes a single request to LinkedIn. A 401 from LinkedIn is
// reported as ErrUpstreamUnauthorized and leaves the stored token in place;
// every other failure is ErrUpstream.
func (c *StatsClient) GetStats(ctx context.Context, token string) (*Stats, error) {
	accessToken, ok := c.sessions.GetLinkedInToken(ctx, token)
	if !ok {
		return nil, autherrors.ErrUnauthenticated
	}

	endpoint := fmt.Sprintf("%s/socialActions/%s", c.apiBaseURL, escapeURN(c.postURN))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(autherrors.ErrUpstream, "[linkedin.GetStats] NewRequest: %v", err)
	}
	req.Header.Set("X-Restli-Protocol-Version", restliProtocolVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := bearerClient(c.httpClient, accessToken).Do(req)
	if err != nil {
		log.Err(err).Str("post", c.postURN).Msg("linkedin stats request failed")
		return nil, errors.Wrapf(autherrors.ErrUpstream, "[linkedin.GetStats] %v", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, c.postURN); err != nil {
		return nil, err
	}

	var body socialActionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Err(err).Str("post", c.postURN).Msg("invalid linkedin stats response")
		return nil, errors.Wrapf(autherrors.ErrUpstream, "[linkedin.GetStats] decode: %v", err)
	}
	return body.stats(), nil
}

func checkStatus(resp *http.Response, resource string) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		log.Warn().Str("resource", resource).Msg("linkedin rejected the access token")
		return autherrors.ErrUpstreamUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.Error().Int("status", resp.StatusCode).Str("resource", resource).Msg("linkedin request failed")
		return errors.Wrapf(autherrors.ErrUpstream, "status %d", resp.StatusCode)
	}
	return nil
}

// escapeURN percent-encodes a URN for use as a single path segment.
func escapeURN(urn string) string {
	return strings.ReplaceAll(url.PathEscape(urn), ":", "%3A")
}
