package sessions

import "time"

// Session is the server-side record behind a login cookie. A LinkedIn access
// token is attached once the member completes the LinkedIn OAuth flow.
type Session struct {
	ID                  string    `json:"id" bson:"id"`                                                       // Unique session identifier (UUID)
	UserID              string    `json:"userId" bson:"userId"`                                               // Local user this session belongs to
	LinkedInAccessToken string    `json:"linkedInAccessToken,omitempty" bson:"linkedInAccessToken,omitempty"` // Set after a successful LinkedIn callback
	LinkedInTokenExpiry time.Time `json:"linkedInTokenExpiry,omitempty" bson:"linkedInTokenExpiry,omitempty"` // Zero when LinkedIn did not report one
	OAuthStateHash      string    `json:"oauthStateHash,omitempty" bson:"oauthStateHash,omitempty"`           // Hashed state parameter for CSRF protection
	CreatedAt           time.Time `json:"createdAt" bson:"createdAt"`
	ExpiresAt           time.Time `json:"expiresAt" bson:"expiresAt"`
}

// Expired reports whether the session has passed its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// HasLinkedInToken reports whether a usable LinkedIn token is attached.
func (s *Session) HasLinkedInToken(now time.Time) bool {
	if s.LinkedInAccessToken == "" {
		return false
	}
	return s.LinkedInTokenExpiry.IsZero() || s.LinkedInTokenExpiry.After(now)
}
