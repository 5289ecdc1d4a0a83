package sessions

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/pkg/errors"
)

// tokenSigner turns a session id into the opaque cookie value and back. The
// value is an HS256 JWT whose jti is the session id.
type tokenSigner struct {
	secret  []byte
	nowTime func() time.Time
}

func (t *tokenSigner) sign(sessionID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "[sessions.sign] SignedString")
	}
	return signed, nil
}

func (t *tokenSigner) verificationKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return t.secret, nil
}

// parse validates the signature and expiry of token and returns the session
// id. An expired but correctly signed token still yields its id alongside
// ErrSessionExpired so the record can be removed.
func (t *tokenSigner) parse(token string) (string, error) {
	if token == "" {
		return "", autherrors.ErrNoSuchSession
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, t.verificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.nowTime),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && claims.ID != "" {
			return claims.ID, autherrors.ErrSessionExpired
		}
		return "", errors.Wrapf(autherrors.ErrNoSuchSession, "[sessions.parse] %v", err)
	}
	if claims.ID == "" {
		return "", autherrors.ErrNoSuchSession
	}
	return claims.ID, nil
}
