package utils // package utils provides helper functions for token creation, hashing and error shaping

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iliyamo/job-portal/internal/model"
)

// DefaultRevocationTTL is how long a revoked token is remembered when
// the token itself carries no expiry claim.
const DefaultRevocationTTL = time.Hour

// ErrInvalidToken is returned for tokens that fail signature, method
// or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of an access token.  The registered claims
// carry exp, iat and a random jti so two tokens issued in the same
// second for the same user are still distinct strings; the revocation
// ledger is keyed on the full token string.
type Claims struct {
	ID    uint64     `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the caller identity embedded in the claims.
func (c *Claims) Identity() model.Identity {
	return model.Identity{ID: c.ID, Email: c.Email, Role: c.Role}
}

// AccessToken represents a signed JWT access token along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for the identity.  The
// token expires ttl after now.
func NewAccessToken(secret string, id model.Identity, ttl time.Duration, now time.Time) (AccessToken, error) {
	now = now.UTC()
	exp := now.Add(ttl)
	claims := Claims{
		ID:    id.ID,
		Email: id.Email,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and returns its claims.
// Only HS256 is accepted and the exp claim is required.
func ParseAccessToken(secret, raw string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil || tok == nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == 0 || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RevocationExpiry returns the instant after which a revoked token can
// be forgotten: its own exp claim, or now+DefaultRevocationTTL.
func RevocationExpiry(c *Claims, now time.Time) time.Time {
	if c != nil && c.ExpiresAt != nil {
		return c.ExpiresAt.Time.UTC()
	}
	return now.UTC().Add(DefaultRevocationTTL)
}

// PeekClaims decodes raw without verifying its signature or expiry.
// It is only used to read the exp claim of a token that is being
// revoked.
func PeekClaims(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
