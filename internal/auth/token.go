package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
)

// DefaultTokenTTL is the token lifetime used when none is configured.
const DefaultTokenTTL = 8 * time.Hour

const tokenIssuer = "advancemais-api"

// Claims is the signed payload carried by a bearer token. The role snapshot
// is copied at issuance time and does not reflect later role changes; the
// token must be reissued to pick them up.
type Claims struct {
	PrincipalID string              `json:"id"`
	Email       string              `json:"email"`
	Name        string              `json:"name"`
	Role        domain.RoleSnapshot `json:"role"`
	IsCompany   bool                `json:"is_company"`
	CompanyID   string              `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies bearer tokens with a shared HMAC secret.
//
// An empty secret is accepted: the resulting tokens simply verify nowhere
// else. Secret strength is enforced at configuration load, not here.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a token codec with the given shared secret and TTL.
// A non-positive TTL falls back to DefaultTokenTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs the given claims, injecting iat and exp. The claims'
// registered fields are overwritten.
func (c *Codec) Issue(claims *Claims) (string, error) {
	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.PrincipalID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		Issuer:    tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token, returning its claims and true on
// success. Bad signature, malformed structure, wrong algorithm and expiry
// all yield the same (nil, false) result; callers cannot distinguish which
// check failed. Expiry is checked strictly against the current time with no
// grace window.
func (c *Codec) Verify(tokenString string) (*Claims, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, false
	}

	return claims, true
}
