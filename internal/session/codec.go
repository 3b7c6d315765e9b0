package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrSessionExpired is the single error every token verification failure
// collapses into. Malformed, tampered, wrong-key and expired tokens are
// indistinguishable to callers, so nothing about the verification internals
// leaks to a client probing the endpoint.
var ErrSessionExpired = errors.New("Your session expired. Sign in again.")

// Claims is the identity baked into a session token.
type Claims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with an HMAC-SHA256 secret.
// It has no storage and no side effects.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Secret returns the signing key the codec was built with, for request
// contexts that carry it.
func (c *Codec) Secret() string { return string(c.secret) }

// Sign mints a token for the given identity, valid for the codec's TTL.
func (c *Codec) Sign(userID, email, username, role string) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   userID,
		Email:    email,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry in one pass and returns the identity
// claims. Every failure mode returns ErrSessionExpired.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrSessionExpired
			}
			return c.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return nil, ErrSessionExpired
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrSessionExpired
	}

	return claims, nil
}
