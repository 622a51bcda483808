// Package token issues and verifies the signed session tokens carried in the
// session cookie. Tokens are stateless: validity is a function of signature
// and expiry only, so a logged-out token stays valid until it expires.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("token: signing secret is empty")
	// ErrInvalidToken covers malformed, badly signed and expired tokens alike.
	ErrInvalidToken = errors.New("token: invalid token")
)

// Claims is the payload of a session token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(secret string, defaultTTL time.Duration, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	s := &Service{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL is the lifetime used when Issue is called without one.
func (s *Service) TTL() time.Duration {
	return s.defaultTTL
}

// Issue signs a token for claims.Email that expires after ttl.
func (s *Service) Issue(claims Claims, ttl time.Duration) (string, error) {
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return "", errors.New("token: identity claim is empty")
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.now()
	claims.Email = email
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify returns the decoded claims of a valid, unexpired token.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
