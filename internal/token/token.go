// Package token issues and verifies HS256 session tokens.
//
// A token binds a user ID (sub) and a role claim and expires 24 hours after
// issuance. Issuer and audience are not checked. There is no revocation:
// a token stays valid until it expires or the signing key is rotated.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TTL is fixed, not configurable.
const TTL = 24 * time.Hour

var ErrEmptyKey = errors.New("token signing key is empty")

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	key []byte
	now func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(key []byte, opts ...Option) (*Service, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	s := &Service{key: key, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for userID. The role claim is "Admin" or "User".
func (s *Service) Issue(userID int64, isAdmin bool) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(TTL)

	claims := Claims{
		Role: string(domain.RoleFor(isAdmin)),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry. Expired tokens fail with
// domain.ErrTokenExpired, everything else with domain.ErrTokenInvalid.
func (s *Service) Verify(raw string) (*domain.Session, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: bad subject %q", domain.ErrTokenInvalid, claims.Subject)
	}

	role := domain.Role(claims.Role)
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, fmt.Errorf("%w: bad role %q", domain.ErrTokenInvalid, claims.Role)
	}

	return &domain.Session{
		UserID:    userID,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
