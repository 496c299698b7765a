package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionClaims is the client-visible session: identity plus role.
type SessionClaims struct {
	UserID  string `json:"id"`
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// SessionTokens signs and verifies HS256 session tokens.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokens(cfg SessionConfig) *SessionTokens {
	days := cfg.ExpiryDays
	if days <= 0 {
		days = 30
	}
	return &SessionTokens{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(days) * 24 * time.Hour,
		now:    time.Now,
	}
}

func (s *SessionTokens) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session for the given identity. An empty role becomes CUSTOMER.
func (s *SessionTokens) Issue(claims SessionClaims) (string, time.Time, error) {
	if claims.Role == "" {
		claims.Role = DefaultRole
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies signature and expiry and returns the claims.
func (s *SessionTokens) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	if claims.UserID == "" {
		return nil, ErrInvalidSession
	}
	if claims.Role == "" {
		claims.Role = DefaultRole
	}

	return claims, nil
}
