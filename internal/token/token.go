// Package token issues and verifies the signed, short-lived bearer tokens
// handed out after a successful login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of an issued token unless configured otherwise.
const DefaultTTL = time.Minute

var (
	// ErrInvalid is returned for malformed tokens and bad signatures.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned for well-formed tokens past their expiry.
	ErrExpired = errors.New("token expired")
)

// Claims carries the user id as the only application claim.
type Claims struct {
	ID uint `json:"id"`
	jwt.RegisteredClaims
}

// Token is a signed token together with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Manager signs and verifies HS256 tokens with a server-held secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager signing with secret. A non-positive ttl
// falls back to DefaultTTL.
func NewManager(secret []byte, ttl time.Duration) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: secret, ttl: ttl, now: time.Now}, nil
}

// TTL returns the lifetime applied to issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for userID.
func (m *Manager) Issue(userID uint) (Token, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := t.SignedString(m.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	// NumericDate has second precision; report what the token actually carries.
	return Token{Value: signed, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Verify checks the signature and expiry of raw and returns the embedded user id.
func (m *Manager) Verify(raw string) (uint, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.ID == 0 {
		return 0, fmt.Errorf("%w: missing id claim", ErrInvalid)
	}
	return claims.ID, nil
}
