package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionSubject is the only identity this system knows about. There are no
// user accounts — a valid token means "someone who typed the admin password".
const sessionSubject = "admin"

// SessionDuration is how long an admin login stays valid.
// Long enough to get through a batch of HR updates, short enough that a
// forgotten browser tab doesn't stay privileged for a week.
const SessionDuration = 12 * time.Hour

// TokenService issues and validates admin session tokens.
//
// WHY JWT?
// The token is stateless — no session table, no cleanup job. Everything the
// server needs (subject, expiry) is inside the signed token, and the HMAC
// signature means nobody can mint one without the secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given signing secret.
// The secret should be at least 32 bytes of random data in production:
//
//	SESSION_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims — standard fields (Subject, ExpiresAt,
// IssuedAt, Issuer) are all we need for a single-identity session.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a new admin session token.
//
// Signing algorithm: HS256 (HMAC-SHA256). Symmetric — the same key signs and
// verifies, which is fine for a single-server deployment.
func (s *TokenService) Generate() (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionDuration)),
			Issuer:    "employee-directory",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// generateWithDuration creates a token with a custom expiry.
// Unexported — only the tests need to mint expired tokens.
func (s *TokenService) generateWithDuration(d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    "employee-directory",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate checks a session token and returns an error if it is expired,
// tampered with, signed with the wrong algorithm, or not an admin token.
func (s *TokenService) Validate(tokenStr string) error {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			// Reject tokens that aren't signed with HMAC — accepting the
			// token's own alg header is the classic JWT "none" vulnerability.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer("employee-directory"),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("auth: session expired")
		}
		return fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return fmt.Errorf("auth: invalid token claims")
	}
	if c.Subject != sessionSubject {
		return fmt.Errorf("auth: token has wrong subject")
	}

	return nil
}
