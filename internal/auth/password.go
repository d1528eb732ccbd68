// Package auth gates the admin portal.
//
// The portal is protected by a single shared password configured at startup.
// There is one credential, no user accounts, no rate limiting — this is an
// internal tool behind the office network, and the contract is a plain
// password check. What we DO control:
//
//   - the comparison is constant-time, so response timing leaks nothing
//   - the configured value may be a bcrypt hash instead of plaintext, for
//     deployments that don't want the password sitting in an env var
//   - a successful check issues a signed session cookie (jwt.go) so the
//     password itself is never round-tripped after login
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/employee-directory/internal/apperror"
)

// Verifier checks submitted admin passwords against the configured credential.
type Verifier struct {
	credential string
	hashed     bool
}

// NewVerifier creates a Verifier for the configured credential.
//
// If the credential looks like a bcrypt hash ("$2a$", "$2b$", ...), submitted
// passwords are verified with bcrypt. Otherwise it is treated as the literal
// password and compared directly. bcrypt hashes always carry the "$2" prefix,
// and no sane literal password starts with "$2a$", so the sniff is safe.
func NewVerifier(credential string) *Verifier {
	return &Verifier{
		credential: credential,
		hashed:     strings.HasPrefix(credential, "$2"),
	}
}

// Verify returns nil when the submitted password matches.
//
// A wrong password yields apperror.ErrUnauthorized — a recoverable domain
// error the handler renders as an inline message, never a 500.
func (v *Verifier) Verify(password string) error {
	if v.hashed {
		if err := bcrypt.CompareHashAndPassword([]byte(v.credential), []byte(password)); err != nil {
			return apperror.Unauthorized("Incorrect Password")
		}
		return nil
	}

	// subtle.ConstantTimeCompare takes the same time regardless of where the
	// first differing byte is. A plain == would let an attacker probe the
	// password byte by byte from response timings.
	if subtle.ConstantTimeCompare([]byte(v.credential), []byte(password)) != 1 {
		return apperror.Unauthorized("Incorrect Password")
	}
	return nil
}
