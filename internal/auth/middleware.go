package auth

import (
	"context"
	"net/http"
)

// SessionCookie is the name of the HttpOnly cookie carrying the admin token.
const SessionCookie = "admin_session"

// contextKey is an unexported type for context keys in this package.
// A package-private key type means no other package can read or shadow the
// value we store — a plain string key would collide with anyone else using
// the same string.
type contextKey string

const adminKey contextKey = "admin"

// SetSessionCookie writes the admin session cookie on a login response.
//
// HttpOnly keeps JavaScript away from the token (XSS can't steal it);
// SameSite=Lax keeps it off cross-site POSTs. MaxAge mirrors the token's own
// expiry so the browser drops the cookie around the time it stops working.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the admin session cookie (logout).
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAdmin enforces an authenticated admin session on protected routes.
// Requests without a valid session cookie are redirected to the admin login
// page rather than answered with a bare 401 — these routes are reached from
// browser forms, not API clients.
func RequireAdmin(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasValidSession(r, tokens) {
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAdmin marks the request as authenticated when a valid session
// cookie is present but never blocks. The admin page handler uses this to
// decide between rendering the login form and the management panel.
func OptionalAdmin(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasValidSession(r, tokens) {
				r = r.WithContext(context.WithValue(r.Context(), adminKey, true))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAdmin reports whether the request context carries a validated session.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminKey).(bool)
	return ok
}

func hasValidSession(r *http.Request, tokens *TokenService) bool {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return false
	}
	return tokens.Validate(cookie.Value) == nil
}
