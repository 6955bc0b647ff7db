package web

import (
	"net/http"

	"carmarket/internal/auth"
	"carmarket/internal/services"
	"carmarket/internal/session"
)

const sessionCookie = "token"

// SessionMiddleware resolves the session cookie into the request context.
// It is the single writer of the session state; pages and the guard only
// read it.
func SessionMiddleware(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				token = cookie.Value
			}

			res := authService.Resolve(r.Context(), token)
			if res.State == session.StateAbsent && token != "" {
				clearAuthCookie(w)
			}

			next.ServeHTTP(w, r.WithContext(session.WithResolution(r.Context(), res)))
		})
	}
}

// Guard protects owner-only pages. While the session state is unknown it
// renders an empty placeholder instead of redirecting, so a transient
// resolution failure never bounces a signed-in user to the login page.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch session.FromContext(r.Context()).State {
		case session.StatePresent:
			next.ServeHTTP(w, r)
		case session.StateUnknown:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
		default:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		}
	})
}

// setAuthCookie installs the session token cookie.
func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})
}

// clearAuthCookie clears the session cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
