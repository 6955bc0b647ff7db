package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "carmarket/internal/errors"
	"carmarket/internal/services"
	"carmarket/internal/session"
)

// AuthMiddleware creates a middleware requiring a valid Bearer session
// token. The resolved session is stored in the request context.
func AuthMiddleware(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				respondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			res := authService.Resolve(r.Context(), token)
			switch res.State {
			case session.StatePresent:
				next.ServeHTTP(w, r.WithContext(session.WithResolution(r.Context(), res)))
			case session.StateUnknown:
				respondError(w, apperrors.ErrRemoteUnavailable.Error(), http.StatusBadGateway)
			default:
				respondError(w, "Invalid token", http.StatusUnauthorized)
			}
		})
	}
}

// BearerToken extracts the Bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
