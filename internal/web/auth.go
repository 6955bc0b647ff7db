package web

import (
	"net/http"

	"carmarket/internal/models"
	"carmarket/internal/session"

	"github.com/rs/zerolog/log"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Sign in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Enter your email and password.",
		})
		return
	}

	_, token, err := s.Auth.Login(r.Context(), email, password)
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Wrong email or password.",
		})
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &PageData{Title: "Create account"})
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	if name == "" || email == "" || len(password) < 6 {
		s.Templates.Render(w, "register.html", &PageData{
			Title: "Create account",
			Error: "Fill in all fields; the password needs at least 6 characters.",
		})
		return
	}

	_, token, err := s.Auth.Register(r.Context(), name, email, password)
	if err != nil {
		s.Templates.Render(w, "register.html", &PageData{
			Title: "Create account",
			Error: "Could not create the account.",
		})
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if claims, err := s.Auth.Claims(cookie.Value); err == nil {
			if err := s.Auth.Logout(r.Context(), claims); err != nil {
				log.Error().Err(err).Msg("Failed to revoke session on logout")
			}
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// currentSession returns the signed-in session for the request. Guarded
// pages can rely on it being non-nil.
func currentSession(r *http.Request) *models.Session {
	return session.Current(r.Context())
}
