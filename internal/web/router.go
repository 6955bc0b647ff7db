package web

import (
	"carmarket/internal/services"

	"github.com/go-chi/chi/v5"
)

// NewServer creates the page server with parsed templates.
func NewServer(authService *services.AuthService, listingService *services.ListingService, uploadService *services.UploadService) (*Server, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	return &Server{
		Templates: templates,
		Auth:      authService,
		Listings:  listingService,
		Uploads:   uploadService,
	}, nil
}

// Register mounts all page routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(s.Auth))

		// Public pages.
		r.Get("/", s.HomePage)
		r.Get("/car/{id}", s.CarPage)
		r.Get("/login", s.LoginPage)
		r.Post("/login", s.LoginSubmit)
		r.Get("/register", s.RegisterPage)
		r.Post("/register", s.RegisterSubmit)
		r.Post("/logout", s.Logout)

		// Owner-only pages.
		r.Group(func(r chi.Router) {
			r.Use(Guard)
			r.Get("/dashboard", s.DashboardPage)
			r.Get("/dashboard/new", s.NewListingPage)
			r.Post("/dashboard/new", s.NewListingSubmit)
			r.Post("/dashboard/delete/{id}", s.DeleteListingSubmit)
		})
	})
}
