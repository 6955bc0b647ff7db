package web

import (
	"net/http"

	"carmarket/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// HomePage handles GET /. A failed load degrades to an empty grid.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	listings, err := s.Listings.Search(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load listings for home page")
		listings = nil
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Query    string
		Listings []*models.Listing
	}{
		PageData: PageData{Title: "New and used cars", Session: currentSession(r)},
		Query:    query,
		Listings: listings,
	})
}

// CarPage handles GET /car/{id}. A missing listing sends the visitor
// back to the home page.
func (s *Server) CarPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := s.Listings.GetByID(r.Context(), id)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "car_detail.html", &struct {
		PageData
		Listing *models.Listing
	}{
		PageData: PageData{Title: listing.Name, Session: currentSession(r)},
		Listing:  listing,
	})
}
