package handlers

import (
	"encoding/json"
	"net/http"

	"carmarket/internal/models"
	"carmarket/internal/services"
	"carmarket/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ListingHandler handles listing-related HTTP requests
type ListingHandler struct {
	listingService *services.ListingService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// CreateListingRequest is the body of POST /api/v1/cars. The images must
// already be uploaded; the list carries their stored references.
type CreateListingRequest struct {
	Name        string                `json:"name" validate:"required"`
	Model       string                `json:"model" validate:"required"`
	Whatsapp    string                `json:"whatsapp" validate:"required,phone"`
	City        string                `json:"city" validate:"required"`
	Year        string                `json:"year" validate:"required"`
	KM          string                `json:"km" validate:"required"`
	Price       string                `json:"price" validate:"required"`
	Description string                `json:"description" validate:"required"`
	Images      []models.ListingImage `json:"images" validate:"required,min=1"`
}

// GetListings handles GET /api/v1/cars. A read failure degrades to an
// empty result set, not an error response.
func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listingService.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to load listings")
		listings = nil
	}

	respondListings(w, listings)
}

// GetListing handles GET /api/v1/cars/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.listingService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listing)
}

// GetMyListings handles GET /api/v1/my/cars
func (h *ListingHandler) GetMyListings(w http.ResponseWriter, r *http.Request) {
	sess := session.Current(r.Context())

	listings, err := h.listingService.ListByOwner(r.Context(), sess.UID)
	if err != nil {
		log.Error().Err(err).Str("uid", sess.UID).Msg("Failed to load own listings")
		listings = nil
	}

	respondListings(w, listings)
}

// CreateListing handles POST /api/v1/cars
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	sess := session.Current(r.Context())

	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := Validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fields := services.ListingFields{
		Name:        req.Name,
		Model:       req.Model,
		Whatsapp:    req.Whatsapp,
		City:        req.City,
		Year:        req.Year,
		KM:          req.KM,
		Price:       req.Price,
		Description: req.Description,
	}

	listing, err := h.listingService.Create(r.Context(), fields, req.Images, *sess)
	if err != nil {
		log.Error().Err(err).Str("uid", sess.UID).Msg("Failed to create listing")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("listing_id", listing.ID).
		Str("uid", sess.UID).
		Msg("Listing created")

	respondJSON(w, http.StatusCreated, listing)
}

// DeleteListing handles DELETE /api/v1/cars/{id}
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	sess := session.Current(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.listingService.Delete(r.Context(), id, *sess); err != nil {
		log.Error().Err(err).Str("listing_id", id).Str("uid", sess.UID).Msg("Failed to delete listing")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("listing_id", id).Str("uid", sess.UID).Msg("Listing deleted")

	w.WriteHeader(http.StatusNoContent)
}

func respondListings(w http.ResponseWriter, listings []*models.Listing) {
	if listings == nil {
		listings = []*models.Listing{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"cars":  listings,
		"total": len(listings),
	})
}
