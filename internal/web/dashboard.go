package web

import (
	"context"
	"errors"
	"io"
	"net/http"

	apperrors "carmarket/internal/errors"
	"carmarket/internal/handlers"
	"carmarket/internal/models"
	"carmarket/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// maxUploadSize limits the create-listing multipart form.
const maxUploadSize = 32 << 20

// DashboardPage handles GET /dashboard.
func (s *Server) DashboardPage(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	listings, err := s.Listings.ListByOwner(r.Context(), sess.UID)
	if err != nil {
		log.Error().Err(err).Str("uid", sess.UID).Msg("Failed to load own listings")
		listings = nil
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Listings []*models.Listing
	}{
		PageData: PageData{Title: "My listings", Session: sess},
		Listings: listings,
	})
}

// DeleteListingSubmit handles POST /dashboard/delete/{id}.
func (s *Server) DeleteListingSubmit(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id := chi.URLParam(r, "id")

	if err := s.Listings.Delete(r.Context(), id, *sess); err != nil {
		log.Error().Err(err).Str("listing_id", id).Str("uid", sess.UID).Msg("Failed to delete listing")
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// NewListingPage handles GET /dashboard/new.
func (s *Server) NewListingPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "dashboard_new.html", &PageData{
		Title:   "New listing",
		Session: currentSession(r),
	})
}

// newListingForm carries the create-listing form fields through the same
// validation rules the JSON API applies to its request body.
type newListingForm struct {
	Name        string `validate:"required"`
	Model       string `validate:"required"`
	Whatsapp    string `validate:"required,phone"`
	City        string `validate:"required"`
	Year        string `validate:"required"`
	KM          string `validate:"required"`
	Price       string `validate:"required"`
	Description string `validate:"required"`
}

// NewListingSubmit handles POST /dashboard/new. The fields are validated
// before any image is uploaded; image files are then run through the
// upload flow one at a time, in form order, and the listing is created
// referencing the uploaded images.
func (s *Server) NewListingSubmit(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.renderNewListingError(w, sess, "The form could not be read.")
		return
	}

	form := newListingForm{
		Name:        r.FormValue("name"),
		Model:       r.FormValue("model"),
		Whatsapp:    r.FormValue("whatsapp"),
		City:        r.FormValue("city"),
		Year:        r.FormValue("year"),
		KM:          r.FormValue("km"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
	}

	if err := handlers.Validate.Struct(form); err != nil {
		msg := "Fill in all the fields of the listing."
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				if fieldErr.Tag() == "phone" {
					msg = "Enter a WhatsApp number with 11 or 12 digits."
				}
			}
		}
		s.renderNewListingError(w, sess, msg)
		return
	}

	fields := services.ListingFields{
		Name:        form.Name,
		Model:       form.Model,
		Whatsapp:    form.Whatsapp,
		City:        form.City,
		Year:        form.Year,
		KM:          form.KM,
		Price:       form.Price,
		Description: form.Description,
	}

	var images []models.ListingImage
	for _, header := range r.MultipartForm.File["images"] {
		file, err := header.Open()
		if err != nil {
			s.discardUploads(images)
			s.renderNewListingError(w, sess, "An image file could not be read.")
			return
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			s.discardUploads(images)
			s.renderNewListingError(w, sess, "An image file could not be read.")
			return
		}

		image, err := s.Uploads.Upload(r.Context(), sess.UID, data)
		if err != nil {
			s.discardUploads(images)
			if errors.Is(err, apperrors.ErrUnsupportedFormat) {
				s.renderNewListingError(w, sess, "Send a JPEG or PNG image!")
				return
			}
			log.Error().Err(err).Str("uid", sess.UID).Msg("Failed to upload listing image")
			s.renderNewListingError(w, sess, "The image upload failed, try again.")
			return
		}
		images = append(images, *image)
	}

	if _, err := s.Listings.Create(r.Context(), fields, images, *sess); err != nil {
		s.discardUploads(images)
		if errors.Is(err, apperrors.ErrNoImages) {
			s.renderNewListingError(w, sess, "Send at least one photo of the car!")
			return
		}
		log.Error().Err(err).Str("uid", sess.UID).Msg("Failed to create listing")
		s.renderNewListingError(w, sess, "The listing could not be saved, try again.")
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// discardUploads removes blobs uploaded during a submission that failed,
// so they do not end up unreferenced. Best-effort: failures are logged by
// the upload service and the response is not held up.
func (s *Server) discardUploads(images []models.ListingImage) {
	for _, image := range images {
		// The error is already logged with the blob key.
		_ = s.Uploads.Delete(context.Background(), image.UID, image.Name)
	}
}

func (s *Server) renderNewListingError(w http.ResponseWriter, sess *models.Session, msg string) {
	s.Templates.Render(w, "dashboard_new.html", &PageData{
		Title:   "New listing",
		Session: sess,
		Error:   msg,
	})
}
