package handlers

import (
	"io"
	"net/http"

	"carmarket/internal/services"
	"carmarket/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// maxImageSize limits uploaded image bodies.
const maxImageSize = 10 << 20

// ImageHandler handles image upload HTTP requests
type ImageHandler struct {
	uploadService *services.UploadService
}

// NewImageHandler creates a new image handler
func NewImageHandler(uploadService *services.UploadService) *ImageHandler {
	return &ImageHandler{
		uploadService: uploadService,
	}
}

// UploadImage handles POST /api/v1/images. Expects a multipart form with
// an "image" file field. The content is validated before any blob write.
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	sess := session.Current(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, "failed to read image", http.StatusBadRequest)
		return
	}

	image, err := h.uploadService.Upload(r.Context(), sess.UID, data)
	if err != nil {
		log.Error().Err(err).Str("uid", sess.UID).Msg("Failed to upload image")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("uid", sess.UID).
		Str("name", image.Name).
		Msg("Image uploaded")

	respondJSON(w, http.StatusCreated, image)
}

// DeleteImage handles DELETE /api/v1/images/{name}. The blob path is
// derived from the caller's own identity, so users can only delete
// images in their own namespace.
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	sess := session.Current(r.Context())
	name := chi.URLParam(r, "name")

	if err := h.uploadService.Delete(r.Context(), sess.UID, name); err != nil {
		log.Error().Err(err).Str("uid", sess.UID).Str("name", name).Msg("Failed to delete image")
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
