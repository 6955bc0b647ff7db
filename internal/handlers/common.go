package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"

	apperrors "carmarket/internal/errors"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\d{11,12}$`)

// Validate is the request validator shared by all handlers.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 11-12 digit contact number, no separators.
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, apperrors.ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto the error envelope.
func respondServiceError(w http.ResponseWriter, err error) {
	httpErr := apperrors.MapErrorToHTTP(err)
	respondJSON(w, httpErr.StatusCode, httpErr.ToErrorResponse())
}
