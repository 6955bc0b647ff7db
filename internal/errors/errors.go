package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnsupportedFormat is returned when an uploaded file is not a JPEG or PNG image.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrNoImages is returned when a listing is submitted without any images.
	ErrNoImages = errors.New("listing requires at least one image")
	// ErrListingNotFound is returned when a listing does not exist.
	ErrListingNotFound = errors.New("listing not found")
	// ErrNotOwner is returned when a user tries to delete a listing they do not own.
	ErrNotOwner = errors.New("listing does not belong to user")
	// ErrEmailTaken is returned when registering with an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when sign-in fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrRemoteUnavailable wraps failures of the storage backends.
	ErrRemoteUnavailable = errors.New("remote backend unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return NewHTTPError(http.StatusUnsupportedMediaType, ErrUnsupportedFormat.Error(), "UNSUPPORTED_FORMAT")
	case errors.Is(err, ErrNoImages):
		return NewHTTPError(http.StatusUnprocessableEntity, ErrNoImages.Error(), "NO_IMAGES")
	case errors.Is(err, ErrListingNotFound):
		return NewHTTPError(http.StatusNotFound, ErrListingNotFound.Error(), "LISTING_NOT_FOUND")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, ErrNotOwner.Error(), "NOT_OWNER")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrRemoteUnavailable):
		return NewHTTPError(http.StatusBadGateway, ErrRemoteUnavailable.Error(), "REMOTE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
