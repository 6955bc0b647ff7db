package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrUnsupportedFormat, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT"},
		{ErrNoImages, http.StatusUnprocessableEntity, "NO_IMAGES"},
		{ErrListingNotFound, http.StatusNotFound, "LISTING_NOT_FOUND"},
		{ErrNotOwner, http.StatusForbidden, "NOT_OWNER"},
		{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrRemoteUnavailable, http.StatusBadGateway, "REMOTE_UNAVAILABLE"},
		{fmt.Errorf("something else"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		httpErr := MapErrorToHTTP(tc.err)
		if httpErr.StatusCode != tc.status {
			t.Errorf("%v: expected status %d, got %d", tc.err, tc.status, httpErr.StatusCode)
		}
		if httpErr.Code != tc.code {
			t.Errorf("%v: expected code %s, got %s", tc.err, tc.code, httpErr.Code)
		}
	}
}

func TestMapErrorToHTTPWrapped(t *testing.T) {
	wrapped := fmt.Errorf("%w: dial tcp: connection refused", ErrRemoteUnavailable)

	httpErr := MapErrorToHTTP(wrapped)
	if httpErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected wrapped error to map to 502, got %d", httpErr.StatusCode)
	}
}
