package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"carmarket/internal/metrics"
	"carmarket/internal/models"
	"carmarket/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

func multipartImage(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "car.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	svc := services.NewUploadService(nullBlobStore{}, metrics.Noop{})
	h := NewImageHandler(svc)

	body, contentType := multipartImage(t, "image", pngBytes)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	req = signedInRequest(req, &models.Session{UID: "uid-1", Name: "Ana"})

	rec := httptest.NewRecorder()
	h.UploadImage(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var img models.ListingImage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &img))
	assert.Equal(t, "uid-1", img.UID)
	_, err := uuid.Parse(img.Name)
	assert.NoError(t, err)
	assert.Contains(t, img.URL, "images/uid-1/")
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	svc := services.NewUploadService(nullBlobStore{}, metrics.Noop{})
	h := NewImageHandler(svc)

	body, contentType := multipartImage(t, "image", []byte("plain text pretending to be a photo"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	req = signedInRequest(req, &models.Session{UID: "uid-1", Name: "Ana"})

	rec := httptest.NewRecorder()
	h.UploadImage(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUploadImageMissingFile(t *testing.T) {
	svc := services.NewUploadService(nullBlobStore{}, metrics.Noop{})
	h := NewImageHandler(svc)

	body, contentType := multipartImage(t, "wrong_field", pngBytes)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	req = signedInRequest(req, &models.Session{UID: "uid-1", Name: "Ana"})

	rec := httptest.NewRecorder()
	h.UploadImage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
