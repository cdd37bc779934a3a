package api

import (
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-studio-backend/auth"
	"github.com/rpupo63/portfolio-studio-backend/content"
	"github.com/rpupo63/portfolio-studio-backend/editor"
	"github.com/rpupo63/portfolio-studio-backend/errs"
	"github.com/rpupo63/portfolio-studio-backend/portfolio"
	"github.com/rpupo63/portfolio-studio-backend/services"
	"github.com/rpupo63/portfolio-studio-backend/skills"
	"github.com/rpupo63/portfolio-studio-backend/storage"
)

// domainStatus assigns HTTP statuses to the domain sentinels.
var domainStatus = []struct {
	target error
	status int
	field  string
}{
	{editor.ErrLastBlock, http.StatusConflict, "blocks"},
	{editor.ErrBlockNotFound, http.StatusNotFound, "blockID"},
	{editor.ErrNotPermutation, http.StatusBadRequest, "order"},
	{editor.ErrInvalidSize, http.StatusBadRequest, "size"},
	{editor.ErrInvalidFields, http.StatusBadRequest, ""},
	{editor.ErrEmptyImport, http.StatusBadRequest, "refs"},
	{editor.ErrUploadInFlight, http.StatusConflict, "blockID"},
	{editor.ErrNotOpen, http.StatusNotFound, "projectID"},
	{portfolio.ErrInvalidInput, http.StatusBadRequest, ""},
	{portfolio.ErrNoSession, http.StatusBadRequest, clientSessionHeader},
	{content.ErrUnknownKey, http.StatusNotFound, "key"},
	{content.ErrUnknownField, http.StatusBadRequest, "field"},
	{content.ErrTestimonialNotFound, http.StatusNotFound, "id"},
	{content.ErrInvalidTestimonials, http.StatusBadRequest, "value"},
	{skills.ErrInvalidInput, http.StatusBadRequest, ""},
	{skills.ErrImageNotFound, http.StatusNotFound, "url"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, ""},
	{auth.ErrInvalidToken, http.StatusUnauthorized, ""},
	{auth.ErrExpiredToken, http.StatusUnauthorized, ""},
	{auth.ErrNotConfigured, http.StatusServiceUnavailable, ""},
	{services.ErrNothingToImport, http.StatusBadRequest, "refs"},
	{services.ErrNoMediaFound, http.StatusUnprocessableEntity, "galleryUrl"},
	{storage.ErrEmptyFile, http.StatusBadRequest, "file"},
	{storage.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "file"},
	{storage.ErrInvalidMimeType, http.StatusUnsupportedMediaType, "file"},
}

// mapError turns domain errors into *errs.ApiErr. Errors that already are
// API errors, and unknown errors, are returned unchanged.
func mapError(err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr
	}
	for _, d := range domainStatus {
		if errors.Is(err, d.target) {
			return errs.Wrap(d.status, err, d.field)
		}
	}
	return err
}
