package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-studio-backend/errs"
	"github.com/rpupo63/portfolio-studio-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// mediaUploader stores validated media and returns its public URL.
type mediaUploader interface {
	Upload(ctx context.Context, data []byte, category storage.Category) (string, error)
}

type uploadHandler struct {
	responder      Responder
	logger         zerolog.Logger
	uploader       mediaUploader
	maxUploadBytes int64
}

func newUploadHandler(uploader mediaUploader, maxUploadBytes int64) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		uploader:       uploader,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadResponse carries the public URL of stored media.
type UploadResponse struct {
	URL string `json:"url"`
}

// uploadMedia stores a file outside any project, e.g. the hero image or a testimonial avatar
// @Summary Upload media
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param category path string true "image, video, hero or avatar"
// @Param file formData file true "Media file"
// @Success 201 {object} UploadResponse
// @Failure 415 {object} ErrorResponse "File type not allowed"
// @Router /upload/{category} [post]
func (h uploadHandler) uploadMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := storage.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("category", err.Error()))
			return
		}

		data, _, ok := readUpload(w, r, h.responder, h.maxUploadBytes)
		if !ok {
			return
		}

		url, err := h.uploader.Upload(r.Context(), data, category)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteCreated(w, UploadResponse{URL: url})
	}
}
