package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-studio-backend/content"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contentHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *content.Store
}

func newContentHandler(store *content.Store) contentHandler {
	logger := log.With().Str("handlerName", "contentHandler").Logger()

	return contentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

type updateContentRequest struct {
	Value *string `json:"value" validate:"required"`
}

type updateTestimonialRequest struct {
	Field string `json:"field" validate:"required,oneof=text author role avatar"`
	Value string `json:"value"`
}

// getContent
// @Summary Site content
// @Tags Content
// @Produce json
// @Success 200 {object} content.Content
// @Router /content [get]
func (h contentHandler) getContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.store.Snapshot())
	}
}

// updateContent sets one key. The write to storage happens in the background.
// @Summary Update content key
// @Tags Content
// @Accept json
// @Produce json
// @Param key path string true "Content key"
// @Param value body updateContentRequest true "New value"
// @Success 200 {object} content.Content
// @Failure 404 {object} ErrorResponse "Unknown key"
// @Router /content/{key} [put]
func (h contentHandler) updateContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := content.ParseKey(chi.URLParam(r, "key"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateContentRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}

		if err := h.store.Update(key, *req.Value); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.store.Snapshot())
	}
}

// addTestimonial
// @Summary Add testimonial
// @Tags Content
// @Produce json
// @Success 201 {object} content.Testimonial
// @Router /content/testimonials [post]
func (h contentHandler) addTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteCreated(w, h.store.AddTestimonial())
	}
}

// updateTestimonial
// @Summary Edit one testimonial field
// @Tags Content
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Param change body updateTestimonialRequest true "Field and value"
// @Success 200 {object} content.Testimonial
// @Router /content/testimonials/{id} [put]
func (h contentHandler) updateTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateTestimonialRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}

		t, err := h.store.UpdateTestimonial(chi.URLParam(r, "id"), req.Field, req.Value)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, t)
	}
}

// deleteTestimonial
// @Summary Delete testimonial
// @Tags Content
// @Success 204
// @Router /content/testimonials/{id} [delete]
func (h contentHandler) deleteTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.DeleteTestimonial(chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
