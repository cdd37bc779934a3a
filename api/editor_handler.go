package api

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-studio-backend/editor"
	"github.com/rpupo63/portfolio-studio-backend/errs"
	"github.com/rpupo63/portfolio-studio-backend/layout"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rpupo63/portfolio-studio-backend/portfolio"
	"github.com/rpupo63/portfolio-studio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type editorHandler struct {
	responder      Responder
	logger         zerolog.Logger
	editors        *editor.Registry
	projects       *portfolio.Service
	importer       *services.Importer
	maxUploadBytes int64
}

func newEditorHandler(editors *editor.Registry, projects *portfolio.Service, importer *services.Importer, maxUploadBytes int64) editorHandler {
	logger := log.With().Str("handlerName", "editorHandler").Logger()

	return editorHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		editors:        editors,
		projects:       projects,
		importer:       importer,
		maxUploadBytes: maxUploadBytes,
	}
}

type addBlockRequest struct {
	Type string `json:"type" validate:"omitempty,media_type"`
}

type reorderRequest struct {
	Order []string `json:"order" validate:"required,min=1,dive,required"`
}

type setSizeRequest struct {
	Size string `json:"size" validate:"required,size_tag"`
}

type replaceMediaRequest struct {
	URL  string `json:"url" validate:"required"`
	Type string `json:"type" validate:"omitempty,media_type"`
}

type importRequest struct {
	Refs           []string `json:"refs"`
	GalleryURL     string   `json:"galleryUrl" validate:"omitempty,http_url"`
	Size           string   `json:"size" validate:"omitempty,size_tag"`
	Type           string   `json:"type" validate:"omitempty,media_type"`
	AcceptFallback bool     `json:"acceptFallback"`
}

// ImportFallbackResponse is returned when a gallery could not be read. The
// client may retry with acceptFallback to import the raw reference instead.
type ImportFallbackResponse struct {
	Error    string   `json:"error"`
	Status   string   `json:"status"`
	Source   string   `json:"source"`
	Fallback []string `json:"fallback"`
}

// session resolves the open editor for the projectID path parameter.
func (h editorHandler) session(w http.ResponseWriter, r *http.Request) (*editor.Editor, bool) {
	projectID, ok := urlUUID(w, r, h.responder, "projectID")
	if !ok {
		return nil, false
	}
	e, err := h.editors.Get(projectID)
	if err != nil {
		h.responder.WriteError(w, err)
		return nil, false
	}
	return e, true
}

// openEditor
// @Summary Open editor session
// @Tags Editor
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} editor.State
// @Router /project/{projectID}/editor [post]
func (h editorHandler) openEditor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := urlUUID(w, r, h.responder, "projectID")
		if !ok {
			return
		}
		e, err := h.editors.Open(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, e.State())
	}
}

// getState
// @Summary Editor state
// @Tags Editor
// @Produce json
// @Success 200 {object} editor.State
// @Router /project/{projectID}/editor [get]
func (h editorHandler) getState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, e.State())
	}
}

// closeEditor drops the session and any uncommitted changes
// @Summary Close editor session
// @Tags Editor
// @Success 204
// @Router /project/{projectID}/editor [delete]
func (h editorHandler) closeEditor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := urlUUID(w, r, h.responder, "projectID")
		if !ok {
			return
		}
		h.editors.Close(projectID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// addBlock
// @Summary Append a placeholder block
// @Tags Editor
// @Accept json
// @Produce json
// @Param block body addBlockRequest false "Media type"
// @Success 201 {object} models.Block
// @Router /project/{projectID}/editor/blocks [post]
func (h editorHandler) addBlock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}

		var req addBlockRequest
		if r.ContentLength != 0 && !decodeAndValidate(w, r, h.responder, &req) {
			return
		}

		h.responder.WriteCreated(w, e.AddBlock(models.MediaType(req.Type).Normalize()))
	}
}

// deleteBlock
// @Summary Delete a block
// @Tags Editor
// @Produce json
// @Success 200 {object} editor.State
// @Failure 409 {object} ErrorResponse "Last block"
// @Router /project/{projectID}/editor/blocks/{blockID} [delete]
func (h editorHandler) deleteBlock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}
		if err := e.DeleteBlock(chi.URLParam(r, "blockID")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, e.State())
	}
}

// reorder
// @Summary Reorder blocks
// @Tags Editor
// @Accept json
// @Produce json
// @Param order body reorderRequest true "Every block id in the new order"
// @Success 200 {object} editor.State
// @Router /project/{projectID}/editor/order [put]
func (h editorHandler) reorder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}
		var req reorderRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}
		if err := e.Reorder(req.Order); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, e.State())
	}
}

// setSize
// @Summary Set block size
// @Tags Editor
// @Accept json
// @Produce json
// @Param size body setSizeRequest true "square, wide, tall or big"
// @Success 200 {object} editor.State
// @Router /project/{projectID}/editor/blocks/{blockID}/size [put]
func (h editorHandler) setSize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}
		var req setSizeRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}
		if err := e.SetSize(chi.URLParam(r, "blockID"), layout.Size(req.Size)); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, e.State())
	}
}

// replaceMedia
// @Summary Point a block at a new media reference
// @Tags Editor
// @Accept json
// @Produce json
// @Param media body replaceMediaRequest true "Reference and type"
// @Success 200 {object} editor.State
// @Router /project/{projectID}/editor/blocks/{blockID}/media [put]
func (h editorHandler) replaceMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}
		var req replaceMediaRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}
		if err := e.ReplaceMedia(chi.URLParam(r, "blockID"), req.URL, models.MediaType(req.Type).Normalize()); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, e.State())
	}
}

// upload stores a file and points the block at it
// @Summary Upload block media
// @Tags Editor
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Media file"
// @Param type formData string false "image or video"
// @Success 200 {object} models.Block
// @Failure 409 {object} ErrorResponse "Upload already in progress"
// @Router /project/{projectID}/editor/blocks/{blockID}/upload [post]
func (h editorHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}

		data, fields, ok := readUpload(w, r, h.responder, h.maxUploadBytes)
		if !ok {
			return
		}

		mediaType, err := models.ParseMediaType(fields.Get("type"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("type", err.Error()))
			return
		}

		block, err := e.Upload(r.Context(), chi.URLParam(r, "blockID"), data, mediaType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, block)
	}
}

// importBatch appends blocks from direct references or a gallery page
// @Summary Bulk import
// @Tags Editor
// @Accept json
// @Produce json
// @Param import body importRequest true "References or gallery URL"
// @Success 201 {array} models.Block
// @Failure 422 {object} ImportFallbackResponse "Gallery unreadable"
// @Router /project/{projectID}/editor/import [post]
func (h editorHandler) importBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}
		var req importRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}

		refs, err := h.importer.Resolve(r.Context(), services.ImportRequest{Refs: req.Refs, GalleryURL: req.GalleryURL})
		var parseErr *services.ParseError
		switch {
		case errors.As(err, &parseErr) && req.AcceptFallback:
			refs = parseErr.Fallback
		case errors.As(err, &parseErr):
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnprocessableEntity)
			h.responder.WriteJSON(w, ImportFallbackResponse{
				Error:    parseErr.Error(),
				Status:   "error",
				Source:   parseErr.Source,
				Fallback: parseErr.Fallback,
			})
			return
		case err != nil:
			h.responder.WriteError(w, err)
			return
		}

		size := layout.Square
		if req.Size != "" {
			size = layout.Size(req.Size)
		}
		added, err := e.ImportBatch(refs, size, models.MediaType(req.Type).Normalize())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteCreated(w, added)
	}
}

// setFields
// @Summary Edit project fields in the session
// @Tags Editor
// @Accept json
// @Produce json
// @Param fields body updateProjectRequest true "Fields to change"
// @Success 200 {object} editor.State
// @Router /project/{projectID}/editor/fields [patch]
func (h editorHandler) setFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}
		var req updateProjectRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}
		if err := e.SetFields(req.fields()); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, e.State())
	}
}

// commit persists the session and updates the catalog
// @Summary Commit
// @Tags Editor
// @Produce json
// @Success 200 {object} editor.State
// @Router /project/{projectID}/editor/commit [post]
func (h editorHandler) commit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}
		project, err := e.Commit(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.projects.Committed(project)
		if session := ctxGetSession(r.Context()); session != nil {
			h.logger.Info().Str("owner", session.Email).Str("projectID", project.ID.String()).Int("blocks", len(project.Blocks)).Msg("editor commit")
		}
		h.responder.WriteJSON(w, e.State())
	}
}

// reload discards local changes
// @Summary Reload from storage
// @Tags Editor
// @Produce json
// @Success 200 {object} editor.State
// @Router /project/{projectID}/editor/reload [post]
func (h editorHandler) reload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := h.session(w, r)
		if !ok {
			return
		}
		if err := e.Reload(r.Context()); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, e.State())
	}
}

// readUpload reads the "file" part of a multipart request, capped at limit bytes.
func readUpload(w http.ResponseWriter, r *http.Request, responder Responder, limit int64) ([]byte, url.Values, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+(1<<20))
	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			responder.WriteError(w, errs.NewMaxBodySizeExceededError(limit))
			return nil, nil, false
		}
		responder.WriteError(w, errs.NewBadRequestErrorWithField("malformed multipart body", "file", err.Error()))
		return nil, nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		responder.WriteError(w, errs.NewInternalErrorWithCause("read upload", err))
		return nil, nil, false
	}
	if int64(len(data)) > limit {
		responder.WriteError(w, errs.NewMaxBodySizeExceededError(limit))
		return nil, nil, false
	}
	return data, url.Values(r.MultipartForm.Value), true
}
