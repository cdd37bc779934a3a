package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/editor"
	"github.com/rpupo63/portfolio-studio-backend/errs"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rpupo63/portfolio-studio-backend/portfolio"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const clientSessionHeader = "X-Client-Session"

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *portfolio.Service
	likes     *portfolio.LikeService
	editors   *editor.Registry
}

func newProjectHandler(projects *portfolio.Service, likes *portfolio.LikeService, editors *editor.Registry) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		likes:     likes,
		editors:   editors,
	}
}

// ProjectCollection is the reflowed catalog.
type ProjectCollection struct {
	Projects []ProjectView `json:"projects"`
	Total    int           `json:"total"`
}

// ProjectView is a project with its resolved display image.
type ProjectView struct {
	models.Project
	DisplayImage string `json:"displayImage"`
}

func viewOf(p models.Project) ProjectView {
	return ProjectView{Project: p, DisplayImage: p.DisplayImage()}
}

type createProjectRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Category    string `json:"category" validate:"max=100"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	CoverImage  *string `json:"coverImage,omitempty"`
	LayoutMode  *string `json:"layoutMode,omitempty" validate:"omitempty,layout_mode"`
	Gap         *int    `json:"gap,omitempty" validate:"omitempty,gte=0,lte=64"`
}

func (req updateProjectRequest) fields() models.ProjectFields {
	fields := models.ProjectFields{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Gap:         req.Gap,
	}
	if req.LayoutMode != nil {
		mode := models.LayoutMode(*req.LayoutMode).Normalize()
		fields.LayoutMode = &mode
	}
	return fields
}

// LikeResponse reports the like count after a like.
type LikeResponse struct {
	Likes   int  `json:"likes"`
	Counted bool `json:"counted"`
}

// urlUUID parses a uuid path parameter, writing a 400 when it is malformed.
func urlUUID(w http.ResponseWriter, r *http.Request, responder Responder, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		responder.WriteError(w, errs.NewMissingRequiredFieldError(name))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		responder.WriteError(w, errs.NewInvalidFieldError(name, "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// getAllProjects returns the catalog in display order with layout tags
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {object} ProjectCollection
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects := h.projects.Catalog().Projects()

		views := make([]ProjectView, 0, len(projects))
		for _, p := range projects {
			views = append(views, viewOf(p))
		}

		h.responder.WriteJSON(w, ProjectCollection{Projects: views, Total: len(views)})
	}
}

// getProject
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} ProjectView
// @Failure 400 {object} ErrorResponse "Invalid projectID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := urlUUID(w, r, h.responder, "projectID")
		if !ok {
			return
		}

		if project, ok := h.projects.Catalog().Get(projectID); ok {
			h.responder.WriteJSON(w, viewOf(project))
			return
		}

		project, err := h.projects.Get(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, viewOf(*project))
	}
}

// createProject creates a project with a placeholder cover and block
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body createProjectRequest true "Project data"
// @Success 201 {object} ProjectView
// @Failure 400 {object} ErrorResponse "Invalid project data"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}

		project, err := h.projects.Create(r.Context(), portfolio.CreateRequest{
			Title:       req.Title,
			Category:    req.Category,
			Description: req.Description,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, viewOf(project))
	}
}

// updateProject
// @Summary Update project fields
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param fields body updateProjectRequest true "Fields to change"
// @Success 200 {object} ProjectView
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := urlUUID(w, r, h.responder, "projectID")
		if !ok {
			return
		}

		var req updateProjectRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}

		project, err := h.projects.UpdateFields(r.Context(), projectID, req.fields())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, viewOf(project))
	}
}

// deleteProject removes the project and reflows the catalog
// @Summary Delete project
// @Tags Projects
// @Param projectID path string true "Project ID" format(uuid)
// @Success 204
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := urlUUID(w, r, h.responder, "projectID")
		if !ok {
			return
		}

		h.editors.Close(projectID)
		if err := h.projects.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// likeProject counts one like per client session
// @Summary Like project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param X-Client-Session header string true "Anonymous client session"
// @Success 200 {object} LikeResponse
// @Router /project/{projectID}/like [post]
func (h projectHandler) likeProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := urlUUID(w, r, h.responder, "projectID")
		if !ok {
			return
		}

		likes, counted, err := h.likes.Like(r.Context(), projectID, r.Header.Get(clientSessionHeader))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, LikeResponse{Likes: likes, Counted: counted})
	}
}
