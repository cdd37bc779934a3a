package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/layout"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CreateRequest carries the fields a new project starts with.
type CreateRequest struct {
	Title       string
	Category    string
	Description string
}

// Service creates, edits and deletes projects and keeps the catalog in step.
type Service struct {
	repo    Repository
	catalog *Catalog
	newID   func() uuid.UUID
	logger  zerolog.Logger
}

func NewService(repo Repository, catalog *Catalog) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		newID:   uuid.New,
		logger:  log.With().Str("component", "portfolio").Logger(),
	}
}

// Catalog returns the catalog the service maintains.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Get loads one project.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a project with a placeholder cover and a single placeholder
// image block. The project enters the catalog at once and the catalog is
// then reloaded from the repository.
func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Project{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	id := s.newID()
	project := models.Project{
		ID:          id,
		Title:       title,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		CoverImage:  models.PlaceholderCover,
		LayoutMode:  models.LayoutCollage,
		Gap:         models.DefaultGap,
		Blocks: []models.Block{{
			ProjectID: id,
			ID:        uuid.NewString(),
			URL:       models.PlaceholderImage,
			Size:      layout.Square,
			Type:      models.MediaImage,
			Position:  0,
		}},
	}

	if err := s.repo.Create(ctx, &project); err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("create project failed")
		return models.Project{}, err
	}

	s.catalog.Upsert(project)
	if _, err := s.catalog.Reload(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog refresh after create failed")
	}
	if tagged, ok := s.catalog.Get(project.ID); ok {
		return tagged, nil
	}
	return project, nil
}

// UpdateFields writes a partial update of scalar fields.
func (s *Service) UpdateFields(ctx context.Context, id uuid.UUID, fields models.ProjectFields) (models.Project, error) {
	if fields.Gap != nil && *fields.Gap < 0 {
		return models.Project{}, fmt.Errorf("%w: gap must not be negative", ErrInvalidInput)
	}
	if fields.Title != nil && strings.TrimSpace(*fields.Title) == "" {
		return models.Project{}, fmt.Errorf("%w: title must not be blank", ErrInvalidInput)
	}
	if fields.LayoutMode != nil {
		mode, err := models.ParseLayoutMode(string(*fields.LayoutMode))
		if err != nil {
			return models.Project{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		fields.LayoutMode = &mode
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		s.logger.Error().Err(err).Str("projectID", id.String()).Msg("update project failed")
		return models.Project{}, err
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	s.Committed(*project)
	if tagged, ok := s.catalog.Get(id); ok {
		return tagged, nil
	}
	return *project, nil
}

// Committed records a project saved through the editor in the catalog.
func (s *Service) Committed(project models.Project) {
	if _, ok := s.catalog.Get(project.ID); !ok {
		return
	}
	s.catalog.Upsert(project)
}

// Delete removes the project from the catalog, reflowing the rest, then
// deletes it from the repository. A repository failure is returned but the
// catalog is not restored; the next refresh reconciles it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.catalog.Remove(id)

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("projectID", id.String()).Msg("delete project failed")
		return err
	}
	return nil
}
