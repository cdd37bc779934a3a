package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/models"
)

// Repository is the project persistence used by the catalog and services.
type Repository interface {
	FindAll(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields models.ProjectFields) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementLikes(ctx context.Context, id uuid.UUID) (int, error)
}
