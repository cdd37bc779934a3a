package editor

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rpupo63/portfolio-studio-backend/storage"
)

// Store is the persistence side of the editor.
type Store interface {
	// FindByID loads a project with its blocks ordered by position.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)

	// ReplaceProjectBlocks writes the scalar fields and replaces every block
	// row of the project with blocks, in one unit of work.
	ReplaceProjectBlocks(ctx context.Context, projectID uuid.UUID, fields models.ProjectFields, blocks []models.Block) error
}

// Uploader stores media bytes and returns a public reference.
type Uploader interface {
	Upload(ctx context.Context, data []byte, category storage.Category) (string, error)
}
