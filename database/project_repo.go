package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/errs"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func orderedBlocks(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

// FindAll returns every project, newest first, with blocks in position order
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Preload("Blocks", orderedBlocks).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, nil
}

// FindByID returns a project with its blocks. It reads from the primary
// so an editor never opens on a lagging replica.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Preload("Blocks", orderedBlocks).
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("load", "project", err)
	}
	return &project, nil
}

// Create inserts a project together with its initial blocks
func (r *ProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return errs.NewDatabaseError("create", "project", err)
	}
	return nil
}

// UpdateFields writes only the set scalar fields
func (r *ProjectRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields models.ProjectFields) error {
	cols := fields.Columns()
	if len(cols) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return errs.NewDatabaseError("update", "project", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return nil
}

// ReplaceProjectBlocks writes the scalar fields and swaps the stored block
// rows for blocks in a single transaction. Positions are taken from the
// slice order.
func (r *ProjectRepo) ReplaceProjectBlocks(ctx context.Context, projectID uuid.UUID, fields models.ProjectFields, blocks []models.Block) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).Where("id = ?", projectID).Updates(fields.Columns())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFound("project")
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.Block{}).Error; err != nil {
			return err
		}
		if len(blocks) == 0 {
			return nil
		}

		rows := make([]models.Block, len(blocks))
		for i, b := range blocks {
			b.ProjectID = projectID
			b.Position = i
			b.Type = b.Type.Normalize()
			rows[i] = b
		}
		return tx.Create(&rows).Error
	})
	if err == nil {
		return nil
	}

	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return errs.NewDatabaseError("save", "project blocks", err)
}

// Delete removes a project; its blocks go with it through the cascade
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return errs.NewDatabaseError("delete", "project", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return nil
}

// IncrementLikes adds one like in the database and returns the new count
func (r *ProjectRepo) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	var likes int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).
			Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFound("project")
		}
		return tx.Model(&models.Project{}).Where("id = ?", id).Pluck("likes", &likes).Error
	})
	if err != nil {
		var apiErr *errs.ApiErr
		if errors.As(err, &apiErr) {
			return 0, apiErr
		}
		return 0, errs.NewDatabaseError("like", "project", err)
	}
	return likes, nil
}
