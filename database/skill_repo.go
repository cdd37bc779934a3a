package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/errs"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

func (r *SkillRepo) FindAll(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&skills).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "skills", err)
	}
	return skills, nil
}

func (r *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("skill")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("load", "skill", err)
	}
	return &skill, nil
}

func (r *SkillRepo) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return errs.NewDatabaseError("create", "skill", err)
	}
	return nil
}

func (r *SkillRepo) Update(ctx context.Context, skill *models.Skill) error {
	res := r.db.WithContext(ctx).Model(skill).Select("*").Omit("id").Updates(skill)
	if res.Error != nil {
		return errs.NewDatabaseError("update", "skill", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("skill")
	}
	return nil
}

func (r *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Skill{}, "id = ?", id)
	if res.Error != nil {
		return errs.NewDatabaseError("delete", "skill", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("skill")
	}
	return nil
}
