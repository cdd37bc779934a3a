package database

import (
	"context"

	"github.com/rpupo63/portfolio-studio-backend/errs"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) *SettingRepo {
	return &SettingRepo{db}
}

func (r *SettingRepo) FindAll(ctx context.Context) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	if err := r.db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "site settings", err)
	}
	return settings, nil
}

// Upsert writes value under key, inserting the row when missing
func (r *SettingRepo) Upsert(ctx context.Context, key, value string) error {
	setting := models.SiteSetting{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
	if err != nil {
		return errs.NewDatabaseError("save", "site setting", err)
	}
	return nil
}
