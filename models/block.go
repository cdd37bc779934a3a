package models

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/layout"
)

// Block is one media item in a project's gallery. Position is the 0-based
// index within the project and is rewritten on every commit.
type Block struct {
	ProjectID uuid.UUID   `json:"-" db:"project_id" gorm:"type:uuid;primaryKey;not null;index:idx_project_blocks_order,priority:1"`
	ID        string      `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	URL       string      `json:"url" db:"url" gorm:"type:text;not null"`
	Size      layout.Size `json:"size" db:"size" gorm:"type:text;not null;default:'square'"`
	Type      MediaType   `json:"type" db:"type" gorm:"type:text;not null;default:'image'"`
	Position  int         `json:"position" db:"sort_order" gorm:"column:sort_order;type:integer;not null;index:idx_project_blocks_order,priority:2"`
}

func (Block) TableName() string {
	return "project_blocks"
}
