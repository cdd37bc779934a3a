package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/layout"
)

// Project represents a portfolio entry with its ordered gallery blocks
type Project struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string     `json:"title" db:"title" gorm:"type:text;not null"`
	Category    string     `json:"category" db:"category" gorm:"type:text;not null;default:''"`
	Description string     `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	CoverImage  string     `json:"coverImage" db:"image" gorm:"column:image;type:text;not null;default:''"`
	LayoutMode  LayoutMode `json:"layoutMode" db:"layout_mode" gorm:"type:text;not null;default:'collage'"`
	Gap         int        `json:"gap" db:"gap" gorm:"type:integer;not null;default:8"`
	Likes       int        `json:"likes" db:"likes" gorm:"type:integer;not null;default:0"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP;index"`
	Blocks      []Block    `json:"blocks" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`

	// LayoutTag is recomputed from the project's position in the catalog and never stored.
	LayoutTag layout.Size `json:"layoutTag,omitempty" gorm:"-"`
}

// DefaultGap is the block spacing given to projects that never set one.
const DefaultGap = 8

// ProjectFields is a partial update of a project's scalar fields. Nil
// pointers leave the stored value untouched.
type ProjectFields struct {
	Title       *string     `json:"title,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Description *string     `json:"description,omitempty"`
	CoverImage  *string     `json:"coverImage,omitempty"`
	LayoutMode  *LayoutMode `json:"layoutMode,omitempty"`
	Gap         *int        `json:"gap,omitempty"`
}

// Apply copies every set field onto p.
func (f ProjectFields) Apply(p *Project) {
	if f.Title != nil {
		p.Title = *f.Title
	}
	if f.Category != nil {
		p.Category = *f.Category
	}
	if f.Description != nil {
		p.Description = *f.Description
	}
	if f.CoverImage != nil {
		p.CoverImage = *f.CoverImage
	}
	if f.LayoutMode != nil {
		p.LayoutMode = *f.LayoutMode
	}
	if f.Gap != nil {
		p.Gap = *f.Gap
	}
}

// Columns returns the set fields keyed by column name, for partial updates.
func (f ProjectFields) Columns() map[string]any {
	cols := make(map[string]any)
	if f.Title != nil {
		cols["title"] = *f.Title
	}
	if f.Category != nil {
		cols["category"] = *f.Category
	}
	if f.Description != nil {
		cols["description"] = *f.Description
	}
	if f.CoverImage != nil {
		cols["image"] = *f.CoverImage
	}
	if f.LayoutMode != nil {
		cols["layout_mode"] = *f.LayoutMode
	}
	if f.Gap != nil {
		cols["gap"] = *f.Gap
	}
	return cols
}

// FieldsOf captures every scalar field of p as a full ProjectFields value.
func FieldsOf(p Project) ProjectFields {
	mode := p.LayoutMode
	return ProjectFields{
		Title:       &p.Title,
		Category:    &p.Category,
		Description: &p.Description,
		CoverImage:  &p.CoverImage,
		LayoutMode:  &mode,
		Gap:         &p.Gap,
	}
}

// DisplayImage picks the image shown on the project's card: the cover
// unless it is a placeholder, else the first block with a real reference,
// else the placeholder cover itself.
func (p Project) DisplayImage() string {
	if !IsPlaceholder(p.CoverImage) {
		return p.CoverImage
	}
	for _, b := range p.Blocks {
		if !IsPlaceholder(b.URL) {
			return b.URL
		}
	}
	return p.CoverImage
}
