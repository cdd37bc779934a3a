package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Skill is a software card shown in the work section
type Skill struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Category    string                      `json:"category" db:"category" gorm:"type:text;not null;default:''"`
	Color       string                      `json:"color" db:"color" gorm:"type:text;not null;default:'#00c05e'"`
	Proficiency int                         `json:"proficiency" db:"proficiency" gorm:"type:integer;not null;default:50"`
	IconType    string                      `json:"iconType" db:"icon_type" gorm:"type:text;not null;default:'generic'"`
	Images      datatypes.JSONSlice[string] `json:"images" db:"images" gorm:"type:jsonb"`
	RandomOrder bool                        `json:"randomOrder" db:"random_order" gorm:"type:boolean;not null;default:false"`
	SortOrder   int                         `json:"sortOrder" db:"sort_order" gorm:"type:integer;not null;default:0"`
}
