package models

// SiteSetting is one persisted page-copy entry
type SiteSetting struct {
	Key   string `json:"key" db:"key" gorm:"type:text;primaryKey;not null"`
	Value string `json:"value" db:"value" gorm:"type:text;not null;default:''"`
}
