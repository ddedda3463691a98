package models

import "time"

type DocumentType struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"size:255;not null" json:"name"`
	Slug           string  `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description    *string `gorm:"type:text" json:"description"`
	Icon           *string `gorm:"size:255" json:"icon"`
	MetadataSchema *string `gorm:"type:text" json:"metadata_schema,omitempty"`
	IsActive       bool    `gorm:"default:true" json:"is_active"`
	SortOrder      int     `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Documents []Document `gorm:"foreignKey:DocumentTypeID" json:"documents,omitempty"`

	// Computed
	DocumentsCount int64 `gorm:"->;-:migration" json:"documents_count,omitempty"`
}

func (DocumentType) TableName() string {
	return "document_types"
}
