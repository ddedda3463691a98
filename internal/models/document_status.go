package models

import "time"

// DocumentStatus gates public visibility: a document is publicly visible
// if and only if its status has IsPublished set.
type DocumentStatus struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Slug        string  `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Color       *string `gorm:"size:50" json:"color"`
	Description *string `gorm:"type:text" json:"description"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	IsPublished bool    `gorm:"default:false" json:"is_published"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Documents []Document `gorm:"foreignKey:DocumentStatusID" json:"documents,omitempty"`
}

func (DocumentStatus) TableName() string {
	return "document_statuses"
}
