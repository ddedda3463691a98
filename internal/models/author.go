package models

import "time"

type Author struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Slug        string  `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Institution *string `gorm:"size:255" json:"institution"`
	Position    *string `gorm:"size:255" json:"position"`
	Bio         *string `gorm:"type:text" json:"bio"`
	Email       *string `gorm:"size:255" json:"email"`
	Phone       *string `gorm:"size:50" json:"phone"`
	Website     *string `gorm:"size:255" json:"website"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Documents []Document `gorm:"many2many:document_author;" json:"documents,omitempty"`

	// Computed
	DocumentsCount int64 `gorm:"->;-:migration" json:"documents_count,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

// DisplayName returns the author name with institution appended when known.
func (a *Author) DisplayName() string {
	if a.Institution != nil && *a.Institution != "" {
		return a.Name + " (" + *a.Institution + ")"
	}
	return a.Name
}
