package models

import (
	"strings"
	"time"
)

// Subject is a legal subject classification. Subjects form a tree via
// ParentID; the ancestor chain is expected to be finite (no cycles).
type Subject struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Slug        string  `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	Code        *string `gorm:"size:50" json:"code"`
	ParentID    *uint   `gorm:"index" json:"parent_id"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parent    *Subject   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children  []Subject  `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Documents []Document `gorm:"many2many:document_subject;" json:"documents,omitempty"`

	// Computed
	DocumentsCount int64 `gorm:"->;-:migration" json:"documents_count,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}

// Breadcrumb builds the root-to-leaf name path. It walks preloaded Parent
// links only; an unloaded parent terminates the walk.
func (s *Subject) Breadcrumb() string {
	path := []string{s.Name}
	parent := s.Parent
	for parent != nil {
		path = append([]string{parent.Name}, path...)
		parent = parent.Parent
	}
	return strings.Join(path, " > ")
}
