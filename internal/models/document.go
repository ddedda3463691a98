package models

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Title          string  `gorm:"size:255;not null" json:"title"`
	Abstract       *string `gorm:"type:text" json:"abstract"`
	DocumentNumber *string `gorm:"size:255;uniqueIndex" json:"document_number"`
	CallNumber     *string `gorm:"size:255" json:"call_number"`
	TEUNumber      *string `gorm:"size:255" json:"teu_number"`

	DocumentTypeID   uint  `gorm:"not null;index:idx_documents_type_status" json:"document_type_id"`
	DocumentStatusID uint  `gorm:"not null;index:idx_documents_type_status" json:"document_status_id"`
	CreatedBy        uint  `gorm:"not null" json:"created_by"`
	UpdatedBy        *uint `json:"updated_by"`

	Language string  `gorm:"size:10;default:'id'" json:"language"`
	Content  *string `gorm:"type:text" json:"content,omitempty"`
	Note     *string `gorm:"type:text" json:"note"`
	Source   *string `gorm:"size:255" json:"source"`
	Location *string `gorm:"size:255" json:"location"`

	// JDIHN compliance fields
	JdihnMetadata *string    `gorm:"type:text" json:"jdihn_metadata,omitempty"`
	JdihnLastSync *time.Time `json:"jdihn_last_sync,omitempty"`
	JdihnStatus   *string    `gorm:"size:255" json:"jdihn_status,omitempty"`
	JdihnID       *string    `gorm:"size:255;index" json:"jdihn_id,omitempty"`

	PublishedDate *time.Time `gorm:"type:date;index:idx_documents_published_featured" json:"published_date"`
	EffectiveDate *time.Time `gorm:"type:date" json:"effective_date"`
	ExpiredDate   *time.Time `gorm:"type:date" json:"expired_date"`

	// SEO and public fields
	Slug            string  `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	MetaDescription *string `gorm:"type:text" json:"meta_description"`
	Keywords        *string `gorm:"type:text" json:"keywords"`
	IsFeatured      bool    `gorm:"default:false;index:idx_documents_published_featured" json:"is_featured"`
	ViewCount       int64   `gorm:"default:0" json:"view_count"`
	DownloadCount   int64   `gorm:"default:0" json:"download_count"`

	// File attachment, served from object storage
	FilePath   *string `gorm:"size:500" json:"file_path,omitempty"`
	FileFormat string  `gorm:"size:10;default:'pdf'" json:"file_format"`
	FileSize   int64   `gorm:"default:0" json:"file_size"`
	MimeType   string  `gorm:"size:100;default:'application/pdf'" json:"mime_type"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	DocumentType   DocumentType   `gorm:"foreignKey:DocumentTypeID" json:"document_type,omitempty"`
	DocumentStatus DocumentStatus `gorm:"foreignKey:DocumentStatusID" json:"document_status,omitempty"`
	Authors        []Author       `gorm:"many2many:document_author;" json:"authors,omitempty"`
	Subjects       []Subject      `gorm:"many2many:document_subject;" json:"subjects,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

// PublishedYear returns the year component of the published date, or nil
// when the document has none.
func (d *Document) PublishedYear() *int {
	if d.PublishedDate == nil {
		return nil
	}
	year := d.PublishedDate.Year()
	return &year
}

// DocumentAuthor is the pivot between documents and authors. SortOrder
// governs display order, Role distinguishes primary authors from
// co-authors and editors.
type DocumentAuthor struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DocumentID uint      `gorm:"not null;uniqueIndex:idx_document_author" json:"document_id"`
	AuthorID   uint      `gorm:"not null;uniqueIndex:idx_document_author" json:"author_id"`
	SortOrder  int       `gorm:"default:0" json:"sort_order"`
	Role       *string   `gorm:"size:255" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (DocumentAuthor) TableName() string {
	return "document_author"
}

type DocumentSubject struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DocumentID uint      `gorm:"not null;uniqueIndex:idx_document_subject" json:"document_id"`
	SubjectID  uint      `gorm:"not null;uniqueIndex:idx_document_subject" json:"subject_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (DocumentSubject) TableName() string {
	return "document_subject"
}
