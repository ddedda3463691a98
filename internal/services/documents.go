package services

import (
	"errors"
	"strings"
	"time"

	"github.com/jdihkota/jdih-api/internal/models"
	"gorm.io/gorm"
)

// SearchPageSize is the fixed page size of the public search surface.
const SearchPageSize = 20

// Feed pagination bounds (JDIHN contract).
const (
	FeedDefaultLimit = 100
	FeedMaxLimit     = 1000
	FeedMinYear      = 1945
)

// FeedDocumentTypes is the enumerated set of type slugs the JDIHN feed
// accepts as a filter.
var FeedDocumentTypes = map[string]bool{
	"peraturan": true,
	"putusan":   true,
	"monografi": true,
	"artikel":   true,
}

// SearchParams carries the public search surface's filters. All filters
// combine with AND; zero values mean "no filter".
type SearchParams struct {
	Query        string
	DocumentType string
	Subject      uint
	Year         int
	Sort         string
	Page         int
}

func (p *SearchParams) Validate() error {
	if p.Page < 0 {
		return &ValidationError{Field: "page", Message: "must be a positive integer"}
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Year < 0 {
		return &ValidationError{Field: "year", Message: "must be a positive integer"}
	}
	return nil
}

// FeedParams carries the JDIHN feed filters. Out-of-range values are
// rejected, never clamped.
type FeedParams struct {
	Limit        int
	Offset       int
	UpdatedSince *time.Time
	DocumentType string
	RegionCode   string
	Year         int
}

func (p *FeedParams) Validate() error {
	if p.Limit == 0 {
		p.Limit = FeedDefaultLimit
	}
	if p.Limit < 1 || p.Limit > FeedMaxLimit {
		return &ValidationError{Field: "limit", Message: "must be between 1 and 1000"}
	}
	if p.Offset < 0 {
		return &ValidationError{Field: "offset", Message: "must be zero or greater"}
	}
	if p.DocumentType != "" && !FeedDocumentTypes[p.DocumentType] {
		return &ValidationError{Field: "document_type", Message: "must be one of peraturan, putusan, monografi, artikel"}
	}
	if p.Year != 0 && p.Year < FeedMinYear {
		return &ValidationError{Field: "year", Message: "must be 1945 or later"}
	}
	return nil
}

// DocumentService is the read side of the document catalog: filtered
// listing, slug resolution, related lookups and the two counters. All
// administrative writes happen elsewhere.
type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

// published scopes a query to documents whose status is publicly visible.
// This is the sole visibility gate for search, feed and detail.
func (s *DocumentService) published() *gorm.DB {
	return s.db.Model(&models.Document{}).
		Joins("JOIN document_statuses ON document_statuses.id = documents.document_status_id").
		Where("document_statuses.is_published = ?", true)
}

// withRelations attaches the mandatory projection: type, ordered authors
// and subjects are batch-fetched for every result.
func withRelations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("DocumentType").
		Preload("Subjects").
		Preload("Authors", func(db *gorm.DB) *gorm.DB {
			return db.Order("document_author.sort_order ASC")
		})
}

func (s *DocumentService) searchQuery(params SearchParams) *gorm.DB {
	query := s.published()

	if params.Query != "" {
		term := "%" + strings.ToLower(params.Query) + "%"
		query = query.Where(
			"(LOWER(documents.title) LIKE ? OR LOWER(documents.content) LIKE ? OR LOWER(documents.abstract) LIKE ? OR LOWER(documents.keywords) LIKE ? OR LOWER(documents.document_number) LIKE ?)",
			term, term, term, term, term,
		)
	}

	// The public surface filters on the type's slug, not its numeric id.
	// An unknown slug matches nothing rather than erroring.
	if params.DocumentType != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM document_types WHERE document_types.id = documents.document_type_id AND document_types.slug = ?)",
			params.DocumentType,
		)
	}

	if params.Subject != 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM document_subject WHERE document_subject.document_id = documents.id AND document_subject.subject_id = ?)",
			params.Subject,
		)
	}

	if params.Year != 0 {
		query = yearRange(query, params.Year)
	}

	return query
}

// yearRange filters on the year component of published_date as a half-open
// date range. Documents without a published date never match.
func yearRange(query *gorm.DB, year int) *gorm.DB {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return query.Where("documents.published_date >= ? AND documents.published_date < ?", start, end)
}

// sortOrder maps a requested sort key to a deterministic ORDER BY.
// Unrecognized keys fall back to relevance (featured first, newest next).
func sortOrder(sort string) string {
	switch sort {
	case "date_desc":
		return "documents.published_date DESC, documents.id DESC"
	case "date_asc":
		return "documents.published_date ASC, documents.id ASC"
	case "title":
		return "LOWER(documents.title) ASC, documents.id ASC"
	case "views":
		return "documents.view_count DESC, documents.id DESC"
	default: // relevance
		return "documents.is_featured DESC, documents.published_date DESC, documents.id DESC"
	}
}

// FindPublished returns one page of published documents matching the
// filters, plus the total match count. An empty result is not an error.
func (s *DocumentService) FindPublished(params SearchParams) ([]models.Document, int64, error) {
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.searchQuery(params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []models.Document
	err := withRelations(s.searchQuery(params)).
		Order(sortOrder(params.Sort)).
		Limit(SearchPageSize).
		Offset((params.Page - 1) * SearchPageSize).
		Find(&documents).Error
	if err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

func (s *DocumentService) feedQuery(params FeedParams) *gorm.DB {
	query := s.published()

	if params.UpdatedSince != nil {
		query = query.Where("documents.updated_at >= ?", *params.UpdatedSince)
	}

	if params.DocumentType != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM document_types WHERE document_types.id = documents.document_type_id AND document_types.slug = ?)",
			params.DocumentType,
		)
	}

	// region_code is validated but intentionally not applied; the upstream
	// aggregator reserves it and no document field carries it yet.

	if params.Year != 0 {
		query = yearRange(query, params.Year)
	}

	return query
}

// FeedDocuments returns the JDIHN document feed page and the total count.
// Results are ordered by id so repeated identical calls are stable.
func (s *DocumentService) FeedDocuments(params FeedParams) ([]models.Document, int64, error) {
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.feedQuery(params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []models.Document
	err := withRelations(s.feedQuery(params)).
		Order("documents.id ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&documents).Error
	if err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

// FeedAbstracts returns the abstract-only feed: published documents whose
// abstract is present.
func (s *DocumentService) FeedAbstracts(params FeedParams) ([]models.Document, int64, error) {
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	base := func() *gorm.DB {
		return s.published().Where("documents.abstract IS NOT NULL")
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []models.Document
	err := base().
		Preload("DocumentType").
		Order("documents.id ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&documents).Error
	if err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

// FindByID resolves a published document by numeric id with the full
// projection attached.
func (s *DocumentService) FindByID(id uint) (*models.Document, error) {
	var document models.Document
	err := withRelations(s.published()).
		Preload("DocumentStatus").
		Where("documents.id = ?", id).
		First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &document, nil
}

// FindBySlugs resolves a published document via its type's slug plus its
// own slug; the document slug is scoped to the type.
func (s *DocumentService) FindBySlugs(typeSlug, documentSlug string) (*models.Document, error) {
	var documentType models.DocumentType
	if err := s.db.Where("slug = ?", typeSlug).First(&documentType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var document models.Document
	err := withRelations(s.published()).
		Preload("DocumentStatus").
		Where("documents.slug = ? AND documents.document_type_id = ?", documentSlug, documentType.ID).
		First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &document, nil
}

// FindRelated returns up to limit other published documents sharing the
// document's type or one of its subjects, newest first. Ties on the
// published date keep insertion order.
func (s *DocumentService) FindRelated(document *models.Document, limit int) ([]models.Document, error) {
	var subjectIDs []uint
	for _, subject := range document.Subjects {
		subjectIDs = append(subjectIDs, subject.ID)
	}

	query := s.published().Where("documents.id <> ?", document.ID)

	if len(subjectIDs) > 0 {
		query = query.Where(
			"(documents.document_type_id = ? OR EXISTS (SELECT 1 FROM document_subject WHERE document_subject.document_id = documents.id AND document_subject.subject_id IN ?))",
			document.DocumentTypeID, subjectIDs,
		)
	} else {
		query = query.Where("documents.document_type_id = ?", document.DocumentTypeID)
	}

	var related []models.Document
	err := query.
		Preload("DocumentType").
		Order("documents.published_date DESC, documents.id ASC").
		Limit(limit).
		Find(&related).Error
	if err != nil {
		return nil, err
	}
	return related, nil
}

// FindFeatured returns the newest featured published documents.
func (s *DocumentService) FindFeatured(limit int) ([]models.Document, error) {
	var documents []models.Document
	err := withRelations(s.published()).
		Where("documents.is_featured = ?", true).
		Order("documents.published_date DESC, documents.id DESC").
		Limit(limit).
		Find(&documents).Error
	return documents, err
}

// FindLatest returns the most recently published documents.
func (s *DocumentService) FindLatest(limit int) ([]models.Document, error) {
	var documents []models.Document
	err := withRelations(s.published()).
		Order("documents.published_date DESC, documents.created_at DESC, documents.id DESC").
		Limit(limit).
		Find(&documents).Error
	return documents, err
}

// ListYears returns the distinct publication years of published documents,
// newest first, for the search filter dropdown.
func (s *DocumentService) ListYears() ([]int, error) {
	var dates []time.Time
	err := s.published().
		Where("documents.published_date IS NOT NULL").
		Order("documents.published_date DESC").
		Pluck("documents.published_date", &dates).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var years []int
	for _, date := range dates {
		year := date.Year()
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}
	return years, nil
}

// IncrementViewCount bumps the view counter by one with a single UPDATE so
// concurrent increments are never lost, and returns the new value.
func (s *DocumentService) IncrementViewCount(id uint) (int64, error) {
	return s.incrementCounter(id, "view_count")
}

// IncrementDownloadCount bumps the download counter by one.
func (s *DocumentService) IncrementDownloadCount(id uint) (int64, error) {
	return s.incrementCounter(id, "download_count")
}

func (s *DocumentService) incrementCounter(id uint, column string) (int64, error) {
	result := s.db.Model(&models.Document{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var document models.Document
	if err := s.db.Select(column).First(&document, id).Error; err != nil {
		return 0, err
	}
	if column == "download_count" {
		return document.DownloadCount, nil
	}
	return document.ViewCount, nil
}
