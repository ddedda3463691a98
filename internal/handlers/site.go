package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdihkota/jdih-api/internal/models"
	"github.com/jdihkota/jdih-api/internal/services"
	"gorm.io/gorm"
)

const documentsCountSelect = "(SELECT COUNT(*) FROM documents WHERE documents.document_type_id = document_types.id AND documents.deleted_at IS NULL)"

const publishedCountSelect = "(SELECT COUNT(*) FROM documents JOIN document_statuses ON document_statuses.id = documents.document_status_id WHERE documents.document_type_id = document_types.id AND documents.deleted_at IS NULL AND document_statuses.is_published = ?)"

// Home aggregates the landing page payload: counters, the busiest types,
// featured picks and the latest publications.
func Home(db *gorm.DB, documentService *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalDocuments, totalTypes, totalSubjects, thisMonth int64
		db.Model(&models.Document{}).Count(&totalDocuments)
		db.Model(&models.DocumentType{}).Count(&totalTypes)
		db.Model(&models.Subject{}).Count(&totalSubjects)

		monthStart := time.Now().UTC()
		monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC)
		db.Model(&models.Document{}).Where("created_at >= ?", monthStart).Count(&thisMonth)

		var documentTypes []models.DocumentType
		if err := db.Model(&models.DocumentType{}).
			Select("document_types.*, " + documentsCountSelect + " AS documents_count").
			Order("documents_count DESC").
			Limit(8).
			Find(&documentTypes).Error; err != nil {
			respondError(c, err)
			return
		}

		featured, err := documentService.FindFeatured(6)
		if err != nil {
			respondError(c, err)
			return
		}

		latest, err := documentService.FindLatest(10)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"stats": gin.H{
					"total_documents": totalDocuments,
					"total_types":     totalTypes,
					"total_subjects":  totalSubjects,
					"this_month":      thisMonth,
				},
				"document_types":     documentTypes,
				"featured_documents": featured,
				"latest_documents":   latest,
			},
		})
	}
}

// ListDocumentTypes returns the active types with their document counts.
func ListDocumentTypes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var documentTypes []models.DocumentType
		err := db.Model(&models.DocumentType{}).
			Select("document_types.*, "+documentsCountSelect+" AS documents_count").
			Where("document_types.is_active = ?", true).
			Order("document_types.sort_order ASC, document_types.name ASC").
			Find(&documentTypes).Error
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": documentTypes})
	}
}

// ListSubjects returns the active root subjects with their children
// preloaded, ordered for display.
func ListSubjects(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var subjects []models.Subject
		err := db.Model(&models.Subject{}).
			Select("subjects.*, (SELECT COUNT(*) FROM document_subject WHERE document_subject.subject_id = subjects.id) AS documents_count").
			Where("subjects.is_active = ? AND subjects.parent_id IS NULL", true).
			Preload("Children", func(db *gorm.DB) *gorm.DB {
				return db.Where("is_active = ?", true).Order("sort_order ASC, name ASC")
			}).
			Order("subjects.sort_order ASC, subjects.name ASC").
			Find(&subjects).Error
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": subjects})
	}
}

// ListDocumentYears returns the publication years available as search
// filters, newest first.
func ListDocumentYears(documentService *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		years, err := documentService.ListYears()
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": years})
	}
}

// ListAuthors returns active authors ordered by name, 50 per page.
func ListAuthors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		perPage := 50

		var total int64
		if err := db.Model(&models.Author{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
			respondError(c, err)
			return
		}

		var authors []models.Author
		err := db.Model(&models.Author{}).
			Select("authors.*, (SELECT COUNT(*) FROM document_author WHERE document_author.author_id = authors.id) AS documents_count").
			Where("authors.is_active = ?", true).
			Order("authors.name ASC").
			Limit(perPage).
			Offset((page - 1) * perPage).
			Find(&authors).Error
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    authors,
			"pagination": gin.H{
				"page":     page,
				"per_page": perPage,
				"total":    total,
			},
		})
	}
}

// Statistics summarizes the published catalog for the public API.
func Statistics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalDocuments, totalTypes, totalSubjects, totalAuthors int64

		err := db.Model(&models.Document{}).
			Joins("JOIN document_statuses ON document_statuses.id = documents.document_status_id").
			Where("document_statuses.is_published = ?", true).
			Count(&totalDocuments).Error
		if err != nil {
			respondError(c, err)
			return
		}

		db.Model(&models.DocumentType{}).Where("is_active = ?", true).Count(&totalTypes)
		db.Model(&models.Subject{}).Where("is_active = ?", true).Count(&totalSubjects)
		db.Model(&models.Author{}).Where("is_active = ?", true).Count(&totalAuthors)

		var documentTypes []models.DocumentType
		err = db.Model(&models.DocumentType{}).
			Select("document_types.*, "+publishedCountSelect+" AS documents_count", true).
			Where("document_types.is_active = ?", true).
			Order("document_types.sort_order ASC").
			Find(&documentTypes).Error
		if err != nil {
			respondError(c, err)
			return
		}

		byType := make([]gin.H, 0, len(documentTypes))
		for _, documentType := range documentTypes {
			byType = append(byType, gin.H{
				"type":  documentType.Name,
				"slug":  documentType.Slug,
				"count": documentType.DocumentsCount,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"total_documents":   totalDocuments,
				"total_types":       totalTypes,
				"total_subjects":    totalSubjects,
				"total_authors":     totalAuthors,
				"documents_by_type": byType,
			},
		})
	}
}
