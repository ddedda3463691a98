package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jdihkota/jdih-api/internal/models"
	"github.com/jdihkota/jdih-api/internal/services"
	"gorm.io/gorm"
)

// SearchIndex is the slice of the search service the admin maintenance
// path needs. Satisfied by *services.SearchService.
type SearchIndex interface {
	DeleteDocument(documentID uint) error
}

// FileRemover is the slice of the storage service the admin maintenance
// path needs. Satisfied by *services.StorageService.
type FileRemover interface {
	DeleteFile(ctx context.Context, path string) error
}

// AdminDeleteDocument tombstones a document and retires its search index
// entry and stored file. The tombstone alone removes the document from
// every public surface; index and storage cleanup are best effort.
func AdminDeleteDocument(db *gorm.DB, search SearchIndex, storage FileRemover) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			respondError(c, services.ErrNotFound)
			return
		}

		var document models.Document
		if err := db.First(&document, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, services.ErrNotFound)
				return
			}
			respondError(c, err)
			return
		}

		if err := db.Delete(&document).Error; err != nil {
			respondError(c, err)
			return
		}

		if err := search.DeleteDocument(document.ID); err != nil {
			log.Printf("Failed to remove document %d from search index: %v", document.ID, err)
		}

		if document.FilePath != nil && *document.FilePath != "" {
			if err := storage.DeleteFile(c.Request.Context(), *document.FilePath); err != nil {
				log.Printf("Failed to remove file for document %d: %v", document.ID, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
