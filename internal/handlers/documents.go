package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jdihkota/jdih-api/internal/services"
)

// ObjectStorage is the slice of the storage service the download path
// needs. Satisfied by *services.StorageService.
type ObjectStorage interface {
	OpenFile(ctx context.Context, path string) (io.ReadCloser, int64, error)
}

func parseSearchParams(c *gin.Context) (services.SearchParams, error) {
	var params services.SearchParams

	query, err := queryOne(c, "q")
	if err != nil {
		return params, err
	}
	params.Query = query

	documentType, err := queryOne(c, "document_type")
	if err != nil {
		return params, err
	}
	params.DocumentType = documentType

	subject, set, err := queryInt(c, "subject")
	if err != nil {
		return params, err
	}
	if set {
		if subject < 1 {
			return params, &services.ValidationError{Field: "subject", Message: "must be a positive integer"}
		}
		params.Subject = uint(subject)
	}

	year, _, err := queryInt(c, "year")
	if err != nil {
		return params, err
	}
	params.Year = year

	sort, err := queryOne(c, "sort")
	if err != nil {
		return params, err
	}
	params.Sort = sort

	page, _, err := queryInt(c, "page")
	if err != nil {
		return params, err
	}
	params.Page = page

	return params, nil
}

// SearchDocuments is the public search surface: filtered, sorted listing
// of published documents, 20 per page.
func SearchDocuments(documentService *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := parseSearchParams(c)
		if err != nil {
			respondError(c, err)
			return
		}

		documents, total, err := documentService.FindPublished(params)
		if err != nil {
			respondError(c, err)
			return
		}

		totalPages := total / services.SearchPageSize
		if total%services.SearchPageSize != 0 {
			totalPages++
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    documents,
			"pagination": gin.H{
				"page":        params.Page,
				"per_page":    services.SearchPageSize,
				"total":       total,
				"total_pages": totalPages,
			},
		})
	}
}

// GetDocument resolves a document by {typeSlug}/{documentSlug}, attaches
// related documents and bumps the view counter without holding up the
// response.
func GetDocument(documentService *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		document, err := documentService.FindBySlugs(c.Param("typeSlug"), c.Param("documentSlug"))
		if err != nil {
			respondError(c, err)
			return
		}

		related, err := documentService.FindRelated(document, 5)
		if err != nil {
			respondError(c, err)
			return
		}

		// View tracking is best effort; a failed increment never fails the
		// page.
		documentID := document.ID
		go func() {
			if _, err := documentService.IncrementViewCount(documentID); err != nil {
				log.Printf("Failed to increment view count for document %d: %v", documentID, err)
			}
		}()

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"document": document,
				"related":  related,
			},
		})
	}
}

// DownloadDocument streams the document's file with the title as the
// suggested filename. A missing file is a 404 and leaves the download
// counter untouched.
func DownloadDocument(documentService *services.DocumentService, storage ObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		document, err := documentService.FindBySlugs(c.Param("typeSlug"), c.Param("documentSlug"))
		if err != nil {
			respondError(c, err)
			return
		}

		if document.FilePath == nil || *document.FilePath == "" {
			respondError(c, services.ErrFileMissing)
			return
		}

		object, size, err := storage.OpenFile(c.Request.Context(), *document.FilePath)
		if err != nil {
			respondError(c, err)
			return
		}
		defer object.Close()

		// The file exists; count the download but never block the bytes.
		documentID := document.ID
		go func() {
			if _, err := documentService.IncrementDownloadCount(documentID); err != nil {
				log.Printf("Failed to increment download count for document %d: %v", documentID, err)
			}
		}()

		extraHeaders := map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=\"%s.%s\"", document.Title, document.FileFormat),
		}

		c.DataFromReader(http.StatusOK, size, document.MimeType, object, extraHeaders)
	}
}

// TrackView increments the view counter out-of-band, for detail pages
// rendered client-side, and acknowledges with the new count.
func TrackView(documentService *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			respondError(c, services.ErrNotFound)
			return
		}

		count, err := documentService.IncrementViewCount(uint(id))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"view_count": count,
		})
	}
}

// QuickSearch answers typeahead queries from the Meilisearch index.
func QuickSearch(searchService *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := searchService.Search(c.Query("q"), c.Query("type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Search failed",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Hits})
	}
}
