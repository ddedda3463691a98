package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jdihkota/jdih-api/internal/models"
	"gorm.io/gorm"
)

// ListSyncLogs exposes the JDIHN sync log for inspection. The sync engine
// itself runs as a separate process; this endpoint only reads.
func ListSyncLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		perPage := 50

		query := db.Model(&models.SyncLog{})

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		if documentID := c.Query("document_id"); documentID != "" {
			id, err := strconv.ParseUint(documentID, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "VALIDATION_ERROR",
						"message": "document_id: must be an integer",
					},
				})
				return
			}
			query = query.Where("document_id = ?", uint(id))
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			respondError(c, err)
			return
		}

		var logs []models.SyncLog
		err := query.
			Preload("Document").
			Order("created_at DESC, id DESC").
			Limit(perPage).
			Offset((page - 1) * perPage).
			Find(&logs).Error
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    logs,
			"pagination": gin.H{
				"page":     page,
				"per_page": perPage,
				"total":    total,
			},
		})
	}
}
