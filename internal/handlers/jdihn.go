package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdihkota/jdih-api/internal/jdihn"
	"github.com/jdihkota/jdih-api/internal/services"
)

// queryOne reads a single-valued query parameter. Repeating a parameter is
// a validation error, not last-wins.
func queryOne(c *gin.Context, name string) (string, error) {
	values := c.Request.URL.Query()[name]
	if len(values) > 1 {
		return "", &services.ValidationError{Field: name, Message: "must not be given more than once"}
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

func queryInt(c *gin.Context, name string) (int, bool, error) {
	value, err := queryOne(c, name)
	if err != nil {
		return 0, false, err
	}
	if value == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, &services.ValidationError{Field: name, Message: "must be an integer"}
	}
	return parsed, true, nil
}

func parseFeedParams(c *gin.Context) (services.FeedParams, error) {
	var params services.FeedParams

	limit, limitSet, err := queryInt(c, "limit")
	if err != nil {
		return params, err
	}
	// An explicit limit=0 is out of range, not "use the default".
	if limitSet && limit < 1 {
		return params, &services.ValidationError{Field: "limit", Message: "must be between 1 and 1000"}
	}
	params.Limit = limit

	offset, _, err := queryInt(c, "offset")
	if err != nil {
		return params, err
	}
	params.Offset = offset

	updatedSince, err := queryOne(c, "updated_since")
	if err != nil {
		return params, err
	}
	if updatedSince != "" {
		parsed, err := parseDate(updatedSince)
		if err != nil {
			return params, &services.ValidationError{Field: "updated_since", Message: "must be a valid date"}
		}
		params.UpdatedSince = &parsed
	}

	documentType, err := queryOne(c, "document_type")
	if err != nil {
		return params, err
	}
	params.DocumentType = documentType

	regionCode, err := queryOne(c, "region_code")
	if err != nil {
		return params, err
	}
	params.RegionCode = regionCode

	year, _, err := queryInt(c, "year")
	if err != nil {
		return params, err
	}
	params.Year = year

	return params, nil
}

func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// requestURL rebuilds the caller's absolute URL for envelope links. When a
// base URL is configured it wins over the request host, so links stay
// stable behind a reverse proxy.
func requestURL(c *gin.Context, appURL string) *url.URL {
	cloned := *c.Request.URL
	if base, err := url.Parse(appURL); err == nil && base.Host != "" {
		cloned.Scheme = base.Scheme
		cloned.Host = base.Host
		return &cloned
	}
	cloned.Host = c.Request.Host
	cloned.Scheme = "http"
	if c.Request.TLS != nil {
		cloned.Scheme = "https"
	}
	return &cloned
}

func respondError(c *gin.Context, err error) {
	if validationErr, ok := services.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": validationErr.Error(),
			},
		})
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Document not found",
			},
		})
		return
	}
	if errors.Is(err, services.ErrFileMissing) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "File not found",
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Internal server error",
		},
	})
}

// JdihnDocuments serves the paginated JDIHN document feed.
func JdihnDocuments(documentService *services.DocumentService, cacheMaxAge int, appURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := parseFeedParams(c)
		if err != nil {
			respondError(c, err)
			return
		}
		// Validate here as well so the envelope sees the normalized limit.
		if err := params.Validate(); err != nil {
			respondError(c, err)
			return
		}

		documents, total, err := documentService.FeedDocuments(params)
		if err != nil {
			respondError(c, err)
			return
		}

		records := make([]jdihn.Record, 0, len(documents))
		for i := range documents {
			records = append(records, jdihn.Transform(&documents[i]))
		}

		envelope := jdihn.NewListEnvelope(records, total, params.Limit, params.Offset, requestURL(c, appURL))

		c.Header("X-JDIHN-Compliance", "verified")
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheMaxAge))
		c.JSON(http.StatusOK, envelope)
	}
}

// JdihnDocument serves a single document in the JDIHN shape. Unpublished
// documents are indistinguishable from absent ones.
func JdihnDocument(documentService *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			respondError(c, services.ErrNotFound)
			return
		}

		document, err := documentService.FindByID(uint(id))
		if err != nil {
			respondError(c, err)
			return
		}

		envelope := jdihn.NewDocumentEnvelope(jdihn.Transform(document))

		c.Header("X-JDIHN-Compliance", "verified")
		c.JSON(http.StatusOK, envelope)
	}
}

// JdihnAbstracts serves the abstract-only feed.
func JdihnAbstracts(documentService *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params services.FeedParams

		limit, limitSet, err := queryInt(c, "limit")
		if err != nil {
			respondError(c, err)
			return
		}
		if limitSet && limit < 1 {
			respondError(c, &services.ValidationError{Field: "limit", Message: "must be between 1 and 1000"})
			return
		}
		params.Limit = limit

		offset, _, err := queryInt(c, "offset")
		if err != nil {
			respondError(c, err)
			return
		}
		params.Offset = offset

		if err := params.Validate(); err != nil {
			respondError(c, err)
			return
		}

		documents, total, err := documentService.FeedAbstracts(params)
		if err != nil {
			respondError(c, err)
			return
		}

		records := make([]jdihn.AbstractRecord, 0, len(documents))
		for i := range documents {
			records = append(records, jdihn.TransformAbstract(&documents[i]))
		}

		envelope := jdihn.NewAbstractEnvelope(records, total, params.Limit, params.Offset)

		c.Header("X-Feed-Type", "abstract")
		c.JSON(http.StatusOK, envelope)
	}
}
