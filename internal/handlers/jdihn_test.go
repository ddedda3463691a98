package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdihkota/jdih-api/internal/models"
	"github.com/jdihkota/jdih-api/internal/services"
)

func TestJdihnDocumentsFeed(t *testing.T) {
	api := newTestAPI(t)

	first := api.createDocument(t, models.Document{Title: "Perda Pajak", Slug: "perda-pajak", PublishedDate: testDatePointer(2022, time.January, 10)})
	api.createDocument(t, models.Document{Title: "Perda Retribusi", Slug: "perda-retribusi", PublishedDate: testDatePointer(2022, time.March, 1)})
	api.createDocument(t, models.Document{Title: "Putusan Tanah", Slug: "putusan-tanah", DocumentTypeID: api.putusan.ID})
	api.createDocument(t, models.Document{Title: "Rancangan", Slug: "rancangan", DocumentStatusID: api.draft.ID})

	recorder := api.request(t, http.MethodGet, "/api/v1/jdihn/documents?limit=2")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "verified", recorder.Header().Get("X-JDIHN-Compliance"))
	assert.Equal(t, "public, max-age=180", recorder.Header().Get("Cache-Control"))

	body := decodeBody(t, recorder)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, "2.0", meta["version"])
	assert.Equal(t, "JDIHN-2024", meta["data_format"])
	assert.Equal(t, float64(3), meta["total_records"])
	assert.Equal(t, float64(2), meta["limit"])
	assert.Equal(t, float64(0), meta["offset"])

	data := body["data"].([]any)
	require.Len(t, data, 2)
	record := data[0].(map[string]any)
	assert.Equal(t, float64(first.ID), record["id"])
	assert.Equal(t, "Perda Pajak", record["judul"])
	assert.Equal(t, "peraturan", record["jenis_dokumen"])

	links := body["links"].(map[string]any)
	assert.Contains(t, links["first"], "offset=0")
	assert.Nil(t, links["prev"])
	require.NotNil(t, links["next"])
	assert.Contains(t, links["next"], "offset=2")
	assert.Contains(t, links["next"], "limit=2")
	assert.Contains(t, links["last"], "offset=2")
}

func TestJdihnDocumentsLinksUseConfiguredBaseURL(t *testing.T) {
	api := newTestAPI(t)
	api.createDocument(t, models.Document{Title: "Satu", Slug: "base-satu"})
	api.createDocument(t, models.Document{Title: "Dua", Slug: "base-dua"})

	router := gin.New()
	router.GET("/api/v1/jdihn/documents", JdihnDocuments(services.NewDocumentService(api.db), 180, "https://jdih.contoh.go.id"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jdihn/documents?limit=1", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	links := decodeBody(t, recorder)["links"].(map[string]any)
	assert.Equal(t, "https://jdih.contoh.go.id/api/v1/jdihn/documents?limit=1&offset=0", links["first"])
	require.NotNil(t, links["next"])
	assert.Contains(t, links["next"], "https://jdih.contoh.go.id/")
}

func TestJdihnDocumentsDefaultLimit(t *testing.T) {
	api := newTestAPI(t)
	api.createDocument(t, models.Document{Title: "Satu-satunya", Slug: "satu"})

	recorder := api.request(t, http.MethodGet, "/api/v1/jdihn/documents")
	require.Equal(t, http.StatusOK, recorder.Code)

	meta := decodeBody(t, recorder)["meta"].(map[string]any)
	assert.Equal(t, float64(100), meta["limit"])
}

func TestJdihnDocumentsValidation(t *testing.T) {
	api := newTestAPI(t)
	api.createDocument(t, models.Document{Title: "Ada", Slug: "ada"})

	cases := []struct {
		name  string
		query string
	}{
		{"limit zero", "limit=0"},
		{"limit too large", "limit=1001"},
		{"limit not a number", "limit=abc"},
		{"offset negative", "offset=-1"},
		{"unknown document type", "document_type=undangan"},
		{"year too early", "year=1900"},
		{"bad updated_since", "updated_since=notadate"},
		{"repeated parameter", "limit=1&limit=2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := api.request(t, http.MethodGet, "/api/v1/jdihn/documents?"+tc.query)
			require.Equal(t, http.StatusBadRequest, recorder.Code)

			body := decodeBody(t, recorder)
			assert.Equal(t, false, body["success"])
			errorBlock := body["error"].(map[string]any)
			assert.Equal(t, "VALIDATION_ERROR", errorBlock["code"])
			assert.NotEmpty(t, errorBlock["message"])
		})
	}
}

func TestJdihnDocumentsFilters(t *testing.T) {
	api := newTestAPI(t)

	api.createDocument(t, models.Document{Title: "Perda Lama", Slug: "perda-lama", PublishedDate: testDatePointer(2019, time.May, 5)})
	target := api.createDocument(t, models.Document{Title: "Putusan Baru", Slug: "putusan-baru", DocumentTypeID: api.putusan.ID, PublishedDate: testDatePointer(2022, time.May, 5)})

	recorder := api.request(t, http.MethodGet, "/api/v1/jdihn/documents?document_type=putusan&year=2022")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["meta"].(map[string]any)["total_records"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, float64(target.ID), data[0].(map[string]any)["id"])
}

func TestJdihnDocumentByID(t *testing.T) {
	api := newTestAPI(t)

	doc := api.createDocument(t, models.Document{Title: "Terbit", Slug: "terbit"})
	draft := api.createDocument(t, models.Document{Title: "Konsep", Slug: "konsep", DocumentStatusID: api.draft.ID})

	recorder := api.request(t, http.MethodGet, "/api/v1/jdihn/documents/"+strconv.Itoa(int(doc.ID)))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "verified", recorder.Header().Get("X-JDIHN-Compliance"))

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["meta"].(map[string]any)["compliance_checked"])
	assert.Equal(t, "Terbit", body["data"].(map[string]any)["judul"])

	recorder = api.request(t, http.MethodGet, "/api/v1/jdihn/documents/"+strconv.Itoa(int(draft.ID)))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = api.request(t, http.MethodGet, "/api/v1/jdihn/documents/abc")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestJdihnAbstracts(t *testing.T) {
	api := newTestAPI(t)

	withAbstract := api.createDocument(t, models.Document{Title: "Beranotasi", Slug: "beranotasi", Abstract: testStrPointer("Ringkasan.")})
	api.createDocument(t, models.Document{Title: "Polos", Slug: "polos"})

	recorder := api.request(t, http.MethodGet, "/api/v1/jdihn/abstracts")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "abstract", recorder.Header().Get("X-Feed-Type"))

	body := decodeBody(t, recorder)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, "abstract_feed", meta["type"])
	assert.Equal(t, float64(1), meta["total_records"])

	data := body["data"].([]any)
	require.Len(t, data, 1)
	record := data[0].(map[string]any)
	assert.Equal(t, float64(withAbstract.ID), record["id"])
	assert.Equal(t, "Ringkasan.", record["abstrak"])

	recorder = api.request(t, http.MethodGet, "/api/v1/jdihn/abstracts?limit=0")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
