package handlers

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdihkota/jdih-api/internal/models"
)

func TestSearchDocumentsEndpoint(t *testing.T) {
	api := newTestAPI(t)

	older := api.createDocument(t, models.Document{Title: "Perda Sampah", Slug: "perda-sampah", PublishedDate: testDatePointer(2020, time.April, 1)})
	newer := api.createDocument(t, models.Document{Title: "Perda Parkir", Slug: "perda-parkir", PublishedDate: testDatePointer(2022, time.April, 1)})
	api.createDocument(t, models.Document{Title: "Putusan Lain", Slug: "putusan-lain", DocumentTypeID: api.putusan.ID, PublishedDate: testDatePointer(2021, time.April, 1)})
	api.createDocument(t, models.Document{Title: "Draft Tersembunyi", Slug: "draft-tersembunyi", DocumentStatusID: api.draft.ID})

	recorder := api.request(t, http.MethodGet, "/api/v1/documents?document_type=peraturan&sort=date_asc")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])

	data := body["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, float64(older.ID), data[0].(map[string]any)["id"])
	assert.Equal(t, float64(newer.ID), data[1].(map[string]any)["id"])

	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(20), pagination["per_page"])
	assert.Equal(t, float64(2), pagination["total"])
	assert.Equal(t, float64(1), pagination["total_pages"])
}

func TestSearchDocumentsEndpointValidation(t *testing.T) {
	api := newTestAPI(t)

	cases := []string{
		"subject=-3",
		"subject=abc",
		"page=-1",
		"year=abc",
		"q=a&q=b",
	}
	for _, query := range cases {
		recorder := api.request(t, http.MethodGet, "/api/v1/documents?"+query)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "query %q", query)
	}
}

func TestListDocumentYearsEndpoint(t *testing.T) {
	api := newTestAPI(t)

	api.createDocument(t, models.Document{Title: "A", Slug: "tahun-a", PublishedDate: testDatePointer(2020, time.March, 1)})
	api.createDocument(t, models.Document{Title: "B", Slug: "tahun-b", PublishedDate: testDatePointer(2022, time.March, 1)})
	api.createDocument(t, models.Document{Title: "C", Slug: "tahun-c", PublishedDate: testDatePointer(2022, time.June, 1)})

	recorder := api.request(t, http.MethodGet, "/api/v1/documents/years")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, []any{float64(2022), float64(2020)}, body["data"])
}

func TestGetDocumentEndpoint(t *testing.T) {
	api := newTestAPI(t)

	doc := api.createDocument(t, models.Document{Title: "Perda Parkir", Slug: "perda-parkir", PublishedDate: testDatePointer(2022, time.April, 1)})
	sibling := api.createDocument(t, models.Document{Title: "Perda Sampah", Slug: "perda-sampah", PublishedDate: testDatePointer(2021, time.April, 1)})

	recorder := api.request(t, http.MethodGet, "/api/v1/documents/types/peraturan/perda-parkir")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Perda Parkir", data["document"].(map[string]any)["title"])

	related := data["related"].([]any)
	require.Len(t, related, 1)
	assert.Equal(t, float64(sibling.ID), related[0].(map[string]any)["id"])

	// The view counter is bumped off the request path.
	assert.Eventually(t, func() bool {
		var reloaded models.Document
		if err := api.db.First(&reloaded, doc.ID).Error; err != nil {
			return false
		}
		return reloaded.ViewCount == 1
	}, 2*time.Second, 10*time.Millisecond)

	recorder = api.request(t, http.MethodGet, "/api/v1/documents/types/putusan/perda-parkir")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = api.request(t, http.MethodGet, "/api/v1/documents/types/peraturan/tidak-ada")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestTrackViewEndpoint(t *testing.T) {
	api := newTestAPI(t)

	doc := api.createDocument(t, models.Document{Title: "Dilihat", Slug: "dilihat"})

	recorder := api.request(t, http.MethodPost, "/api/v1/documents/"+strconv.Itoa(int(doc.ID))+"/view")
	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["view_count"])

	recorder = api.request(t, http.MethodPost, "/api/v1/documents/"+strconv.Itoa(int(doc.ID))+"/view")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(2), decodeBody(t, recorder)["view_count"])

	recorder = api.request(t, http.MethodPost, "/api/v1/documents/99999/view")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = api.request(t, http.MethodPost, "/api/v1/documents/abc/view")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDownloadDocumentEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.storage.files["documents/2022/perda-parkir.pdf"] = "%PDF-1.7 isi berkas"

	doc := api.createDocument(t, models.Document{
		Title:    "Perda Parkir",
		Slug:     "perda-parkir",
		FilePath: testStrPointer("documents/2022/perda-parkir.pdf"),
		MimeType: "application/pdf",
	})

	recorder := api.request(t, http.MethodGet, "/api/v1/documents/types/peraturan/perda-parkir/download")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Perda Parkir.pdf"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.7 isi berkas", recorder.Body.String())

	assert.Eventually(t, func() bool {
		var reloaded models.Document
		if err := api.db.First(&reloaded, doc.ID).Error; err != nil {
			return false
		}
		return reloaded.DownloadCount == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDownloadDocumentMissingFile(t *testing.T) {
	api := newTestAPI(t)

	// Record points at a path the object store no longer has.
	gone := api.createDocument(t, models.Document{
		Title:    "Hilang",
		Slug:     "hilang",
		FilePath: testStrPointer("documents/hilang.pdf"),
	})
	noFile := api.createDocument(t, models.Document{Title: "Tanpa Berkas", Slug: "tanpa-berkas"})

	recorder := api.request(t, http.MethodGet, "/api/v1/documents/types/peraturan/hilang/download")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"])

	recorder = api.request(t, http.MethodGet, "/api/v1/documents/types/peraturan/tanpa-berkas/download")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// A failed download is not counted.
	var reloadedGone models.Document
	require.NoError(t, api.db.First(&reloadedGone, gone.ID).Error)
	assert.Equal(t, int64(0), reloadedGone.DownloadCount)
	var reloadedNoFile models.Document
	require.NoError(t, api.db.First(&reloadedNoFile, noFile.ID).Error)
	assert.Equal(t, int64(0), reloadedNoFile.DownloadCount)
}
