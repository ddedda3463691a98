package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jdihkota/jdih-api/internal/database"
	"github.com/jdihkota/jdih-api/internal/models"
	"github.com/jdihkota/jdih-api/internal/services"
)

// fakeStorage serves downloads from an in-memory map keyed by file path.
type fakeStorage struct {
	files map[string]string
}

func (f *fakeStorage) OpenFile(_ context.Context, path string) (io.ReadCloser, int64, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, 0, services.ErrFileMissing
	}
	return io.NopCloser(strings.NewReader(content)), int64(len(content)), nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, path string) error {
	delete(f.files, path)
	return nil
}

// fakeSearchIndex records which documents were retired from the index.
type fakeSearchIndex struct {
	deleted []uint
}

func (f *fakeSearchIndex) DeleteDocument(documentID uint) error {
	f.deleted = append(f.deleted, documentID)
	return nil
}

type testAPI struct {
	db      *gorm.DB
	router  *gin.Engine
	storage *fakeStorage
	search  *fakeSearchIndex

	published models.DocumentStatus
	draft     models.DocumentStatus
	peraturan models.DocumentType
	putusan   models.DocumentType
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))

	api := &testAPI{
		db:      db,
		storage: &fakeStorage{files: map[string]string{}},
		search:  &fakeSearchIndex{},
	}

	api.published = models.DocumentStatus{Name: "Berlaku", Slug: "published", IsPublished: true}
	api.draft = models.DocumentStatus{Name: "Draft", Slug: "draft"}
	require.NoError(t, db.Create(&api.published).Error)
	require.NoError(t, db.Create(&api.draft).Error)

	api.peraturan = models.DocumentType{Name: "Peraturan", Slug: "peraturan"}
	api.putusan = models.DocumentType{Name: "Putusan", Slug: "putusan"}
	require.NoError(t, db.Create(&api.peraturan).Error)
	require.NoError(t, db.Create(&api.putusan).Error)

	documentService := services.NewDocumentService(db)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/jdihn/documents", JdihnDocuments(documentService, 180, ""))
	v1.GET("/jdihn/documents/:id", JdihnDocument(documentService))
	v1.GET("/jdihn/abstracts", JdihnAbstracts(documentService))
	v1.GET("/documents", SearchDocuments(documentService))
	v1.GET("/documents/years", ListDocumentYears(documentService))
	v1.GET("/documents/types/:typeSlug/:documentSlug", GetDocument(documentService))
	v1.GET("/documents/types/:typeSlug/:documentSlug/download", DownloadDocument(documentService, api.storage))
	v1.POST("/documents/:id/view", TrackView(documentService))
	v1.DELETE("/admin/documents/:id", AdminDeleteDocument(db, api.search, api.storage))
	api.router = router

	return api
}

func (a *testAPI) createDocument(t *testing.T, doc models.Document) models.Document {
	t.Helper()
	if doc.DocumentStatusID == 0 {
		doc.DocumentStatusID = a.published.ID
	}
	if doc.DocumentTypeID == 0 {
		doc.DocumentTypeID = a.peraturan.ID
	}
	if doc.CreatedBy == 0 {
		doc.CreatedBy = 1
	}
	require.NoError(t, a.db.Create(&doc).Error)
	return doc
}

func (a *testAPI) request(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func testDatePointer(year int, month time.Month, day int) *time.Time {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &date
}

func testStrPointer(s string) *string {
	return &s
}
