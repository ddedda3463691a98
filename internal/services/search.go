package services

import (
	"log"
	"strconv"

	"github.com/jdihkota/jdih-api/internal/config"
	"github.com/jdihkota/jdih-api/internal/models"
	"github.com/meilisearch/meilisearch-go"
)

// SearchDocument is the Meilisearch projection of a document: the same
// fields the catalog exposes to full-text search, denormalized.
type SearchDocument struct {
	ID             uint     `json:"id"`
	Title          string   `json:"title"`
	Abstract       string   `json:"abstract"`
	Content        string   `json:"content"`
	DocumentNumber string   `json:"document_number"`
	DocumentType   string   `json:"document_type"`
	TypeSlug       string   `json:"type_slug"`
	Slug           string   `json:"slug"`
	Year           int      `json:"year"`
	Authors        []string `json:"authors"`
	Subjects       []string `json:"subjects"`
}

// SearchService keeps the quick-search index in sync with the catalog.
type SearchService struct {
	client *meilisearch.Client
	index  string
}

func NewSearchService(cfg *config.Config) *SearchService {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeiliURL,
		APIKey: cfg.MeiliAPIKey,
	})

	// Ensure documents index exists (best effort)
	_, err := client.GetIndex("documents")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "documents",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch documents index: %v", err)
		}

		_, err = client.Index("documents").UpdateFilterableAttributes(&[]string{"type_slug", "year"})
		if err != nil {
			log.Printf("Failed to update filterable attributes: %v", err)
		}

		_, err = client.Index("documents").UpdateSearchableAttributes(&[]string{"title", "abstract", "content", "document_number", "authors", "subjects"})
		if err != nil {
			log.Printf("Failed to update searchable attributes: %v", err)
		}
	}

	return &SearchService{
		client: client,
		index:  "documents",
	}
}

// ToSearchDocument flattens a document with preloaded relations into the
// index projection.
func ToSearchDocument(document models.Document) SearchDocument {
	searchDocument := SearchDocument{
		ID:       document.ID,
		Title:    document.Title,
		Slug:     document.Slug,
		TypeSlug: document.DocumentType.Slug,
	}
	if document.Abstract != nil {
		searchDocument.Abstract = *document.Abstract
	}
	if document.Content != nil {
		searchDocument.Content = *document.Content
	}
	if document.DocumentNumber != nil {
		searchDocument.DocumentNumber = *document.DocumentNumber
	}
	searchDocument.DocumentType = document.DocumentType.Name
	if year := document.PublishedYear(); year != nil {
		searchDocument.Year = *year
	}
	for _, author := range document.Authors {
		searchDocument.Authors = append(searchDocument.Authors, author.Name)
	}
	for _, subject := range document.Subjects {
		searchDocument.Subjects = append(searchDocument.Subjects, subject.Name)
	}
	return searchDocument
}

func (s *SearchService) IndexDocuments(documents []models.Document) error {
	if len(documents) == 0 {
		return nil
	}
	searchDocuments := make([]SearchDocument, 0, len(documents))
	for _, document := range documents {
		searchDocuments = append(searchDocuments, ToSearchDocument(document))
	}
	_, err := s.client.Index(s.index).AddDocuments(searchDocuments)
	return err
}

func (s *SearchService) DeleteDocument(documentID uint) error {
	_, err := s.client.Index(s.index).DeleteDocument(strconv.FormatUint(uint64(documentID), 10))
	return err
}

func (s *SearchService) Search(query string, typeSlug string) (*meilisearch.SearchResponse, error) {
	request := &meilisearch.SearchRequest{
		Limit: 20,
	}

	if typeSlug != "" {
		request.Filter = "type_slug = " + typeSlug
	}

	return s.client.Index(s.index).Search(query, request)
}

func (s *SearchService) GetDocumentCount() (int64, error) {
	stats, err := s.client.Index(s.index).GetStats()
	if err != nil {
		return 0, err
	}
	return stats.NumberOfDocuments, nil
}
