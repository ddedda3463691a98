package main

import (
	"log"
	"time"

	"github.com/jdihkota/jdih-api/internal/config"
	"github.com/jdihkota/jdih-api/internal/database"
	"github.com/jdihkota/jdih-api/internal/services"
	"github.com/joho/godotenv"
)

// Reindexes every published document into Meilisearch. Run after bulk
// imports or when the index drifts from the database.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize services
	documentService := services.NewDocumentService(db)
	searchService := services.NewSearchService(cfg)
	log.Println("Meilisearch service initialized")

	meiliCount, err := searchService.GetDocumentCount()
	if err != nil {
		log.Fatalf("Failed to get document count from Meilisearch: %v", err)
	}
	log.Printf("Documents in Meilisearch: %d", meiliCount)

	// Fetch published documents in batches and push them to the index
	batchSize := 100
	page := 1
	totalIndexed := 0

	for {
		documents, total, err := documentService.FeedDocuments(services.FeedParams{
			Limit:  batchSize,
			Offset: (page - 1) * batchSize,
		})
		if err != nil {
			log.Fatalf("Failed to fetch documents: %v", err)
		}

		if len(documents) == 0 {
			break
		}

		if err := searchService.IndexDocuments(documents); err != nil {
			log.Printf("Failed to index batch (page %d): %v", page, err)
		} else {
			totalIndexed += len(documents)
			log.Printf("Indexed batch of %d documents (total: %d of %d)", len(documents), totalIndexed, total)
		}

		page++
		time.Sleep(100 * time.Millisecond) // Be nice to Meilisearch
	}

	log.Printf("Reindex complete: %d documents indexed", totalIndexed)
}
