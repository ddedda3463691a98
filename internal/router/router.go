package router

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jdihkota/jdih-api/internal/config"
	"github.com/jdihkota/jdih-api/internal/handlers"
	"github.com/jdihkota/jdih-api/internal/middleware"
	"github.com/jdihkota/jdih-api/internal/services"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize Services
	documentService := services.NewDocumentService(db)
	searchService := services.NewSearchService(cfg)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage service: %v", err)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize rate limiter: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-JDIHN-Compliance"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(db))

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// JDIHN integration feed (SATU DATA HUKUM INDONESIA)
		feed := api.Group("/jdihn")
		if rateLimiter != nil {
			feed.Use(rateLimiter.RateLimitByIP(cfg.FeedRateLimit, cfg.FeedRateWindowSec))
		}
		{
			feed.GET("/documents", handlers.JdihnDocuments(documentService, cfg.FeedCacheMaxAge, cfg.AppURL))
			feed.GET("/documents/:id", handlers.JdihnDocument(documentService))
			feed.GET("/abstracts", handlers.JdihnAbstracts(documentService))
		}

		// Public catalog
		api.GET("/home", handlers.Home(db, documentService))
		api.GET("/documents", handlers.SearchDocuments(documentService))
		api.GET("/documents/years", handlers.ListDocumentYears(documentService))
		api.GET("/documents/types/:typeSlug/:documentSlug", handlers.GetDocument(documentService))
		api.GET("/documents/types/:typeSlug/:documentSlug/download", handlers.DownloadDocument(documentService, storageService))
		api.POST("/documents/:id/view", handlers.TrackView(documentService))
		api.GET("/document-types", handlers.ListDocumentTypes(db))
		api.GET("/subjects", handlers.ListSubjects(db))
		api.GET("/authors", handlers.ListAuthors(db))
		api.GET("/statistics", handlers.Statistics(db))
		api.GET("/search", handlers.QuickSearch(searchService))

		// Auth
		api.POST("/auth/login", handlers.Login(db, cfg))

		protected := api.Group("")
		protected.Use(middleware.AuthRequired(cfg))
		{
			protected.GET("/auth/me", handlers.GetCurrentUser(db))
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(cfg), middleware.AdminRequired())
		{
			admin.GET("/sync-logs", handlers.ListSyncLogs(db))
			admin.DELETE("/documents/:id", handlers.AdminDeleteDocument(db, searchService, storageService))
		}
	}

	return r
}
