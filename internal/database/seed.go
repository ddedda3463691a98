package database

import (
	"log"
	"os"

	"github.com/jdihkota/jdih-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func strPtr(s string) *string {
	return &s
}

// SeedAdmin creates a default admin account if no admin exists in the database
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@jdih.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "AdminPassword123!"
	}

	adminName := os.Getenv("ADMIN_NAME")
	if adminName == "" {
		adminName = "Administrator JDIH"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
		DisplayName:  adminName,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Created default admin user: %s", adminEmail)
	return nil
}

// SeedReferenceData creates the JDIHN document types and the document
// status ladder when they are missing. Safe to run on every boot.
func SeedReferenceData(db *gorm.DB) error {
	documentTypes := []models.DocumentType{
		{
			Name:        "Peraturan Perundang-undangan",
			Slug:        "peraturan",
			Description: strPtr("Peraturan perundang-undangan meliputi UU, PP, Perpres, Permen, Perda, dan lainnya"),
			Icon:        strPtr("scale"),
			IsActive:    true,
			SortOrder:   1,
		},
		{
			Name:        "Putusan Pengadilan",
			Slug:        "putusan",
			Description: strPtr("Putusan pengadilan dari berbagai tingkat peradilan"),
			Icon:        strPtr("building-office"),
			IsActive:    true,
			SortOrder:   2,
		},
		{
			Name:        "Monografi Hukum",
			Slug:        "monografi",
			Description: strPtr("Buku, jurnal, dan literatur hukum lainnya"),
			Icon:        strPtr("book-open"),
			IsActive:    true,
			SortOrder:   3,
		},
		{
			Name:        "Artikel Hukum",
			Slug:        "artikel",
			Description: strPtr("Artikel, makalah, dan tulisan hukum"),
			Icon:        strPtr("document-text"),
			IsActive:    true,
			SortOrder:   4,
		},
	}

	for _, documentType := range documentTypes {
		var existing models.DocumentType
		if err := db.Where("slug = ?", documentType.Slug).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&documentType).Error; err != nil {
			return err
		}
	}

	statuses := []models.DocumentStatus{
		{
			Name:        "Draft",
			Slug:        "draft",
			Color:       strPtr("gray"),
			Description: strPtr("Dokumen dalam tahap penyusunan"),
			IsActive:    true,
			IsPublished: false,
			SortOrder:   1,
		},
		{
			Name:        "Review",
			Slug:        "review",
			Color:       strPtr("yellow"),
			Description: strPtr("Dokumen sedang dalam proses review"),
			IsActive:    true,
			IsPublished: false,
			SortOrder:   2,
		},
		{
			Name:        "Berlaku",
			Slug:        "published",
			Color:       strPtr("green"),
			Description: strPtr("Dokumen telah dipublikasikan dan berlaku"),
			IsActive:    true,
			IsPublished: true,
			SortOrder:   3,
		},
		{
			Name:        "Dicabut",
			Slug:        "revoked",
			Color:       strPtr("red"),
			Description: strPtr("Dokumen telah dicabut atau tidak berlaku"),
			IsActive:    true,
			IsPublished: false,
			SortOrder:   4,
		},
	}

	for _, status := range statuses {
		var existing models.DocumentStatus
		if err := db.Where("slug = ?", status.Slug).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&status).Error; err != nil {
			return err
		}
	}

	log.Println("Reference data seeded")
	return nil
}
