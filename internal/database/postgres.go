package database

import (
	"fmt"
	"log"

	"github.com/jdihkota/jdih-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Database connected successfully")
	return db, nil
}

// RunMigrations migrates the full catalog schema. Pivot models are listed
// explicitly so their extra attributes (sort_order, role) survive.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running migrations...")

	if err := db.SetupJoinTable(&models.Document{}, "Authors", &models.DocumentAuthor{}); err != nil {
		return fmt.Errorf("failed to set up document_author join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.Document{}, "Subjects", &models.DocumentSubject{}); err != nil {
		return fmt.Errorf("failed to set up document_subject join table: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.DocumentType{},
		&models.DocumentStatus{},
		&models.Author{},
		&models.Subject{},
		&models.Document{},
		&models.DocumentAuthor{},
		&models.DocumentSubject{},
		&models.SyncLog{},
	)
}
