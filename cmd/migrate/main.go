package main

import (
	"log"

	"github.com/jdihkota/jdih-api/internal/config"
	"github.com/jdihkota/jdih-api/internal/database"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := database.SeedReferenceData(db); err != nil {
		log.Fatalf("Seeding reference data failed: %v", err)
	}

	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Seeding admin user failed: %v", err)
	}

	log.Println("Migration completed successfully!")
}
