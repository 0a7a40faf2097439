package main

import (
	"lexcase_app_go/config"
	"lexcase_app_go/db"
	"lexcase_app_go/models"
	"lexcase_app_go/services"
	"log"
)

// Seeds the system law-area and power catalog without starting the
// server. Safe to re-run: seeding skips when system areas already exist.
func main() {
	cfg := config.Load()

	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.Firm{},
		&models.LawArea{},
		&models.Power{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.SeedLawAreaCatalog(db.DB); err != nil {
		log.Fatalf("Failed to seed law area catalog: %v", err)
	}

	log.Println("Law area catalog seeded")
}
