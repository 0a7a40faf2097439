package main

import (
	"lexcase_app_go/config"
	"lexcase_app_go/db"
	"lexcase_app_go/handlers"
	"lexcase_app_go/middleware"
	"lexcase_app_go/models"
	"lexcase_app_go/services"
	"lexcase_app_go/services/jobs"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Firm{},
		&models.LawArea{},
		&models.Power{},
		&models.Work{},
		&models.Procedure{},
		&models.Honorary{},
		&models.HonoraryComponent{},
		&models.LegalCost{},
		&models.LegalCostEntry{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the system law-area and power catalog
	if err := services.SeedLawAreaCatalog(db.DB); err != nil {
		log.Fatalf("Failed to seed law area catalog: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// All routes are firm-scoped; authentication is handled upstream
	api := e.Group("/api")
	api.Use(middleware.RequireFirm())
	{
		// Law area hierarchy
		api.GET("/law-areas", handlers.GetLawAreasHandler)
		api.POST("/law-areas", handlers.CreateLawAreaHandler)
		api.PUT("/law-areas/:id/parent", handlers.UpdateLawAreaParentHandler)
		api.DELETE("/law-areas/:id", handlers.DeleteLawAreaHandler)
		api.GET("/law-areas/:id/path", handlers.GetLawAreaPathHandler)
		api.GET("/law-areas/:id/powers", handlers.GetApplicablePowersHandler)

		// Power catalog
		api.GET("/powers", handlers.GetPowersHandler)
		api.POST("/powers", handlers.CreatePowerHandler)
		api.GET("/powers/:id/applicable", handlers.CheckPowerApplicableHandler)

		// Fee arrangements
		api.GET("/honoraries", handlers.ListHonorariesHandler)
		api.POST("/honoraries", handlers.CreateHonoraryHandler)
		api.GET("/honoraries/:id", handlers.GetHonoraryHandler)
		api.PUT("/honoraries/:id/status", handlers.UpdateHonoraryStatusHandler)
		api.POST("/honoraries/:id/components", handlers.AddComponentHandler)
		api.PUT("/honoraries/:id/components/:component_id", handlers.UpdateComponentDetailsHandler)

		// Legal cost ledger
		api.POST("/honoraries/:id/legal-cost", handlers.CreateLegalCostHandler)
		api.GET("/honoraries/:id/legal-cost", handlers.GetLegalCostHandler)
		api.POST("/honoraries/:id/legal-cost/entries", handlers.AddCostEntryHandler)
		api.PUT("/honoraries/:id/legal-cost/entries/:entry_id/pay", handlers.PayCostEntryHandler)
		api.PUT("/honoraries/:id/legal-cost/entries/:entry_id/unpay", handlers.UnpayCostEntryHandler)
		api.GET("/honoraries/:id/legal-cost/export", handlers.ExportLegalCostHandler)
	}

	// Daily reminder job for due legal costs
	go func() {
		jobs.SendCostDueReminders(db.DB, cfg)
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			jobs.SendCostDueReminders(db.DB, cfg)
		}
	}()

	// Start server
	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
