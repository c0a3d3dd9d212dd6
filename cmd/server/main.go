package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/photoshare-app/backend/internal/router"
	"github.com/photoshare-app/backend/internal/search"
	"github.com/photoshare-app/backend/pkg/config"
	"github.com/photoshare-app/backend/pkg/geocode"
	"github.com/photoshare-app/backend/pkg/logger"
	"github.com/photoshare-app/backend/pkg/storage"
	"github.com/photoshare-app/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLog := logger.New(cfg.Env)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize the search mirror client and its text indexes
	index := search.NewMongoIndex(db.Mongo.Database("photoshare_search"))
	if err := index.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create search indexes: %v", err)
	}

	// Blob storage for image bytes
	images, err := storage.NewS3ImageStore(cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// Geocoding suggestions behind the bounded cache
	locationClient, err := geocode.NewAWSLocationClient(cfg.S3Region, cfg.LocationIndexName)
	if err != nil {
		log.Fatalf("Failed to initialize location client: %v", err)
	}
	geocoder := geocode.NewCachedClient(locationClient, geocode.DefaultCapacity, geocode.DefaultTTL)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Deps{
		Postgres: db.Postgres,
		Index:    index,
		Images:   images,
		Geocoder: geocoder,
		Log:      appLog,
		Cfg:      cfg,
	})

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
