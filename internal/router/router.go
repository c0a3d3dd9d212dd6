package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/photoshare-app/backend/internal/handlers"
	"github.com/photoshare-app/backend/internal/middleware"
	"github.com/photoshare-app/backend/internal/models"
	"github.com/photoshare-app/backend/internal/search"
	"github.com/photoshare-app/backend/internal/services"
	"github.com/photoshare-app/backend/pkg/config"
	"github.com/photoshare-app/backend/pkg/geocode"
	"github.com/photoshare-app/backend/pkg/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Deps are the process-wide collaborators handed to the routes: the primary
// store, the search mirror client, blob storage and the geocoding client.
type Deps struct {
	Postgres *gorm.DB
	Index    search.Index
	Images   storage.ImageStore
	Geocoder geocode.Client
	Log      *logrus.Logger
	Cfg      *config.Config
}

// SetupRoutes migrates the schema, wires the services and registers all routes
func SetupRoutes(e *echo.Echo, d Deps) {
	// AutoMigrate PostgreSQL models
	err := d.Postgres.AutoMigrate(
		&models.User{},
		&models.FollowerEntry{},
		&models.FollowingEntry{},
		&models.Photo{},
		&models.Tag{},
		&models.Like{},
		&models.Comment{},
		&models.FeedEntry{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	svcs := services.NewServices(d.Postgres, d.Index, d.Log)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(svcs.Users, d.Cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(d.Cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(svcs.Users, svcs.Follows, d.Index, d.Images)
	userHandler.RegisterUserRoutes(api)

	followHandler := handlers.NewFollowHandler(svcs.Follows)
	followHandler.RegisterFollowRoutes(api)

	photoHandler := handlers.NewPhotoHandler(svcs.Photos, d.Images, d.Index)
	photoHandler.RegisterPhotoRoutes(api)

	commentHandler := handlers.NewCommentHandler(svcs.Comments)
	commentHandler.RegisterCommentRoutes(api)

	feedHandler := handlers.NewFeedHandler(svcs.Photos)
	feedHandler.RegisterFeedRoutes(api)

	geocodeHandler := handlers.NewGeocodeHandler(d.Geocoder)
	geocodeHandler.RegisterGeocodeRoutes(api)

	log.Println("All routes configured.")
}
