package router

import (
	"log"

	"github.com/campusfind/backend/internal/chat"
	"github.com/campusfind/backend/internal/handlers"
	"github.com/campusfind/backend/internal/matching"
	"github.com/campusfind/backend/internal/middleware"
	"github.com/campusfind/backend/internal/models"
	"github.com/campusfind/backend/internal/realtime"
	"github.com/campusfind/backend/internal/repositories"
	"github.com/campusfind/backend/pkg/config"
	"github.com/campusfind/backend/pkg/firebase"
	"github.com/campusfind/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseApp *firebase.App) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Change feed: one process-wide instance shared by reference ---
	feed := realtime.NewFeed()

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	itemRepo := repositories.NewPostgresItemRepository(pgdb, feed)
	messageRepo := repositories.NewMongoMessageRepository(mgClient.Database("campusfind"), feed)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Domain services ---
	matchEngine := matching.NewEngine(itemRepo)
	chatService := chat.NewService(messageRepo, userRepo)
	uploader := storage.NewUploader(storage.Config{
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		PublicURL:       cfg.S3PublicURL,
	})

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseApp, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	authHandler.RegisterSessionRoutes(api)

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Item routes
	itemHandler := handlers.NewItemHandler(itemRepo)
	itemHandler.RegisterItemRoutes(api)
	log.Println("Item routes configured.")

	// Match routes
	matchHandler := handlers.NewMatchHandler(matchEngine)
	matchHandler.RegisterMatchRoutes(api)
	log.Println("Match routes configured.")

	// Chat routes
	chatHandler := handlers.NewChatHandler(chatService, feed, notificationRepo)
	chatHandler.RegisterChatRoutes(api)
	log.Println("Chat routes configured.")

	// Realtime item feed
	realtimeHandler := handlers.NewRealtimeHandler(userRepo, feed, matchEngine, notificationRepo)
	realtimeHandler.RegisterRealtimeRoutes(api)
	log.Println("Realtime routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Upload routes
	uploadHandler := handlers.NewUploadHandler(uploader)
	uploadHandler.RegisterUploadRoutes(api)
	log.Println("Upload routes configured.")
}
