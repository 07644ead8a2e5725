package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/config"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/converter"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/database"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/handlers"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/middleware"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()
	log.Println("Connected to database successfully")

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	var managerCache converter.StatusCache
	var handlerCache handlers.StatusCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis successfully")

		// status entries expire with the retention window so they never
		// outlive the job row
		statusTTL := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		cache := converter.NewRedisStatusCache(redisClient, statusTTL)
		managerCache = cache
		handlerCache = cache
	} else {
		log.Println("REDIS_ADDR not set, status cache disabled")
	}

	backend, err := newStorageBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	converterClient := converter.NewClient(cfg.ConverterURL)
	manager := converter.NewManager(
		converterClient,
		dbClient,
		backend,
		managerCache,
		time.Duration(cfg.ConversionTimeout)*time.Second,
		cfg.MaxRetries,
	)

	convertHandler := handlers.NewConvertHandler(dbClient, manager, backend, cfg.MaxUploadBytes())
	jobsHandler := handlers.NewJobsHandler(dbClient)
	statusHandler := handlers.NewStatusHandler(dbClient, handlerCache)
	downloadHandler := handlers.NewDownloadHandler(dbClient, backend)
	adminHandler := handlers.NewAdminHandler(dbClient)

	router := gin.Default()

	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.GET("/templates", jobsHandler.ListTemplates)
	api.POST("/convert", convertHandler.Convert)
	api.GET("/jobs/:job_id", jobsHandler.GetJob)
	api.GET("/jobs/:job_id/status", statusHandler.GetStatus)
	api.GET("/jobs/:job_id/download", downloadHandler.Download)

	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(cfg.AdminJWTSecret))
	admin.GET("/jobs", adminHandler.ListJobs)
	admin.GET("/jobs/:job_id", adminHandler.GetJob)

	log.Printf("Converter URL: %s", cfg.ConverterURL)
	log.Printf("Storage backend: %s", cfg.StorageBackend)
	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newStorageBackend(cfg *config.Config) (storage.Backend, error) {
	if cfg.StorageBackend == config.StorageS3 {
		return storage.NewS3Backend(cfg), nil
	}
	return storage.NewLocalBackend(cfg.MediaRoot)
}
