package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"portfolio-backend/internal/assets"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/database"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Run migrations before opening the store.
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()

	projectStore, err := database.NewProjectStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer projectStore.Close()

	assetStore, err := newAssetStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize asset storage: %v", err)
	}

	projectService := service.NewProjectService(projectStore, assetStore)
	projectsHandler := handlers.NewProjectsHandler(projectService)

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", handlers.HealthHandler)

	router.GET("/", projectsHandler.ListProjects)
	router.POST("/", projectsHandler.CreateProject)
	router.PUT("/:id", projectsHandler.UpdateProject)
	router.DELETE("/:id", projectsHandler.DeleteProject)

	// Locally stored images are served back at their reference path.
	if local, ok := assetStore.(*assets.LocalStore); ok {
		router.Static(assets.URLPrefix, local.Dir())
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server gracefully ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server shutdown:", err)
	}
	log.Println("Server exiting")
}

func newAssetStore(cfg *config.Config) (assets.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendSupabase:
		return assets.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	case config.StorageBackendLocal:
		return assets.NewLocalStore(cfg.UploadDir)
	case config.StorageBackendPlaceholder:
		return assets.NewPlaceholderStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
