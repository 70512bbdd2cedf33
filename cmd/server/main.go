package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wordstash/api/internal/config"
	"github.com/wordstash/api/internal/dictionary"
	"github.com/wordstash/api/internal/handler"
	"github.com/wordstash/api/internal/middleware"
	"github.com/wordstash/api/internal/netcheck"
	"github.com/wordstash/api/internal/provider"
	"github.com/wordstash/api/internal/provider/datamuse"
	"github.com/wordstash/api/internal/provider/dictapi"
	"github.com/wordstash/api/internal/provider/freedict"
	"github.com/wordstash/api/internal/provider/urban"
	"github.com/wordstash/api/internal/scheduler"
	"github.com/wordstash/api/internal/settings"
	"github.com/wordstash/api/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	st := openStore(cfg)

	ctx := context.Background()

	settingsService := settings.NewService(ctx, st)
	checker := netcheck.NewChecker(cfg.ProbeURL)

	adapters := buildAdapters(cfg)
	dictService := dictionary.NewService(st, settingsService, checker, adapters)
	cleaner := dictionary.NewCleaner(st, settingsService)

	var cleanupScheduler *scheduler.CleanupScheduler
	if cfg.EnableCleanup {
		interval := settingsService.Get().Cleanup.Interval.Duration()
		cleanupScheduler = scheduler.NewCleanupScheduler(cleaner.Run, interval)
		go cleanupScheduler.Start(ctx)
		log.Println("Background cleanup scheduler started")
	}

	// Initialize handlers
	wordHandler := handler.NewWordHandler(dictService)
	settingsHandler := handler.NewSettingsHandler(settingsService, cleanupScheduler)
	adminHandler := handler.NewAdminHandler(st, cleaner, cleanupScheduler)

	// Setup router
	r := gin.Default()
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Fatalf("Invalid trusted proxies: %v", err)
		}
	}

	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "online": checker.IsConnected()})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/words/:word", wordHandler.Lookup)
		api.GET("/suggest", wordHandler.Suggest)
		api.GET("/settings", settingsHandler.Get)
	}

	// Admin routes
	admin := r.Group("/api/admin", middleware.AdminMiddleware(cfg.JWTSecret, cfg.AdminSubjects))
	{
		admin.PUT("/settings", settingsHandler.Update)
		admin.POST("/cleanup", adminHandler.StartCleanup)
		admin.GET("/cleanup", adminHandler.ListCleanupJobs)
		admin.GET("/cleanup/:jobId", adminHandler.GetCleanupStatus)
		admin.POST("/cache/clear", adminHandler.ClearCache)
		admin.GET("/scheduler/status", adminHandler.SchedulerStatus)
	}

	log.Printf("API server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore picks the configured backing, falling back to the in-memory
// store so lookups keep working without persistence.
func openStore(cfg *config.Config) store.Store {
	switch cfg.StoreBackend {
	case "postgres":
		st, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Postgres: %v", err)
			break
		}
		return st
	case "memory":
		return store.NewMemoryStore()
	default:
		st, err := store.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v", err)
			break
		}
		return st
	}

	log.Println("Warning: Falling back to in-memory store, cache will not persist")
	return store.NewMemoryStore()
}

func buildAdapters(cfg *config.Config) []provider.Adapter {
	datamuseAdapter := datamuse.New()
	if cfg.DatamuseURL != "" {
		datamuseAdapter = datamuse.NewWithURL(cfg.DatamuseURL)
	}

	dictAPIAdapter := dictapi.New()
	if cfg.DictAPIURL != "" {
		dictAPIAdapter = dictapi.NewWithURL(cfg.DictAPIURL)
	}

	freeDictAdapter := freedict.New()
	if cfg.FreeDictURL != "" {
		freeDictAdapter = freedict.NewWithURL(cfg.FreeDictURL)
	}

	urbanAdapter := urban.New()
	if cfg.UrbanURL != "" {
		urbanAdapter = urban.NewWithURL(cfg.UrbanURL)
	}

	return []provider.Adapter{datamuseAdapter, dictAPIAdapter, freeDictAdapter, urbanAdapter}
}
