// main.go
package main

import (
	"context"
	"log"

	"arto/cmd"
	"arto/internal/data/repository"
	"arto/internal/wire"
	"arto/pkg/cache"
	"arto/pkg/database"
	"arto/pkg/storage"
	"arto/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("db_driver", config.Database.Driver),
	)

	ctx := context.Background()

	// Storage backend
	var repos *repository.Repository
	switch config.Database.Driver {
	case "memory":
		logger.Warn("Using in-memory storage, data is lost on restart")
		repos = repository.NewMemoryRepository(logger)

	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database connected successfully")

		repos = repository.NewRepository(db, logger)
	}

	// Flash messages and rate limits
	var store cache.Store = cache.NewMemoryCache()
	if config.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", config.Redis.Addr))
		}
		defer rdb.Close()
		store = cache.NewRedisCache(rdb)
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	}

	media, err := storage.NewMediaStore(config.Media.Path)
	if err != nil {
		logger.Fatal("Failed to prepare media directory", zap.Error(err))
	}

	// Wire all dependencies
	app, err := wire.Wiring(repos, store, media, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if _, err := app.Service.Auth.CleanExpiredSessions(ctx); err != nil {
		logger.Warn("Failed to clean expired sessions", zap.Error(err))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
