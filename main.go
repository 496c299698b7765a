package main

import (
	"log"
	"time"

	"moto-tours/cmd"
	"moto-tours/internal/data/repository"
	"moto-tours/internal/usecase"
	"moto-tours/internal/wire"
	"moto-tours/pkg/cache"
	"moto-tours/pkg/database"
	"moto-tours/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Bool("motorcycle_fixtures", config.App.UseFixtures),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Listings fall back to uncached reads when Redis is absent or unreachable.
	var listingCache cache.Cache = cache.Nop{}
	if config.Redis.URL != "" {
		ttl := time.Duration(config.Redis.ListingTTLSeconds) * time.Second
		c, client, err := cache.NewRedis(config.Redis.URL, ttl, logger)
		if err != nil {
			logger.Warn("Redis unavailable, listing cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			listingCache = c
			logger.Info("Redis connected successfully")
		}
	}

	repos := repository.NewRepository(db, config.App.UseFixtures, logger)
	provider := usecase.NewGoogleProvider(config.OAuth)

	app := wire.Wiring(repos, listingCache, provider, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
