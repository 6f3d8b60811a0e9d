package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Ping timeout

	"hobbymatch/internal/api"      // Custom package for API handlers
	"hobbymatch/internal/config"   // Custom package for configuration
	"hobbymatch/internal/db"       // Database connection
	"hobbymatch/internal/matching" // Ranking engine
	"hobbymatch/internal/store"    // Relationship store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logger.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Redis is optional; without it caching and notifications are disabled
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err = redisClient.Ping(ctx).Result()
		cancel()
		if err != nil {
			logger.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logger.Warn("REDIS_ADDR not set, caching and notifications disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	st := store.New(gdb)
	r := api.NewRouter(api.Deps{
		Store:     st,
		Engine:    matching.NewEngine(st),
		Redis:     redisClient,
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
		CacheTTL:  cfg.CacheTTL,
		Logger:    logger,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logger.Fatalf("failed to set trusted proxies: %v", err)
	}

	logger.WithField("port", cfg.AppPort).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
