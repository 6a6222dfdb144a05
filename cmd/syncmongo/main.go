package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	syncapp "github.com/ovnstore/backend/internal/application/sync"
	"github.com/ovnstore/backend/internal/domain/shared"
	"github.com/ovnstore/backend/internal/infrastructure/config"
	"github.com/ovnstore/backend/internal/infrastructure/logger"
	"github.com/ovnstore/backend/internal/infrastructure/persistence"
	"github.com/ovnstore/backend/internal/infrastructure/projection"
)

// syncmongo runs one full rebuild of the MongoDB projections from the
// relational store and exits. Intended for first-time seeding and for
// recovering after the document store has drifted.
func main() {
	var (
		logLevel  string
		batchSize int
		timeout   time.Duration
		noLock    bool
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.IntVar(&batchSize, "batch-size", 0, "Records per read batch (0 uses the configured default)")
	flag.DurationVar(&timeout, "timeout", 30*time.Minute, "Abort the rebuild after this duration")
	flag.BoolVar(&noLock, "no-lock", false, "Skip the distributed lock (single-instance deployments only)")
	flag.Parse()

	log, err := logger.New(config.LogConfig{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	mongoClient, err := projection.NewMongoClient(ctx, &cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	writer := projection.NewMongoWriter(mongoClient, cfg.Mongo.Database)
	if err := writer.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to ensure document store indexes", zap.Error(err))
	}

	var lock syncapp.ResyncLock
	if !noLock {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			_ = redisClient.Close()
		}()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		lock = projection.NewRedisResyncLock(redisClient, cfg.Sync.LockTTL)
	}

	service := syncapp.NewResyncService(
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormCategoryRepository(db.DB),
		persistence.NewGormProductImageRepository(db.DB),
		persistence.NewGormReviewRepository(db.DB),
		persistence.NewGormOrderRepository(db.DB),
		persistence.NewGormContactRepository(db.DB),
		writer, lock, log)
	if batchSize > 0 {
		service.SetBatchSize(batchSize)
	} else if cfg.Sync.ResyncBatchSize > 0 {
		service.SetBatchSize(cfg.Sync.ResyncBatchSize)
	}

	summary, err := service.Run(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrResyncInProgress) {
			log.Fatal("Another resync is already running")
		}
		log.Fatal("Resync failed", zap.Error(err))
	}

	for _, result := range summary.Collections {
		log.Info("Collection synced",
			zap.String("collection", result.Collection),
			zap.Int64("synced", result.Synced),
			zap.Int64("pruned", result.Pruned),
			zap.Int64("failed", result.Failed))
	}
	log.Info("Resync finished",
		zap.String("status", summary.Status),
		zap.Int64("total_synced", summary.TotalSynced()),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
		zap.Int("errors", len(summary.Errors)))

	if summary.Status != syncapp.ResyncStateCompleted {
		for _, msg := range summary.Errors {
			log.Error("Resync error", zap.String("detail", msg))
		}
		os.Exit(1)
	}
}
