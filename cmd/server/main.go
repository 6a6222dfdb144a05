package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/ovnstore/backend/internal/application/catalog"
	contactsapp "github.com/ovnstore/backend/internal/application/contacts"
	ordersapp "github.com/ovnstore/backend/internal/application/orders"
	syncapp "github.com/ovnstore/backend/internal/application/sync"
	domainsync "github.com/ovnstore/backend/internal/domain/sync"
	"github.com/ovnstore/backend/internal/infrastructure/config"
	"github.com/ovnstore/backend/internal/infrastructure/event"
	"github.com/ovnstore/backend/internal/infrastructure/logger"
	"github.com/ovnstore/backend/internal/infrastructure/persistence"
	"github.com/ovnstore/backend/internal/infrastructure/projection"
	"github.com/ovnstore/backend/internal/interfaces/http/handler"
	"github.com/ovnstore/backend/internal/interfaces/http/middleware"
	"github.com/ovnstore/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLevel := gormlogger.Silent
	if !cfg.App.IsProduction() {
		gormLevel = gormlogger.Warn
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var writer domainsync.DocumentWriter
	if cfg.Mongo.Enabled {
		mongoClient, err := projection.NewMongoClient(ctx, &cfg.Mongo)
		if err != nil {
			log.Fatal("Failed to connect to document store", zap.Error(err))
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Error("Error disconnecting document store", zap.Error(err))
			}
		}()

		mongoWriter := projection.NewMongoWriter(mongoClient, cfg.Mongo.Database)
		if err := mongoWriter.EnsureIndexes(ctx); err != nil {
			log.Fatal("Failed to ensure document store indexes", zap.Error(err))
		}
		writer = mongoWriter
		log.Info("Document store connected", zap.String("database", cfg.Mongo.Database))
	} else {
		writer = projection.NewMemoryWriter()
		log.Warn("Document store disabled, projections held in memory")
	}

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

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	imageRepo := persistence.NewGormProductImageRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)

	// Event bus and projection pipeline
	eventBus := event.NewInMemoryEventBus(log)

	var retryQueue *projection.RetryQueue
	if cfg.Sync.Enabled {
		projectionHandler := syncapp.NewProjectionHandler(
			productRepo, categoryRepo, imageRepo, reviewRepo,
			orderRepo, contactRepo, writer, nil, log)
		projectionHandler.SetTimeout(cfg.Sync.HandleTimeout)

		retryQueue = projection.NewRetryQueue(
			projectionHandler, log,
			cfg.Sync.RetryQueueSize,
			cfg.Sync.RetryBaseDelay, cfg.Sync.RetryMaxDelay,
			cfg.Sync.RetryMaxPerTask)
		projectionHandler.SetRetry(retryQueue)
		retryQueue.Start()
		defer retryQueue.Stop()

		eventBus.Subscribe(projectionHandler)
		log.Info("Document projection enabled")
	} else {
		log.Warn("Document projection disabled by configuration")
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(context.Background())
	}()

	// Application services
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, eventBus, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, imageRepo, reviewRepo, eventBus, log)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo, eventBus, log)
	orderService := ordersapp.NewOrderService(orderRepo, productRepo, eventBus, log)
	contactService := contactsapp.NewContactService(contactRepo, eventBus, log)

	resyncLock := projection.NewRedisResyncLock(redisClient, cfg.Sync.LockTTL)
	resyncService := syncapp.NewResyncService(
		productRepo, categoryRepo, imageRepo, reviewRepo,
		orderRepo, contactRepo, writer, resyncLock, log)
	resyncService.SetBatchSize(cfg.Sync.ResyncBatchSize)

	// HTTP server
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))
	engine.Use(middleware.Secure())

	healthHandler := handler.NewHealthHandler(
		handler.HealthCheck{Name: "database", Probe: func(ctx context.Context) error {
			return db.Ping()
		}},
		handler.HealthCheck{Name: "document_store", Probe: writer.Ping},
		handler.HealthCheck{Name: "redis", Probe: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
	)
	engine.GET("/health", healthHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(
		handler.NewCategoryHandler(categoryService),
		handler.NewProductHandler(productService),
		handler.NewReviewHandler(reviewService),
		handler.NewOrderHandler(orderService),
		handler.NewContactHandler(contactService),
		handler.NewSyncHandler(resyncService, log),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
