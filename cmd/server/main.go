package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/migrations"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/server"
	"github.com/fekuna/omnipos-catalog-service/pkg/broker"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/database"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/search"

	addOnH "github.com/fekuna/omnipos-catalog-service/internal/addon/handler"
	addOnRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/addon/repository"
	addOnUCPkg "github.com/fekuna/omnipos-catalog-service/internal/addon/usecase"

	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	prodSearchPkg "github.com/fekuna/omnipos-catalog-service/internal/product/search"
	prodUCPkg "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"

	typeH "github.com/fekuna/omnipos-catalog-service/internal/producttype/handler"
	typeRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/producttype/repository"
	typeUCPkg "github.com/fekuna/omnipos-catalog-service/internal/producttype/usecase"

	varH "github.com/fekuna/omnipos-catalog-service/internal/variant/handler"
	varRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/variant/repository"
	varUCPkg "github.com/fekuna/omnipos-catalog-service/internal/variant/usecase"

	"go.uber.org/zap"
)

func main() {
	// 1. Configuration
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		FilePath:          cfg.Logger.File,
	})
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Database
	if cfg.Postgres.AutoMigrate {
		version, err := migrations.Up(cfg.Postgres.URL)
		if err != nil {
			appLogger.Fatal("Could not apply migrations", zap.Error(err))
		}
		appLogger.Info("Database schema up to date", zap.Uint("version", version))
	}

	db, err := database.NewPostgres(ctx, &database.Config{
		URL:             cfg.Postgres.URL,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database")

	// 4. Cache
	var listStore cache.Cache = cache.NopCache{}
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, &cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, product list cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			listStore = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}
	listCache := product.NewListCache(listStore, cfg.Redis.TTL, appLogger)

	// 5. Catalog events
	var publisher events.Publisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()
		publisher = events.NewBrokerPublisher(producer, appLogger)
		appLogger.Info("Publishing catalog events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 6. Search
	var productIndex product.SearchIndex
	if len(cfg.Elastic.Addresses) > 0 {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, search falls back to the database", zap.Error(err))
		} else {
			idx := prodSearchPkg.NewElasticIndex(esClient, cfg.Elastic.Index)
			if err := idx.EnsureIndex(ctx); err != nil {
				appLogger.Warn("Could not prepare product index", zap.Error(err))
			}
			productIndex = idx
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 7. Repositories
	typeRepo := typeRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	varRepo := varRepoPkg.NewPGRepository(db)
	addOnRepo := addOnRepoPkg.NewPGRepository(db)

	// 8. UseCases
	typeUC := typeUCPkg.NewProductTypeUseCase(typeRepo, prodRepo, publisher, listCache, productIndex, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, typeRepo, listCache, productIndex, publisher, appLogger)
	varUC := varUCPkg.NewVariantUseCase(varRepo, prodRepo, listCache, publisher, appLogger)
	addOnUC := addOnUCPkg.NewAddOnUseCase(addOnRepo, prodRepo, listCache, publisher, appLogger)

	// 9. HTTP server
	var limiter *server.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = server.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		limiter.StartCleanup(ctx, time.Minute)
	}
	router := server.NewRouter(server.RouterConfig{
		Development:    cfg.Server.IsDevelopment(),
		AllowedOrigins: cfg.CORS.Origins,
		RateLimiter:    limiter,
	}, appLogger,
		typeH.NewProductTypeHandler(typeUC, appLogger),
		prodH.NewProductHandler(prodUC, appLogger),
		varH.NewVariantHandler(varUC, appLogger),
		addOnH.NewAddOnHandler(addOnUC, appLogger),
	)

	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 10. gRPC health server
	grpcServer, healthServer := server.NewGRPCServer()
	lis, err := net.Listen("tcp", listenAddr(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}
	go server.WatchDatabase(ctx, db, healthServer, 10*time.Second)
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
