package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-storefront/config"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/currency"
	"github.com/fekuna/omnipos-storefront/internal/server"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/search"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(cfg *config.Config) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, !skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply pending migrations on start")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, migrate bool) error {
	// 1. Logger
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	// 2. Database
	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	defer db.Close()
	appLogger.Info("Connected to database", zap.String("driver", db.DriverName()))

	if migrate {
		applied, err := database.Migrate(ctx, db)
		if err != nil {
			return err
		}
		appLogger.Info("Migrations applied", zap.Strings("versions", applied))
	}

	// 3. Redis (optional)
	var appCache cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			appCache = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 4. Kafka producer (optional)
	var publisher broker.Publisher = broker.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(&broker.Config{Brokers: cfg.Kafka.Brokers})
		defer producer.Close()
		publisher = producer
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	// 5. Elasticsearch (optional)
	var esClient *search.Client
	if len(cfg.Elastic.Addresses) > 0 {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, search uses SQL", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 6. Currency rates
	rates := currency.DefaultRates()
	if cfg.Currency.RatesFile != "" {
		rates, err = currency.LoadRatesFile(cfg.Currency.RatesFile)
		if err != nil {
			return err
		}
	}

	// 7. Operators
	if err := cfg.Admin.Validate(); err != nil {
		return err
	}
	operators, err := auth.ParseOperators(cfg.Admin.Operators)
	if err != nil {
		return err
	}
	if operators.Len() == 0 {
		appLogger.Warn("ADMIN_OPERATORS is empty, admin endpoints will reject every request")
	}

	// 8. HTTP router
	router := server.NewRouter(server.Deps{
		Config:    cfg,
		DB:        db,
		Cache:     appCache,
		Publisher: publisher,
		Search:    esClient,
		Converter: currency.NewConverter(rates),
		Operators: operators,
		Tokens:    auth.NewTokenIssuer(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL),
		Logger:    appLogger,
	})
	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 9. gRPC health
	lis, err := net.Listen("tcp", listenAddr(cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	grpcServer, healthServer := server.NewGRPCServer()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go server.WatchHealth(ctx, healthServer, db, 10*time.Second, appLogger)

	errCh := make(chan error, 2)
	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", lis.Addr().String()))
		errCh <- grpcServer.Serve(lis)
	}()
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		appLogger.Error("server failed", zap.Error(err))
	}

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
	return nil
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
