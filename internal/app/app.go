package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/tenpadel/catalogue/external/tenup"
	"github.com/tenpadel/catalogue/internal/config"
	"github.com/tenpadel/catalogue/internal/infrastructure/repository/postgres"
	"github.com/tenpadel/catalogue/internal/interfaces/httpapi"
	"github.com/tenpadel/catalogue/internal/platform/logging"
	"github.com/tenpadel/catalogue/internal/platform/resilience"
	"github.com/tenpadel/catalogue/internal/usecase"
)

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to database", "db", dbNameFromURL(cfg.DBURL))

	repo := postgres.NewTournamentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	feedClient := tenup.NewClient(tenup.ClientConfig{
		Timeout: cfg.FeedTimeout,
		Retries: cfg.FeedRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenReq,
		},
	}, logger)
	feed := tenup.NewLoader(feedClient, logger)

	catalogueSvc := usecase.NewCatalogueService(repo, feed, logger)

	handler := httpapi.NewHandler(catalogueSvc, db, logger)
	router := httpapi.NewRouter(handler, cfg.AdminToken, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing database", "error", err)
		}
	}

	return server, cleanup, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := sqlx.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
