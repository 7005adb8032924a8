package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	artifactcatalog "arcana/contexts/catalog/artifact-catalog"
	postgresadapter "arcana/contexts/catalog/artifact-catalog/adapters/postgres"
	"arcana/contexts/catalog/artifact-catalog/adapters/snowflakeid"
	workerapp "arcana/contexts/catalog/artifact-catalog/application/workers"
	"arcana/internal/platform/config"
	"arcana/internal/platform/db"
	"arcana/internal/platform/httpserver"
	"arcana/internal/platform/messaging"
	"arcana/internal/platform/snowflake"
	"arcana/internal/platform/tracing"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	tracing  tracing.Shutdown
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workerapp.OutboxRelay
	audit        workerapp.OwnershipAuditConsumer
	pollInterval time.Duration
	tracing      tracing.Shutdown
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	// Refuse to start with a bad site/worker pair rather than failing every create.
	generator, err := snowflake.New(snowflake.Config{
		SiteID:   cfg.SnowflakeSiteID,
		WorkerID: cfg.SnowflakeWorkerID,
	})
	if err != nil {
		return nil, fmt.Errorf("snowflake generator: %w", err)
	}

	shutdown, err := tracing.Init(cfg.ServiceName, cfg.TracingEnabled, os.Stdout)
	if err != nil {
		return nil, err
	}

	pg, repo, err := connectCatalog(cfg, logger)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, err
	}

	module := artifactcatalog.NewModule(artifactcatalog.Dependencies{
		Artifacts:   repo,
		Wizards:     repo,
		Ownership:   repo,
		Clock:       postgresadapter.SystemClock{},
		ArtifactIDs: snowflakeid.New(generator),
		EventIDs:    postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})

	logger.Info("snowflake generator configured",
		"event", "bootstrap_snowflake_configured",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"site_id", cfg.SnowflakeSiteID,
		"worker_id", cfg.SnowflakeWorkerID,
		"epoch", generator.Epoch().Format(time.RFC3339),
	)

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		tracing:  shutdown,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	shutdown, err := tracing.Init(cfg.ServiceName, cfg.TracingEnabled, os.Stdout)
	if err != nil {
		return nil, err
	}

	pg, repo, err := connectCatalog(cfg, logger)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		_ = shutdown(context.Background())
		return nil, err
	}

	return &WorkerApp{
		postgres: pg,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		audit: workerapp.OwnershipAuditConsumer{
			Subscriber: kafka,
			Logger:     logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		tracing:      shutdown,
		logger:       logger,
	}, nil
}

func connectCatalog(cfg config.Config, logger *slog.Logger) (*db.Postgres, *postgresadapter.Repository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := db.Connect(ctx, cfg.PostgresDSN, db.DefaultOptions())
	if err != nil {
		return nil, nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	if cfg.AutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, fmt.Errorf("catalog migrate: %w", err)
		}
		logger.Info("catalog schema migrated",
			"event", "bootstrap_catalog_migrated",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return pg, repo, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	var errs []error
	if a.tracing != nil {
		errs = append(errs, a.tracing(context.Background()))
	}
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	return errors.Join(errs...)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.audit.Start(ctx); err != nil {
		return err
	}

	pollInterval := w.pollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.tracing != nil {
		errs = append(errs, w.tracing(context.Background()))
	}
	if w.postgres != nil {
		errs = append(errs, w.postgres.Close())
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
