// Package container is the composition root: it wires config into
// concrete infrastructure, infrastructure into the engine, and the
// engine into the HTTP server. Nothing outside this package knows the
// concrete postgres/redis/nats types.
package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	httpadapter "github.com/prashant0321/wallet-service/internal/adapters/http"
	"github.com/prashant0321/wallet-service/internal/adapters/http/handlers"
	"github.com/prashant0321/wallet-service/internal/application/engine"
	"github.com/prashant0321/wallet-service/internal/application/facade"
	"github.com/prashant0321/wallet-service/internal/config"
	"github.com/prashant0321/wallet-service/internal/domain/entities"
	"github.com/prashant0321/wallet-service/internal/infrastructure/cache"
	"github.com/prashant0321/wallet-service/internal/infrastructure/messaging"
	"github.com/prashant0321/wallet-service/internal/infrastructure/persistence/postgres"
	"github.com/prashant0321/wallet-service/internal/pkg/logger"
)

// Container holds every long-lived dependency the process needs, so
// main can start and stop the whole thing with two calls.
type Container struct {
	cfg    *config.Config
	logger *slog.Logger

	pool      *pgxpool.Pool
	redis     *redis.Client
	nats      *nats.Conn
	publisher *messaging.NATSPublisher

	Engine *engine.Engine
	Facade *facade.Facade
	Server *httpadapter.Server
}

// New builds every dependency in order: config is already loaded by
// the caller, logger next so everything after it can log, then the
// store, then the engine/facade, then the HTTP server. The system
// accounts are bootstrapped after the engine and facade are built and
// before the HTTP handlers, router and server.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	pool, err := postgres.NewConnectionPool(ctx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConnections,
		MinConns:        cfg.Database.MinConnections,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WarnContext(ctx, "redis unreachable at startup, idempotency cache will fall back to postgres", "error", err)
		}
	}

	var natsConn *nats.Conn
	if cfg.NATS.URL != "" {
		natsConn, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			log.WarnContext(ctx, "nats unreachable at startup, audit events will not be published", "error", err)
		}
	}
	publisher := messaging.NewNATSPublisher(natsConn, cfg.NATS.Subject, log)

	accounts := postgres.NewAccountRepository(pool)
	assetTypes := postgres.NewAssetTypeRepository(pool)
	wallets := postgres.NewWalletRepository(pool)
	transactions := postgres.NewTransactionRepository(pool)
	idempotency := cache.NewRedisIdempotencyCache(
		postgres.NewIdempotencyRepository(pool), redisClient, log,
	)
	uow := postgres.NewUnitOfWork(pool)

	eng := engine.New(accounts, assetTypes, wallets, transactions, idempotency, publisher, uow, cfg.Idempotency.KeyTTL)
	f := facade.New(eng)

	if err := bootstrapSystemAccounts(ctx, accounts); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to bootstrap system accounts: %w", err)
	}

	walletHandler := handlers.NewWalletHandler(f)
	catalogHandler := handlers.NewCatalogHandler(f)

	router := httpadapter.NewRouter(&httpadapter.RouterConfig{
		Logger:         log,
		Environment:    cfg.App.Environment,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
		Verifier:       f,
		Wallet:         walletHandler,
		Catalog:        catalogHandler,
	})

	server := httpadapter.NewServer(&httpadapter.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            fmt.Sprintf("%d", cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Logger:          log,
	}, router)

	return &Container{
		cfg:       cfg,
		logger:    log,
		pool:      pool,
		redis:     redisClient,
		nats:      natsConn,
		publisher: publisher,
		Engine:    eng,
		Facade:    f,
		Server:    server,
	}, nil
}

// bootstrapSystemAccounts inserts the three fixed counterparties the
// engine's flows move funds against, if they don't already exist.
// Idempotent: safe to run on every startup of every replica.
func bootstrapSystemAccounts(ctx context.Context, accounts *postgres.AccountRepository) error {
	names := []string{engine.SystemTreasury, engine.SystemBonusPool, engine.SystemRevenue}
	for _, name := range names {
		existing, err := accounts.FindByUsername(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := accounts.Save(ctx, entities.NewSystemAccount(name)); err != nil {
			return err
		}
	}
	return nil
}

// Run starts the HTTP server and blocks until shutdown.
func (c *Container) Run() error {
	return c.Server.Run()
}

// Shutdown releases every held resource. Safe to call even if New
// returned a partially constructed Container.
func (c *Container) Shutdown(ctx context.Context) error {
	var firstErr error
	if c.Server != nil {
		if err := c.Server.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.nats != nil {
		c.nats.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.pool != nil {
		c.pool.Close()
	}
	return firstErr
}
