package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/scriptorium/curation-reconciler/internal/adapter"
	"github.com/scriptorium/curation-reconciler/internal/cache"
	"github.com/scriptorium/curation-reconciler/internal/chain"
	"github.com/scriptorium/curation-reconciler/internal/config"
	"github.com/scriptorium/curation-reconciler/internal/logger"
	"github.com/scriptorium/curation-reconciler/internal/notify"
	temporalprovider "github.com/scriptorium/curation-reconciler/internal/providers/temporal"
	"github.com/scriptorium/curation-reconciler/internal/store"
	"github.com/scriptorium/curation-reconciler/internal/sweeper"
	"github.com/scriptorium/curation-reconciler/internal/sync"
	"github.com/scriptorium/curation-reconciler/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()

	// Connect to Ethereum RPC
	ethDialer := adapter.NewEthClientDialer()
	ethClient, err := ethDialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.Fatal("Failed to dial Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
	}
	defer ethClient.Close()
	chainClient := chain.NewClient(cfg.Ethereum.ChainID, ethClient)
	logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.String("rpc_url", cfg.Ethereum.RPCURL))

	// Connect to NATS
	notifier, err := notify.NewNotifier(notify.Config{
		URL:             cfg.NATS.URL,
		MaxReconnects:   cfg.NATS.MaxReconnects,
		ReconnectWait:   cfg.NATS.ReconnectWait,
		ConnectionName:  cfg.NATS.ConnectionName,
		PublishRetryMax: cfg.NATS.PublishRetryMax,
	}, adapter.NewNatsJetStream(), jsonAdapter, clockAdapter)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer notifier.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))

	// Connect to Redis for cache invalidation
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error(err)
		}
	}()
	invalidator := cache.NewInvalidator(redisClient)
	logger.InfoCtx(ctx, "Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// Initialize the event synchronizer
	syncer := sync.NewSyncer(dataStore, chainClient, notifier, invalidator, sync.Config{
		ChainID:           cfg.Ethereum.ChainID,
		ContractAddress:   cfg.Ethereum.ContractAddress,
		StartBlock:        cfg.Ethereum.StartBlock,
		SafeConfirmations: cfg.Ethereum.SafeConfirmations,
		RangeCap:          cfg.Ethereum.RangeCap,
		TokenAddress:      cfg.Ethereum.TokenAddress,
		Currency:          cfg.Ethereum.Currency,
		TokenDecimals:     cfg.Ethereum.TokenDecimals,
	})

	// Initialize executor for activities
	executor := workflows.NewExecutor(dataStore, chainClient, syncer, notifier, invalidator, workflows.ExecutorConfig{
		ChainID:         cfg.Ethereum.ChainID,
		ContractAddress: cfg.Ethereum.ContractAddress,
		TokenAddress:    cfg.Ethereum.TokenAddress,
		Currency:        cfg.Ethereum.Currency,
		TokenDecimals:   cfg.Ethereum.TokenDecimals,
	})

	// Connect to Temporal with logger integration
	temporalLogger := temporalprovider.NewZapLoggerAdapter(logger.Default())
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporalLogger,
	})
	if err != nil {
		logger.Fatal("Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	// Create Temporal worker with Sentry interceptor
	sentryInterceptor := temporalprovider.NewSentryActivityInterceptor()
	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.TaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors: []interceptor.WorkerInterceptor{
				sentryInterceptor,
			},
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("task_queue", cfg.Temporal.TaskQueue))

	// Create worker core instance
	workerCore := workflows.NewWorker(executor, workflows.WorkerConfig{
		VerifyDelay:           cfg.Verifier.Delay,
		VerifyInitialInterval: cfg.Verifier.InitialInterval,
		VerifyMaxAttempts:     cfg.Verifier.MaxAttempts,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerCore.SyncCurationEvents)
	temporalWorker.RegisterWorkflow(workerCore.VerifyDonationPayment)
	logger.InfoCtx(ctx, "Registered workflows")

	// Register activities
	temporalWorker.RegisterActivity(executor.SyncCurationEvents)
	temporalWorker.RegisterActivity(executor.VerifyDonationPayment)
	logger.InfoCtx(ctx, "Registered activities")

	// Initialize and start the receipt audit sweeper
	auditSweeper := sweeper.NewReceiptAuditSweeper(&sweeper.ReceiptAuditSweeperConfig{
		ChainID:        cfg.Ethereum.ChainID,
		BatchSize:      cfg.ReceiptAudit.BatchSize,
		WorkerPoolSize: cfg.ReceiptAudit.Worker.PoolSize,
		RecheckAfter:   cfg.ReceiptAudit.RecheckAfter,
	}, dataStore, chainClient, invalidator, clockAdapter)

	sweeperErrCh := make(chan error, 1)
	go func() {
		if err := auditSweeper.Start(ctx); err != nil {
			sweeperErrCh <- err
		}
	}()
	logger.InfoCtx(ctx, "Started receipt audit sweeper",
		zap.Int("batch_size", cfg.ReceiptAudit.BatchSize),
		zap.Duration("recheck_after", cfg.ReceiptAudit.RecheckAfter),
	)

	// Start worker
	err = temporalWorker.Start()
	if err != nil {
		logger.Fatal("Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Wait for interrupt signal or sweeper failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-sweeperErrCh:
		logger.ErrorCtx(ctx, err)
	}

	// Stop the worker first so no new activities start
	temporalWorker.Stop()

	// Cancel context to stop the sweeper
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := auditSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Worker stopped")
}
