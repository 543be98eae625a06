package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nestfin/nestfin/internal/config"
	lendingusecase "github.com/nestfin/nestfin/internal/lending/application/usecase"
	lendingkafka "github.com/nestfin/nestfin/internal/lending/infrastructure/kafka"
	lendingpg "github.com/nestfin/nestfin/internal/lending/infrastructure/postgres"
	lendingredis "github.com/nestfin/nestfin/internal/lending/infrastructure/redis"
	"github.com/nestfin/nestfin/internal/presentation/rest"
	walletusecase "github.com/nestfin/nestfin/internal/wallet/application/usecase"
	walletkafka "github.com/nestfin/nestfin/internal/wallet/infrastructure/kafka"
	walletpg "github.com/nestfin/nestfin/internal/wallet/infrastructure/postgres"
	"github.com/nestfin/nestfin/internal/wallet/interfaces/consumer"
	pkgkafka "github.com/nestfin/nestfin/pkg/kafka"
	"github.com/nestfin/nestfin/pkg/observability"
	pkgpostgres "github.com/nestfin/nestfin/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting nestfin",
		"http_port", cfg.HTTPPort,
		"metrics_port", cfg.MetricsPort,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	// Database.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://"+cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Redis.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Kafka. The same broker config drives both the producer and the
	// consumer, so SASL/TLS settings apply to both directions.
	kafkaCfg := pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLEnabled,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	}
	producer := pkgkafka.NewProducer(kafkaCfg)
	defer producer.Close()

	lendingPublisher := lendingkafka.NewEventPublisher(producer, cfg.Kafka.LendingTopic, logger)
	walletPublisher := walletkafka.NewEventPublisher(producer, cfg.Kafka.WalletTopic, logger)

	// Repositories and adapters.
	loanRepo := lendingpg.NewLoanRepo(pool)
	walletRepo := walletpg.NewWalletRepo(pool)
	goalRepo := walletpg.NewSavingsGoalRepo(pool)
	ledgerRepo := walletpg.NewLedgerRepo(pool)
	transferExecutor := walletpg.NewTransferExecutor(pool)
	planCache := lendingredis.NewPlanCache(redisClient, logger)

	// Lending use cases.
	applyForLoanUC := lendingusecase.NewApplyForLoanUseCase(loanRepo, lendingPublisher)
	approveLoanUC := lendingusecase.NewApproveLoanUseCase(loanRepo, lendingPublisher)
	rejectLoanUC := lendingusecase.NewRejectLoanUseCase(loanRepo, lendingPublisher)
	getLoanUC := lendingusecase.NewGetLoanUseCase(loanRepo)
	listLoansUC := lendingusecase.NewListLoansUseCase(loanRepo)
	repayLoanUC := lendingusecase.NewRepayLoanUseCase(loanRepo, transferExecutor, ledgerRepo, lendingPublisher)
	calculatePlanUC := lendingusecase.NewCalculateRepaymentPlanUseCase(loanRepo, planCache, logger)

	// Wallet use cases.
	createWalletUC := walletusecase.NewCreateWalletUseCase(walletRepo, walletPublisher)
	getWalletUC := walletusecase.NewGetWalletUseCase(walletRepo, goalRepo)
	creditWalletUC := walletusecase.NewCreditWalletUseCase(walletRepo, ledgerRepo, walletPublisher)
	debitWalletUC := walletusecase.NewDebitWalletUseCase(walletRepo, ledgerRepo, walletPublisher)
	createGoalUC := walletusecase.NewCreateSavingsGoalUseCase(walletRepo, goalRepo, walletPublisher)
	listGoalsUC := walletusecase.NewListSavingsGoalsUseCase(goalRepo)
	addToGoalUC := walletusecase.NewAddToSavingsGoalUseCase(goalRepo, transferExecutor, ledgerRepo, walletPublisher)
	redeemGoalUC := walletusecase.NewRedeemSavingsGoalUseCase(goalRepo, transferExecutor, ledgerRepo, walletPublisher)
	deleteGoalUC := walletusecase.NewDeleteSavingsGoalUseCase(goalRepo, transferExecutor, ledgerRepo, walletPublisher)
	listTransactionsUC := walletusecase.NewListTransactionsUseCase(ledgerRepo)
	listGoalTxnsUC := walletusecase.NewListGoalTransactionsUseCase(ledgerRepo)

	// Loan approval consumer: credits disbursed principal to the wallet.
	approvalHandler := consumer.NewLoanApprovalHandler(walletRepo, ledgerRepo, walletPublisher, logger)
	lendingConsumer := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.LendingTopic, approvalHandler.Handle, logger)
	defer lendingConsumer.Close()

	go func() {
		if err := lendingConsumer.Start(ctx); err != nil {
			logger.Error("lending consumer stopped", "error", err)
			cancel()
		}
	}()

	// HTTP API.
	mux := http.NewServeMux()

	healthHandler := rest.NewHealthHandler(logger, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})
	healthHandler.RegisterRoutes(mux)

	walletHandler := rest.NewWalletHandler(
		createWalletUC, getWalletUC, creditWalletUC, debitWalletUC,
		createGoalUC, listGoalsUC, addToGoalUC, redeemGoalUC, deleteGoalUC,
		listTransactionsUC, listGoalTxnsUC, logger,
	)
	walletHandler.RegisterRoutes(mux)

	loanHandler := rest.NewLoanHandler(
		applyForLoanUC, approveLoanUC, rejectLoanUC,
		getLoanUC, listLoansUC, repayLoanUC, calculatePlanUC, logger,
	)
	loanHandler.RegisterRoutes(mux)

	apiServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", metricsHandler)
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("http server listening", "addr", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("metrics server listening", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("nestfin stopped")
}
