package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samuelarogbonlo/tata-pay/config"
	httpHandler "github.com/samuelarogbonlo/tata-pay/internal/adapter/http/handler"
	pgStorage "github.com/samuelarogbonlo/tata-pay/internal/adapter/storage/postgres"
	redisStorage "github.com/samuelarogbonlo/tata-pay/internal/adapter/storage/redis"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/internal/service"
	"github.com/samuelarogbonlo/tata-pay/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Tata Pay settlement service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	roleRepo := pgStorage.NewRoleRepo(pool)
	collateralRepo := pgStorage.NewCollateralRepo(pool)
	withdrawalRepo := pgStorage.NewWithdrawalRepo(pool)
	batchRepo := pgStorage.NewBatchRepo(pool)
	oracleRepo := pgStorage.NewOracleRepo(pool)
	voteRepo := pgStorage.NewVoteRepo(pool)
	eventRepo := pgStorage.NewEventRepo(pool)
	paramRepo := pgStorage.NewParamRepo(pool)
	proposalRepo := pgStorage.NewProposalRepo(pool)
	fraudLimitRepo := pgStorage.NewFraudLimitRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Seed runtime parameters. ON CONFLICT DO NOTHING, so values set
	// through governance survive restarts.
	if err := seedParams(ctx, paramRepo, cfg.Settlement); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed runtime parameters")
	}

	// Initialize Redis stores
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)
	velocityStore := redisStorage.NewVelocityStore(rdb)
	eventPublisher := redisStorage.NewEventPublisher(rdb, log)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	recorder := service.NewEventRecorder(eventRepo, eventPublisher, log)

	// Initialize business services. The ledger doubles as the collateral
	// mutator for settlement, and settlement as the executor the oracle
	// consensus drives.
	authSvc := service.NewAuthService(accountRepo, roleRepo, hashSvc, tokenSvc)
	ledgerSvc := service.NewLedgerService(collateralRepo, withdrawalRepo, paramRepo, recorder, transactor, log)
	settlementSvc := service.NewSettlementService(batchRepo, ledgerSvc, paramRepo, recorder, transactor, log)
	oracleSvc := service.NewOracleService(oracleRepo, voteRepo, batchRepo, settlementSvc, paramRepo, recorder, transactor, log)
	governanceSvc := service.NewGovernanceService(proposalRepo, roleRepo, oracleRepo, paramRepo, recorder, transactor, cfg.Governance, log)
	fraudSvc := service.NewFraudService(fraudLimitRepo, velocityStore, cfg.Fraud, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		LedgerSvc:      ledgerSvc,
		SettlementSvc:  settlementSvc,
		OracleSvc:      oracleSvc,
		GovernanceSvc:  governanceSvc,
		FraudSvc:       fraudSvc,
		EventRepo:      eventRepo,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func seedParams(ctx context.Context, repo *pgStorage.ParamRepo, cfg config.SettlementConfig) error {
	seeds := map[string]int64{
		domain.ParamMinimumDeposit:        cfg.MinimumDeposit,
		domain.ParamMinimumStake:          cfg.MinimumStake,
		domain.ParamSlashAmount:           cfg.SlashAmount,
		domain.ParamMaxBatchSize:          cfg.MaxBatchSize,
		domain.ParamApprovalThreshold:     cfg.ApprovalThreshold,
		domain.ParamWithdrawalDelaySecs:   int64(cfg.WithdrawalDelay.Seconds()),
		domain.ParamSettlementTimeoutSecs: int64(cfg.SettlementTimeout.Seconds()),
		domain.ParamPaused:                0,
	}
	for key, value := range seeds {
		if err := repo.Seed(ctx, key, value); err != nil {
			return fmt.Errorf("seed %s: %w", key, err)
		}
	}
	return nil
}
