package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	_ "vote-ledger/docs"
	"vote-ledger/internal/config"
	"vote-ledger/internal/domain/admin"
	"vote-ledger/internal/domain/ledger"
	api "vote-ledger/internal/http"
	"vote-ledger/internal/metrics"
	"vote-ledger/internal/platform/logging"
	jwtpkg "vote-ledger/internal/platform/jwt"
	"vote-ledger/internal/repository"
	"vote-ledger/internal/worker"
)

// @title           Vote Ledger API
// @version         1.0
// @description     One vote per voter, live tallies, admin-managed candidates
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	api.SetLogger(logger)
	metrics.Register()

	for _, key := range cfg.InsecureDefaults {
		logger.Warn("using built-in development value, set it before exposing the server", "key", key)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer closeStore()
	logger.Info("store ready", "backend", cfg.StoreBackend)

	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("admin password hash error: %v", err)
	}

	events := make(chan ledger.Event, 100)
	ledgerSvc := ledger.NewService(store,
		ledger.WithMaxAttempts(cfg.CASMaxAttempts),
		ledger.WithRetryDelay(cfg.CASRetryDelay),
		ledger.WithMaxRetryDelay(cfg.CASMaxRetryDelay),
		ledger.WithEvents(events),
		ledger.WithLogger(logger),
	)
	adminCtl := admin.NewController(ledgerSvc)

	statsWorker := worker.NewStatsWorker(events, logger)
	poller := worker.NewSyncPoller(ledgerSvc, cfg.PollInterval, logger)
	poller.Register(worker.MetricsObserver())

	var voteRate rate.Limit
	if cfg.VoteRatePerMin > 0 {
		voteRate = rate.Every(time.Minute / time.Duration(cfg.VoteRatePerMin))
	}

	router := api.NewRouter(api.Deps{
		Ledger:            ledgerSvc,
		Admin:             adminCtl,
		Poller:            poller,
		JWT:               jwtpkg.NewManager(cfg.JWTSecret, ""),
		AdminPasswordHash: adminHash,
		VoteRate:          voteRate,
		VoteBurst:         cfg.VoteRateBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go statsWorker.Run(ctx)
	go poller.Run(ctx)

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	logger.Info("server stopped")
}
