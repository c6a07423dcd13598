// Package main is the entry point for the Folio portfolio tracking service.
// It wires the storage layer, domain services, background jobs and the HTTP
// API, then runs until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/foliotracker/folio/internal/clientdata"
	"github.com/foliotracker/folio/internal/clients/exchangerate"
	"github.com/foliotracker/folio/internal/config"
	"github.com/foliotracker/folio/internal/database"
	"github.com/foliotracker/folio/internal/modules/allocation"
	allocationhandlers "github.com/foliotracker/folio/internal/modules/allocation/handlers"
	"github.com/foliotracker/folio/internal/modules/bonds"
	bondshandlers "github.com/foliotracker/folio/internal/modules/bonds/handlers"
	"github.com/foliotracker/folio/internal/modules/cash"
	cashhandlers "github.com/foliotracker/folio/internal/modules/cash/handlers"
	"github.com/foliotracker/folio/internal/modules/currency"
	currencyhandlers "github.com/foliotracker/folio/internal/modules/currency/handlers"
	"github.com/foliotracker/folio/internal/modules/holdings"
	holdingshandlers "github.com/foliotracker/folio/internal/modules/holdings/handlers"
	"github.com/foliotracker/folio/internal/modules/returns"
	returnshandlers "github.com/foliotracker/folio/internal/modules/returns/handlers"
	"github.com/foliotracker/folio/internal/modules/risk"
	riskhandlers "github.com/foliotracker/folio/internal/modules/risk/handlers"
	"github.com/foliotracker/folio/internal/modules/snapshots"
	snapshotshandlers "github.com/foliotracker/folio/internal/modules/snapshots/handlers"
	"github.com/foliotracker/folio/internal/modules/tax"
	taxhandlers "github.com/foliotracker/folio/internal/modules/tax/handlers"
	"github.com/foliotracker/folio/internal/scheduler"
	"github.com/foliotracker/folio/internal/server"
	"github.com/foliotracker/folio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
	logger.SetGlobalLogger(log)

	log.Info().Str("data_dir", cfg.DataDir).Int("port", cfg.Port).Msg("Starting folio")

	// Databases
	portfolioDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "portfolio.db"),
		Profile: database.ProfileStandard,
		Name:    "portfolio",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open portfolio database")
	}
	defer portfolioDB.Close()

	clientDataDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "client_data.db"),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open client data database")
	}
	defer clientDataDB.Close()

	for _, db := range []*database.DB{portfolioDB, clientDataDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("db", db.Name()).Msg("Failed to migrate database")
		}
	}

	// External clients and cache
	cacheRepo := clientdata.NewRepository(clientDataDB.Conn())
	rateClient := exchangerate.NewClient(cfg.ExchangeRateAPIURL, cacheRepo, log)

	// Repositories
	currencyRepo := currency.NewRepository(portfolioDB.Conn(), log)
	holdingsRepo := holdings.NewRepository(portfolioDB.Conn(), log)
	bondsRepo := bonds.NewRepository(portfolioDB.Conn(), log)
	allocationRepo := allocation.NewRepository(portfolioDB.Conn(), log)
	snapshotsRepo := snapshots.NewRepository(portfolioDB.Conn(), log)
	cashRepo := cash.NewRepository(portfolioDB.Conn(), log)

	// Services
	currencyService := currency.NewService(currencyRepo, rateClient, log)
	holdingsService := holdings.NewService(holdingsRepo, currencyService, log)
	bondsService := bonds.NewService(bondsRepo, log)
	allocationService := allocation.NewService(allocationRepo, holdingsService, cfg.RebalanceThreshold, log)
	cashService := cash.NewService(cashRepo, currencyService, log)
	snapshotsService := snapshots.NewService(snapshotsRepo, holdingsService, bondsService, cashService, log)
	cashService.SetSnapshotter(snapshotsService)
	returnsService := returns.NewService(snapshotsRepo, log)
	riskService := risk.NewService(snapshotsRepo, holdingsService, cfg.RiskFreeRate, log)
	taxService := tax.NewService(holdingsRepo, log)

	// Background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.SnapshotSchedule, scheduler.NewDailySnapshotJob(snapshotsService, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register daily snapshot job")
	}
	if err := sched.AddJob(cfg.RateRefreshSchedule, scheduler.NewRateRefreshJob(currencyService, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register rate refresh job")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Log:     log,
		Port:    cfg.Port,
		DevMode: cfg.DevMode,

		HoldingsHandler:   holdingshandlers.NewHandler(holdingsService, log),
		BondsHandler:      bondshandlers.NewHandler(bondsService, log),
		CurrencyHandler:   currencyhandlers.NewHandler(currencyService, log),
		AllocationHandler: allocationhandlers.NewHandler(allocationService, log),
		SnapshotsHandler:  snapshotshandlers.NewHandler(snapshotsService, log),
		ReturnsHandler:    returnshandlers.NewHandler(returnsService, log),
		RiskHandler:       riskhandlers.NewHandler(riskService, log),
		TaxHandler:        taxhandlers.NewHandler(taxService, log),
		CashHandler:       cashhandlers.NewHandler(cashService, log),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
