package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpadapter "github.com/syndilend/syndilend-backend/internal/adapter/http"
	"github.com/syndilend/syndilend-backend/internal/adapter/repository/postgres"
	"github.com/syndilend/syndilend-backend/internal/config"
	"github.com/syndilend/syndilend-backend/internal/usecase/facility"
	"github.com/syndilend/syndilend-backend/internal/usecase/party"
	"github.com/syndilend/syndilend-backend/internal/usecase/syndicate"
	"github.com/syndilend/syndilend-backend/pkg/logger"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	log.Info().Msg("Starting syndicated lending backend")

	// 2. Setup database
	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// 3. Initialize repositories (Postgres)
	facilityRepo := postgres.NewFacilityRepository(db)
	investmentRepo := postgres.NewInvestmentRepository(db)
	syndicateRepo := postgres.NewSyndicateRepository(db)
	investorRepo := postgres.NewInvestorRepository(db)
	borrowerRepo := postgres.NewBorrowerRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// 4. Initialize services (use cases)
	validator := facility.NewValidator(syndicateRepo, investorRepo, borrowerRepo, facilityRepo)
	facilityService := facility.NewService(validator, facilityRepo, syndicateRepo, investmentRepo, uow)
	partyService := party.NewService(companyRepo, borrowerRepo, investorRepo)
	syndicateService := syndicate.NewService(syndicateRepo, borrowerRepo, investorRepo)

	// 5. Start HTTP server
	srv := httpadapter.New(httpadapter.Config{
		Port:             cfg.Port,
		Log:              log,
		FacilityService:  facilityService,
		PartyService:     partyService,
		SyndicateService: syndicateService,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	waitForShutdown(srv, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *httpadapter.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("HTTP server stopped")
}
