package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ferryflight-service/internal/infrastructure/config"
	"ferryflight-service/internal/infrastructure/oauth"
	"ferryflight-service/internal/infrastructure/persistence"
	"ferryflight-service/internal/interface/api"
	faamail "ferryflight-service/internal/interface/gmail"
	repo "ferryflight-service/internal/interface/repository"
	"ferryflight-service/internal/usecase"
	"ferryflight-service/pkg/logger"
	"ferryflight-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Ferry Flight Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Audit trail lives in PostgreSQL
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Metrics
	m := metrics.NewMetrics("ferryflight")

	// Set up repositories
	flightRepo := repo.NewMongoFlightRepository(db)
	documentRepo := repo.NewMongoDocumentRepository(db)
	signoffRepo := repo.NewMongoSignoffRepository(db)
	permitRepo := repo.NewMongoPermitRepository(db)
	discrepancyRepo := repo.NewMongoDiscrepancyRepository(db)
	correspondenceRepo := repo.NewMongoCorrespondenceRepository(db)
	auditRepo := repo.NewGormAuditLogRepository(gormDB)
	notifier := repo.NewWebhookNotificationRepository(cfg.WebhookEndpoint, cfg.WebhookToken, log)

	// Set up usecases
	engine := usecase.NewWorkflowEngine(flightRepo, auditRepo, notifier, log, m)
	flightService := usecase.NewFlightService(flightRepo, auditRepo, log)
	guards := usecase.NewGuardEvaluator(flightRepo, documentRepo)
	signoffRecorder := usecase.NewSignoffRecorder(signoffRepo, flightRepo, engine, log, m)
	timeline := usecase.NewTimeline(auditRepo)
	documentService := usecase.NewDocumentService(documentRepo, flightRepo, log)
	discrepancyService := usecase.NewDiscrepancyService(discrepancyRepo, flightRepo, log)
	permitService := usecase.NewPermitService(permitRepo, flightRepo, auditRepo, log)
	mailProcessor := usecase.NewPermitMailProcessor(correspondenceRepo, permitRepo, permitService, log, m)

	handler := api.NewHandler(
		flightService,
		engine,
		guards,
		signoffRecorder,
		permitService,
		documentService,
		discrepancyService,
		timeline,
		log,
	)

	// Set up FAA mailbox polling when configured
	if cfg.GmailClientID != "" {
		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			log,
		)
		tokenSource := gmailOAuth.GetTokenSource(ctx)

		mailService, err := faamail.NewFAAMailService(ctx, tokenSource, correspondenceRepo, log, m, cfg.GmailPollInterval)
		if err != nil {
			log.Fatal("Failed to create FAA mail service", "error", err)
		}

		go mailService.StartPolling(ctx)

		go func() {
			processTicker := time.NewTicker(30 * time.Second)
			defer processTicker.Stop()

			for {
				select {
				case <-ctx.Done():
					log.Info("Permit mail processor stopped")
					return
				case <-processTicker.C:
					if err := mailProcessor.ProcessPending(ctx); err != nil {
						log.Error("Error processing FAA correspondence", "error", err)
					}
				}
			}
		}()
	} else {
		log.Info("FAA mailbox polling disabled (no Gmail credentials)")
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Ferry Flight Service stopped")
}
