package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecommerce-transactions/config"
	"ecommerce-transactions/internal/adapter/gateway"
	"ecommerce-transactions/internal/adapter/gateway/nodo"
	"ecommerce-transactions/internal/adapter/gateway/npg"
	"ecommerce-transactions/internal/adapter/gateway/pgs"
	"ecommerce-transactions/internal/adapter/gateway/redirect"
	httpHandler "ecommerce-transactions/internal/adapter/http/handler"
	"ecommerce-transactions/internal/adapter/http/middleware"
	"ecommerce-transactions/internal/adapter/paymentmethods"
	"ecommerce-transactions/internal/adapter/queue"
	mongoStorage "ecommerce-transactions/internal/adapter/storage/mongo"
	pgStorage "ecommerce-transactions/internal/adapter/storage/postgres"
	redisStorage "ecommerce-transactions/internal/adapter/storage/redis"
	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/internal/service"
	"ecommerce-transactions/internal/worker"
	"ecommerce-transactions/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting eCommerce transactions service")

	ctx := context.Background()

	// Event store
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	if err := pgStorage.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate event store")
	}
	log.Info().Msg("PostgreSQL connected")

	// Read model
	mongoClient, err := mongoStorage.NewClient(ctx, cfg.Mongo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("MongoDB disconnect failed")
		}
	}()
	viewRepo := mongoStorage.NewViewRepository(
		mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.ViewCollection),
		cfg.Mongo.Timeout,
	)
	if err := viewRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create read model indexes")
	}

	// Redis
	rdb, err := redisStorage.Connect(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	encSvc, err := service.NewAESEncryptionService(cfg.Confidential.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Upstream clients
	nodoClient := nodo.NewClient(
		gateway.NewHTTPClient(gateway.Timeouts{Connect: cfg.Nodo.ConnectTimeout, Read: cfg.Nodo.ReadTimeout}),
		nodo.Settings{
			BaseURL:     cfg.Nodo.BaseURL,
			IDPSP:       cfg.Nodo.IDPSP,
			IDBrokerPSP: cfg.Nodo.IDBrokerPSP,
			IDChannel:   cfg.Nodo.IDChannel,
		},
	)
	gatewayHTTP := gateway.NewHTTPClient(gateway.Timeouts{Connect: cfg.Gateways.ConnectTimeout, Read: cfg.Gateways.ReadTimeout})
	pgsClient := pgs.NewClient(gatewayHTTP, cfg.Gateways.PGSBaseURL)
	npgClient := npg.NewClient(gatewayHTTP, cfg.Gateways.NPGBaseURL, cfg.Gateways.NPGAPIKey)

	redirectHTTP := gateway.NewHTTPClient(gateway.Timeouts{Connect: cfg.Redirect.ConnectTimeout, Read: cfg.Redirect.ReadTimeout})
	redirectPSPs := make([]service.RedirectPSP, 0, len(cfg.Redirect.PSPs))
	for _, p := range cfg.Redirect.PSPs {
		redirectPSPs = append(redirectPSPs, service.RedirectPSP{PspID: p.PSPID, URL: p.URL, APIKey: p.APIKey, Logo: p.Logo})
	}
	redirects := service.NewRedirectRegistry(redirectPSPs, func(psp service.RedirectPSP) (ports.RedirectClient, error) {
		return redirect.NewClient(redirectHTTP, psp.URL, psp.APIKey)
	})

	// Retry queues
	kafkaWriter := queue.NewWriter(cfg.Kafka)
	defer func() {
		if err := kafkaWriter.Close(); err != nil {
			log.Error().Err(err).Msg("Kafka writer close failed")
		}
	}()
	publisher := queue.NewKafkaPublisher(kafkaWriter, cfg.Kafka)

	// Services
	eventStore := pgStorage.NewEventStore(pool, encSvc)
	projector := service.NewProjectionService(viewRepo, encSvc, log)
	orchestrator := service.NewGatewayOrchestrator(pgsClient, npgClient, redirects, service.GatewaySettings{
		NPGResultURL:      cfg.Gateways.NPGResultURL,
		NPGNotifyURL:      cfg.Gateways.NPGNotifyURL,
		NPGCancelURL:      cfg.Gateways.NPGCancelURL,
		RedirectReturnURL: cfg.Redirect.ReturnURL,
		RedirectTimeout:   cfg.Nodo.PaymentTokenTimeout,
		SessionRetry:      service.RetryPolicy{Attempts: cfg.Gateways.SessionAttempts, Delay: cfg.Gateways.SessionDelay},
	}, log)
	closureSvc := service.NewClosureService(eventStore, projector, nodoClient, publisher, service.ClosureSettings{
		IDPSP:       cfg.Nodo.IDPSP,
		IDBrokerPSP: cfg.Nodo.IDBrokerPSP,
		IDChannel:   cfg.Nodo.IDChannel,
		MaxAttempts: cfg.Kafka.MaxClosureAttempts,
	}, log)
	transactionSvc := service.NewTransactionService(service.TransactionServiceDeps{
		Events:         eventStore,
		Projector:      projector,
		Views:          viewRepo,
		Cache:          redisStorage.NewPaymentRequestInfoCache(rdb),
		Nodo:           nodoClient,
		PaymentMethods: paymentmethods.NewCatalog(cfg.PaymentMethods),
		Orchestrator:   orchestrator,
		Closure:        closureSvc,
		Queue:          publisher,
		Tokens:         tokenSvc,
		Settings: service.TransactionSettings{
			PSPFiscalCode:         cfg.Nodo.PSPFiscalCode,
			PaymentTokenTimeout:   cfg.Nodo.PaymentTokenTimeout,
			PaymentRequestInfoTTL: cfg.Redis.PaymentRequestInfoTTL,
			TokenRetry:            service.RetryPolicy{Attempts: cfg.TokenRetry.Attempts, Delay: cfg.TokenRetry.Delay},
		},
		Logger: log,
	})

	// Closure retry worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	reader := worker.NewReader(cfg.Kafka)
	retryWorker := worker.NewClosureRetryWorker(reader, closureSvc, log)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := retryWorker.Run(workerCtx); err != nil {
			log.Error().Err(err).Msg("Closure retry worker stopped")
		}
	}()

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		TransactionSvc: transactionSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		RateLimit: middleware.RateLimitRule{
			Limit:  int64(cfg.RateLimit.Requests),
			Window: cfg.RateLimit.Window,
		},
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			mongoStorage.NewHealthCheck(mongoClient),
			redisStorage.NewHealthCheck(rdb),
		},
		Mode:   cfg.Server.Mode,
		Logger: log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	stopWorker()
	<-workerDone
	if err := reader.Close(); err != nil {
		log.Error().Err(err).Msg("Kafka reader close failed")
	}

	log.Info().Msg("Server exited")
}
