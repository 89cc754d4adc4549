package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-provider-wallet/internal/facades"
	"github.com/sbilibin2017/gw-provider-wallet/internal/handlers"
	"github.com/sbilibin2017/gw-provider-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/middlewares"
	"github.com/sbilibin2017/gw-provider-wallet/internal/repositories"
	"github.com/sbilibin2017/gw-provider-wallet/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config carries all application settings parsed from the environment.
type config struct {
	appHost  string
	appPort  string
	logLevel string

	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int

	redisHost         string
	redisPort         int
	redisDB           int
	redisPassword     string
	redisPoolSize     int
	redisMinIdleConns int

	kafkaAddr  string
	kafkaTopic string

	gwHost string
	gwPort string

	jwtSecretKey string
	jwtExpSecond int

	mapleradBaseURL   string
	mapleradSecretKey string
	webhookSecret     string
	webhookSigAlgo    string
	signatureHeader   string
	providerRateLimit int
	providerRateWin   int

	rateCacheTTL int
}

// @title gw-provider-wallet API
// @version 1.0.0
// @description Microservice for provider-backed wallets: virtual accounts, withdrawals, cards and webhook-driven reconciliation
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, gRPC, provider, logging, and JWT
// configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "database")
	if cfg.pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if cfg.pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if cfg.pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if cfg.redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	// Kafka config
	cfg.kafkaAddr = getEnv("KAFKA_ADDR", "")
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "wallet-transactions")

	// gRPC rates config
	cfg.gwHost = getEnv("GW_EXCHANGER_HOST", "localhost")
	cfg.gwPort = getEnv("GW_EXCHANGER_PORT", "50051")

	// JWT config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	// Provider config
	cfg.mapleradBaseURL = getEnv("MAPLERAD_BASE_URL", "https://sandbox.api.maplerad.com/v1")
	cfg.mapleradSecretKey = getEnv("MAPLERAD_SECRET_KEY", "")
	cfg.webhookSecret = getEnv("MAPLERAD_WEBHOOK_SECRET", "")
	cfg.webhookSigAlgo = getEnv("MAPLERAD_WEBHOOK_ALGO", "sha512")
	cfg.signatureHeader = getEnv("MAPLERAD_SIGNATURE_HEADER", handlers.DefaultSignatureHeader)
	if cfg.providerRateLimit, err = strconv.Atoi(getEnv("MAPLERAD_RATE_LIMIT", "10")); err != nil {
		return
	}
	if cfg.providerRateWin, err = strconv.Atoi(getEnv("MAPLERAD_RATE_WINDOW_MS", "1000")); err != nil {
		return
	}

	if cfg.rateCacheTTL, err = strconv.Atoi(getEnv("RATE_CACHE_TTL_SECOND", "60")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, gRPC client, provider
// client, and HTTP server. It sets up routes, applies middleware, and handles
// graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.pgMaxOpenConns)
	db.SetMaxIdleConns(cfg.pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
		Password:     cfg.redisPassword,
		DB:           cfg.redisDB,
		PoolSize:     cfg.redisPoolSize,
		MinIdleConns: cfg.redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "error", err)
		return err
	}
	defer rdb.Close()

	// Kafka writer for settled transaction events
	var kafkaWriter services.KafkaWriter
	if cfg.kafkaAddr != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(cfg.kafkaAddr),
			Topic:    cfg.kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
	}

	// Connect to the exchange rates gRPC service
	grpcAddr := fmt.Sprintf("%s:%s", cfg.gwHost, cfg.gwPort)
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		logger.Log.Errorw("failed to connect to gRPC rates service", "addr", grpcAddr, "error", err)
		return err
	}
	defer conn.Close()
	ratesFacade := facades.NewExchangeRatesGRPCFacade(pb.NewExchangeServiceClient(conn))

	// Provider client, rate limited through Redis
	limiter := facades.NewRedisRateLimiter(rdb, "maplerad:rate_limit", cfg.providerRateLimit,
		time.Duration(cfg.providerRateWin)*time.Millisecond)
	provider := facades.NewMapleradClient(cfg.mapleradBaseURL, cfg.mapleradSecretKey, limiter)

	verifier, err := services.NewSignatureVerifier(cfg.webhookSecret, cfg.webhookSigAlgo)
	if err != nil {
		logger.Log.Errorw("failed to initialize webhook verifier", "error", err)
		return err
	}

	// JWT service
	jwtSvc := jwt.New(cfg.jwtSecretKey, time.Duration(cfg.jwtExpSecond)*time.Second)

	// Repositories
	txGetter := middlewares.GetTxFromContext
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	walletReadRepo := repositories.NewWalletReaderRepository(db)
	walletWriteRepo := repositories.NewWalletWriterRepository(db, txGetter)
	txWriteRepo := repositories.NewTransactionWriterRepository(db, txGetter)
	txReadRepo := repositories.NewTransactionReaderRepository(db)
	webhookEventRepo := repositories.NewWebhookEventRepository(db)
	cardReadRepo := repositories.NewCardReaderRepository(db)
	cardWriteRepo := repositories.NewCardWriterRepository(db)
	rateCacheRepo := repositories.NewExchangeRateCacheRepository(rdb, time.Duration(cfg.rateCacheTTL)*time.Second)

	// Services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, jwtSvc)
	walletService := services.NewWalletService(userReadRepo, userWriteRepo, walletReadRepo, walletWriteRepo, txWriteRepo, provider, kafkaWriter)
	webhookService := services.NewWebhookService(webhookEventRepo, userReadRepo, walletReadRepo, walletWriteRepo, txWriteRepo, cardWriteRepo, kafkaWriter)
	cardService := services.NewCardService(cardReadRepo, cardWriteRepo, walletReadRepo, walletWriteRepo, txWriteRepo, provider, walletService)
	exchangeService := services.NewExchangeService(walletReadRepo, walletWriteRepo, txWriteRepo, ratesFacade, rateCacheRepo)
	transactionService := services.NewTransactionService(txReadRepo)

	// Handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	balanceHandler := handlers.NewGetBalanceHandler(walletService, jwtSvc)
	accountHandler := handlers.NewCreateAccountHandler(walletService, jwtSvc)
	withdrawHandler := handlers.NewWithdrawHandler(walletService, jwtSvc)
	transactionsHandler := handlers.NewListTransactionsHandler(transactionService, jwtSvc)
	exchangeHandler := handlers.NewExchangeHandler(jwtSvc, exchangeService)
	ratesHandler := handlers.NewGetRatesHandler(ratesFacade, jwtSvc)
	issueCardHandler := handlers.NewIssueCardHandler(cardService, jwtSvc)
	listCardsHandler := handlers.NewListCardsHandler(cardService, jwtSvc)
	fundCardHandler := handlers.NewFundCardHandler(cardService, jwtSvc)
	withdrawCardHandler := handlers.NewWithdrawFromCardHandler(cardService, jwtSvc)
	freezeCardHandler := handlers.NewFreezeCardHandler(cardService, jwtSvc)
	webhookHandler := handlers.NewWebhookHandler(verifier, webhookService, cfg.signatureHeader)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/register", registerHandler)
		r.Post("/login", loginHandler)
		r.Post("/webhooks/maplerad", webhookHandler)

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(jwtSvc))
			r.Get("/balance", balanceHandler)
			r.Post("/wallet/account", accountHandler)
			r.Post("/wallet/withdraw", withdrawHandler)
			r.Get("/transactions", transactionsHandler)
			r.Get("/exchange/rates", ratesHandler)
			r.Post("/cards", issueCardHandler)
			r.Get("/cards", listCardsHandler)
			r.Post("/cards/{cardID}/fund", fundCardHandler)
			r.Post("/cards/{cardID}/withdraw", withdrawCardHandler)
			r.Patch("/cards/{cardID}/{action}", freezeCardHandler)

			// Both exchange legs commit atomically inside one transaction.
			r.Group(func(r chi.Router) {
				r.Use(middlewares.TxMiddleware(db))
				r.Post("/exchange", exchangeHandler)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
