package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	apiconstants "github.com/guardian/guardian-api/apps/api/constants"
	"github.com/guardian/guardian-api/apps/api/handlers"
	"github.com/guardian/guardian-api/libs/go/chain"
	awsclient "github.com/guardian/guardian-api/libs/go/client/aws"
	"github.com/guardian/guardian-api/libs/go/client/eth"
	"github.com/guardian/guardian-api/libs/go/db"
	"github.com/guardian/guardian-api/libs/go/helpers"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/logger"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/guardian/guardian-api/libs/go/middleware"
	"github.com/guardian/guardian-api/libs/go/services"
	"github.com/guardian/guardian-api/libs/go/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const (
	// ModeLive serves a deployed guard through json-rpc and postgres.
	ModeLive = "live"
	// ModeDrill serves the in-process drill ledger.
	ModeDrill = "drill"

	GuardVariantFull      = "full"
	GuardVariantExecutors = "executors"

	defaultRateLimitRPS   = 20
	defaultRateLimitBurst = 40

	defaultGuardConfirmations = 2
	defaultGuardSyncInterval  = 15 * time.Second
)

// Handler Definitions
var (
	healthHandler   *handlers.HealthHandler
	registryHandler *handlers.RegistryHandler
	approvalHandler *handlers.ApprovalHandler
	guardHandler    *handlers.GuardHandler
	eventHandler    *handlers.EventHandler
	drillHandler    *handlers.DrillHandler

	// Middleware
	rateLimiter       *middleware.RateLimiter
	signatureVerifier *middleware.SignatureVerifier

	// stopGuardSync ends the log mirror of the previous Setup
	stopGuardSync context.CancelFunc

	// Metrics
	promRegistry *prometheus.Registry
	indicators   *metrics.PromIndicators

	handlerFactory *handlers.HandlerFactory
)

// Config is everything InitializeHandlers reads from the environment.
type Config struct {
	Stage        string
	Mode         string
	GuardVariant string

	RPCURL      string
	DatabaseURL string
	QueueURL    string

	// DrillKeeper overrides the drill keeper address when non-zero.
	DrillKeeper common.Address

	// GuardAddress is the deployed SafeGuard mirrored into the store.
	GuardAddress       common.Address
	GuardStartBlock    uint64
	GuardConfirmations uint64
	GuardSyncInterval  time.Duration

	RateLimitRPS    int
	RateLimitBurst  int
	SignatureWindow time.Duration
}

func InitializeHandlers() {
	// Load environment variables from .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err) // Use basic log before logger init
	}

	// --- Determine and Validate Stage ---
	if os.Getenv("STAGE") == "" {
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", helpers.StageLocal)
	}
	stage, err := helpers.ResolveStage(os.Getenv("STAGE"), helpers.StageLocal)
	if err != nil {
		log.Fatalf("Invalid STAGE environment variable: %v", err)
	}

	logger.InitLogger(stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	ctx := context.Background()

	secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
	}

	cfg, err := LoadConfig(ctx, secretsClient, stage)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if err := Setup(ctx, cfg); err != nil {
		logger.Fatal("Failed to initialize handlers", zap.Error(err), zap.String("mode", cfg.Mode))
	}
}

// LoadConfig resolves Config from the environment, reading credentials through secrets.
func LoadConfig(ctx context.Context, secrets *awsclient.SecretsManagerClient, stage string) (Config, error) {
	cfg := Config{
		Stage:           stage,
		Mode:            os.Getenv("GUARDIAN_MODE"),
		GuardVariant:    os.Getenv("GUARD_VARIANT"),
		QueueURL:        os.Getenv("PAUSE_EVENTS_QUEUE_URL"),
		RateLimitRPS:    envInt("RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:  envInt("RATE_LIMIT_BURST", defaultRateLimitBurst),
		SignatureWindow: middleware.DefaultSignatureWindow,
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeLive
		if stage == helpers.StageLocal {
			cfg.Mode = ModeDrill
		}
	}
	if cfg.GuardVariant == "" {
		cfg.GuardVariant = GuardVariantFull
	}
	if raw := os.Getenv("SIGNATURE_WINDOW"); raw != "" {
		window, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SIGNATURE_WINDOW %q: %w", raw, err)
		}
		cfg.SignatureWindow = window
	}

	switch cfg.Mode {
	case ModeDrill:
		if raw := os.Getenv("KEEPER_ADDRESS"); raw != "" {
			if !common.IsHexAddress(raw) {
				return Config{}, fmt.Errorf("KEEPER_ADDRESS is not a valid address")
			}
			cfg.DrillKeeper = common.HexToAddress(raw)
		}
		return cfg, nil

	case ModeLive:
		guard := os.Getenv("GUARD_ADDRESS")
		if !common.IsHexAddress(guard) || helpers.IsZeroAddress(common.HexToAddress(guard)) {
			return Config{}, fmt.Errorf("GUARD_ADDRESS must be the deployed guard in %s mode", ModeLive)
		}
		cfg.GuardAddress = common.HexToAddress(guard)
		var err error
		if cfg.GuardStartBlock, err = envUint("GUARD_START_BLOCK", 0); err != nil {
			return Config{}, err
		}
		if cfg.GuardConfirmations, err = envUint("GUARD_CONFIRMATIONS", defaultGuardConfirmations); err != nil {
			return Config{}, err
		}
		cfg.GuardSyncInterval = defaultGuardSyncInterval
		if raw := os.Getenv("GUARD_SYNC_INTERVAL"); raw != "" {
			interval, err := time.ParseDuration(raw)
			if err != nil || interval <= 0 {
				return Config{}, fmt.Errorf("invalid GUARD_SYNC_INTERVAL %q", raw)
			}
			cfg.GuardSyncInterval = interval
		}

		rpcURL, err := secrets.GetSecretString(ctx, "RPC_URL_ARN", "RPC_URL")
		if err != nil {
			return Config{}, fmt.Errorf("failed to get RPC_URL: %w", err)
		}
		if rpcURL == "" {
			return Config{}, fmt.Errorf("RPC_URL is required in %s mode", ModeLive)
		}
		cfg.RPCURL = rpcURL

		dsn, err := databaseURL(ctx, secrets, stage)
		if err != nil {
			return Config{}, err
		}
		cfg.DatabaseURL = dsn

		return cfg, nil

	default:
		return Config{}, fmt.Errorf("unknown GUARDIAN_MODE %q", cfg.Mode)
	}
}

func databaseURL(ctx context.Context, secrets *awsclient.SecretsManagerClient, stage string) (string, error) {
	if helpers.IsDeployedStage(stage) {
		logger.Info("Running in deployed stage, fetching DB credentials from Secrets Manager", zap.String("stage", stage))

		dbEndpoint := os.Getenv("DB_HOST")
		dbName := os.Getenv("DB_NAME")
		dbSSLMode := os.Getenv("DB_SSLMODE")
		if dbEndpoint == "" || dbName == "" {
			return "", fmt.Errorf("missing required DB environment variables for deployed stage (DB_HOST, DB_NAME)")
		}
		if dbSSLMode == "" {
			dbSSLMode = "require"
			logger.Warn("DB_SSLMODE not set, defaulting to 'require'")
		}

		type RdsSecret struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		var secretData RdsSecret
		if err := secrets.GetSecretJSON(ctx, "RDS_SECRET_ARN", "", &secretData); err != nil {
			return "", fmt.Errorf("failed to retrieve or parse RDS secret: %w", err)
		}
		if secretData.Username == "" || secretData.Password == "" {
			return "", fmt.Errorf("username or password not found in RDS secret data")
		}

		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
			url.QueryEscape(secretData.Username),
			url.QueryEscape(secretData.Password),
			dbEndpoint, dbName, dbSSLMode), nil
	}

	dsn, err := secrets.GetSecretString(ctx, "DATABASE_URL_ARN", "DATABASE_URL")
	if errors.Is(err, awsclient.ErrSecretNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get DATABASE_URL: %w", err)
	}
	return dsn, nil
}

// Setup builds every handler for cfg. It does not touch the network in drill mode.
func Setup(ctx context.Context, cfg Config) error {
	promRegistry = prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	indicators = metrics.NewPromIndicators(promRegistry)

	var publisher interfaces.EventPublisher
	if cfg.QueueURL != "" {
		sqsPublisher, err := awsclient.NewSQSPublisher(ctx, cfg.QueueURL)
		if err != nil {
			return fmt.Errorf("failed to create SQS publisher: %w", err)
		}
		publisher = sqsPublisher
		logger.Info("Publishing market pauses to SQS", zap.String("queue_url", cfg.QueueURL))
	}

	var factoryConfig handlers.HandlerFactoryConfig
	var err error
	switch cfg.Mode {
	case ModeDrill:
		factoryConfig, err = drillServices(ctx, cfg, publisher)
	case ModeLive:
		factoryConfig, err = liveServices(ctx, cfg, publisher)
	default:
		err = fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if err != nil {
		return err
	}
	factoryConfig.Mode = cfg.Mode

	handlerFactory = handlers.NewHandlerFactory(factoryConfig)
	healthHandler = handlerFactory.NewHealthHandler()
	registryHandler = handlerFactory.NewRegistryHandler()
	approvalHandler = handlerFactory.NewApprovalHandler()
	guardHandler = handlerFactory.NewGuardHandler()
	eventHandler = handlerFactory.NewEventHandler()
	drillHandler = handlerFactory.NewDrillHandler()

	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	signatureVerifier = middleware.NewSignatureVerifier(cfg.SignatureWindow)

	logger.Info("Handlers initialized",
		zap.String("mode", cfg.Mode),
		zap.String("guard_variant", cfg.GuardVariant),
		zap.Bool("drill", handlerFactory.HasDrill()))
	return nil
}

func liveServices(ctx context.Context, cfg Config, publisher interfaces.EventPublisher) (handlers.HandlerFactoryConfig, error) {
	client, err := eth.Dial(ctx, cfg.RPCURL, indicators)
	if err != nil {
		return handlers.HandlerFactoryConfig{}, fmt.Errorf("failed to dial rpc: %w", err)
	}

	st, pinger, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return handlers.HandlerFactoryConfig{}, err
	}

	if err := startGuardSync(ctx, st, client, cfg); err != nil {
		return handlers.HandlerFactoryConfig{}, err
	}

	registry := services.NewRegistryService(st, client, indicators)
	approvals := services.NewApprovalService(st, indicators)
	return handlers.HandlerFactoryConfig{
		Common: handlers.CommonServicesConfig{
			Registry:      registry,
			Approvals:     approvals,
			Guard:         newGuard(cfg.GuardVariant, registry, approvals, client),
			Events:        services.NewEventService(st, publisher),
			Accounts:      client,
			ChainID:       client.ChainID(),
			GuardContract: cfg.GuardAddress,
		},
		Pinger: pinger,
	}, nil
}

// startGuardSync catches the store up with the guard logs and keeps
// following them in the background. A failed first pass is retried on the
// next tick.
func startGuardSync(ctx context.Context, st store.Store, source interfaces.GuardLogSource, cfg Config) error {
	guardSync, err := services.NewGuardSyncService(st, source, services.GuardSyncConfig{
		Guard:         cfg.GuardAddress,
		StartBlock:    cfg.GuardStartBlock,
		Confirmations: cfg.GuardConfirmations,
	}, indicators)
	if err != nil {
		return fmt.Errorf("failed to create guard sync: %w", err)
	}

	applied, err := guardSync.Sync(ctx)
	if err != nil {
		logger.Warn("Initial guard sync failed", zap.Error(err), zap.Int("applied", applied))
	} else {
		logger.Info("Guard state synced", zap.String("guard", cfg.GuardAddress.Hex()), zap.Int("applied", applied))
	}

	if stopGuardSync != nil {
		stopGuardSync()
	}
	syncCtx, cancel := context.WithCancel(context.Background())
	stopGuardSync = cancel
	go guardSync.Run(syncCtx, cfg.GuardSyncInterval)
	return nil
}

func drillServices(ctx context.Context, cfg Config, publisher interfaces.EventPublisher) (handlers.HandlerFactoryConfig, error) {
	drillConfig := chain.DefaultDrillConfig()
	if !helpers.IsZeroAddress(cfg.DrillKeeper) {
		drillConfig.Keeper = cfg.DrillKeeper
	}
	drillConfig.ExecutorsOnly = cfg.GuardVariant == GuardVariantExecutors
	drillConfig.Publisher = publisher

	d, err := chain.NewDrill(ctx, drillConfig, indicators)
	if err != nil {
		return handlers.HandlerFactoryConfig{}, fmt.Errorf("failed to seed drill ledger: %w", err)
	}

	reader := d.Reader()
	registry := services.NewRegistryService(d.Store, reader, indicators)
	approvals := chain.NewLedgerApprovals(d, indicators)
	return handlers.HandlerFactoryConfig{
		Common: handlers.CommonServicesConfig{
			Registry:  registry,
			Approvals: approvals,
			Guard:     newGuard(cfg.GuardVariant, registry, approvals, reader),
			Events:    services.NewEventService(d.Store, publisher),
			Accounts:  reader,
			ChainID:   new(big.Int).Set(d.Ledger.ChainID()),
		},
		Drill: d,
	}, nil
}

func newGuard(variant string, registry interfaces.RegistryService, approvals interfaces.ApprovalService, accounts interfaces.AccountReader) interfaces.GuardService {
	if variant == GuardVariantExecutors {
		return services.NewExecutorsGuardService(registry, indicators)
	}
	return services.NewSafeGuardService(registry, approvals, accounts, indicators)
}

// openStore connects to postgres and applies migrations. Without a dsn the
// guard state lives in memory and the health check has nothing to ping.
func openStore(ctx context.Context, dsn string) (store.Store, handlers.Pinger, error) {
	if dsn == "" {
		logger.Warn("DATABASE_URL not set, guard state is kept in memory and lost on restart")
		return store.NewMemoryStore(), nil, nil
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Minute * 30
	poolConfig.MaxConnIdleTime = time.Minute * 15

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	pg := store.NewPgStore(pool)
	return pg, pg, nil
}

func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())
	router.Use(middleware.CorrelationIDMiddleware())

	isDevelopment := os.Getenv("GIN_MODE") != "release"
	router.Use(middleware.RequestLoggingMiddleware(indicators, isDevelopment))

	// Health for raw lambda url check
	router.GET("/:stage/health", healthHandler.Health)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler(promRegistry)))

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		public.Use(rateLimiter.Middleware())
		{
			accounts := public.Group("/accounts/:account")
			{
				accounts.GET("/executors", registryHandler.ListExecutors)
				accounts.GET("/auditors", registryHandler.ListAuditors)
				accounts.GET("/approvals", approvalHandler.ListApprovals)
				accounts.GET("/approvals/:nonce", approvalHandler.GetApproval)
				accounts.GET("/events", middleware.ValidateQueryParams(middleware.EventsQueryValidation), eventHandler.ListEvents)
			}
			public.POST("/hash", middleware.ValidateInput(middleware.TransactionHashValidation), guardHandler.TransactionHash)
		}

		// Signed routes: the verifier runs first so the limiter keys on the signer
		signed := v1.Group("")
		signed.Use(signatureVerifier.Middleware(), rateLimiter.Middleware())
		{
			signed.POST("/accounts/:account/approvals", middleware.ValidateInput(middleware.ApproveValidation), approvalHandler.Approve)
			signed.POST("/accounts/:account/check", middleware.ValidateInput(middleware.CheckTransactionValidation), guardHandler.CheckTransaction)
		}

		if drillHandler != nil {
			drill := v1.Group("/drill")
			drill.Use(rateLimiter.Middleware())
			{
				drill.GET("/info", drillHandler.Info)
				drill.GET("/markets/:market", drillHandler.MarketState)
			}

			drillSigned := v1.Group("/drill")
			drillSigned.Use(signatureVerifier.Middleware(), rateLimiter.Middleware())
			{
				drillSigned.POST("/safe/transactions", middleware.ValidateInput(middleware.DrillSubmitValidation), drillHandler.SubmitTransaction)
				drillSigned.POST("/pause", middleware.ValidateInput(middleware.DrillPauseValidation), drillHandler.Pause)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Error: apiconstants.RouteNotFound})
	})
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	corsConfig.AllowOrigins = envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	corsConfig.AllowMethods = envList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"})
	corsConfig.AllowHeaders = envList("CORS_ALLOWED_HEADERS", []string{
		"Origin",
		"Content-Type",
		"Accept",
		"X-Correlation-ID",
		helpers.SignerAddressHeader,
		helpers.SignerTimestampHeader,
		helpers.SignerSignatureHeader,
	})
	corsConfig.ExposeHeaders = envList("CORS_EXPOSED_HEADERS", []string{
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"Retry-After",
		"X-Correlation-ID",
	})
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}

func envList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	values := strings.Split(raw, ",")
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s %q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func envUint(key string, fallback uint64) (uint64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}
