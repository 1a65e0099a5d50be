package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cobaltsec/aegis/api/audit"
	"github.com/cobaltsec/aegis/api/config"
	"github.com/cobaltsec/aegis/api/controller"
	"github.com/cobaltsec/aegis/api/dao"
	"github.com/cobaltsec/aegis/api/db"
	"github.com/cobaltsec/aegis/api/grant"
	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/partition"
	"github.com/cobaltsec/aegis/api/pdp/engine"
	"github.com/cobaltsec/aegis/api/policy"
	"github.com/cobaltsec/aegis/api/risk"
	"github.com/cobaltsec/aegis/api/router"
	"github.com/cobaltsec/aegis/api/service"
	"github.com/cobaltsec/aegis/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logDir := config.GetString("log.dir")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}
	logger.InitLogger(logDir)
	defer logger.Sync()

	// Load and validate the role and partition tables. A ConfigError here is
	// fatal; the process must not serve with a malformed policy.
	tables, err := policy.Load()
	if err != nil {
		logger.Fatal("Invalid policy configuration", zap.Error(err))
	}
	policyStore := policy.NewStore()
	policyStore.Swap(tables.Roles)
	routingTable := partition.NewTable()
	routingTable.Swap(tables.Partitions, tables.ModulePartitions, tables.ResourceModules, tables.DefaultPartition)

	// Initialize Redis (grant store backend and rate limiter counters)
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize the principal directory
	var directory dao.Directory
	var principalDAO *dao.PrincipalDAO
	switch backend := config.GetString("directory.backend"); backend {
	case "neo4j":
		if err := db.InitNeo4j(); err != nil {
			logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
		}
		defer db.CloseNeo4j()
		principalDAO, err = dao.NewPrincipalDAO()
		if err != nil {
			logger.Fatal("Failed to initialize principal DAO", zap.Error(err))
		}
		cached, err := dao.NewCachedDirectory(
			principalDAO,
			int64(config.GetInt("directory.cache_max_entries")),
			config.GetDuration("directory.cache_ttl"),
		)
		if err != nil {
			logger.Fatal("Failed to initialize directory cache", zap.Error(err))
		}
		defer cached.Close()
		directory = cached
	case "memory":
		directory = dao.NewMemoryDirectory()
	default:
		logger.Fatal("Unknown directory backend", zap.String("backend", backend))
	}

	// Initialize the grant store and its directory mirror
	var grantStore grant.Store
	var grantMirror service.GrantMirror
	switch backend := config.GetString("grants.backend"); backend {
	case "redis":
		grantStore = grant.NewRedisStore(
			db.RedisClient,
			config.GetInt("grants.retries"),
			config.GetDuration("grants.retry_backoff"),
		)
	case "memory":
		grantStore = grant.NewMemoryStore()
	default:
		logger.Fatal("Unknown grant store backend", zap.String("backend", backend))
	}
	if principalDAO != nil {
		grantMirror = principalDAO
	}

	// Initialize the audit trail
	var auditRepo audit.Repository
	switch backend := config.GetString("audit.backend"); backend {
	case "elasticsearch":
		auditRepo, err = audit.NewElasticsearchRepository(
			config.GetString("elasticsearch.url"),
			config.GetString("audit.index"),
		)
		if err != nil {
			logger.Fatal("Failed to initialize Elasticsearch repository", zap.Error(err))
		}
	case "memory":
		auditRepo = audit.NewMemoryRepository()
	default:
		logger.Fatal("Unknown audit backend", zap.String("backend", backend))
	}
	auditService := audit.NewService(auditRepo, audit.Options{
		QueueSize:    config.GetInt("audit.queue_size"),
		Retries:      config.GetInt("audit.retries"),
		RetryBackoff: config.GetDuration("audit.retry_backoff"),
	})

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize utilities
	validationUtil := util.NewValidationUtil()
	notificationService := util.NewNotificationService()

	// Initialize risk scoring: deterministic rule scorer, optionally guarded
	// behind the predictive scorer when a model endpoint is configured.
	ruleScorer := &risk.RuleScorer{
		BusinessStart:      config.GetInt("risk.business_hours.start"),
		BusinessEnd:        config.GetInt("risk.business_hours.end"),
		SensitiveResources: config.GetStringSlice("risk.sensitive_resources"),
	}
	var scorer risk.Scorer = ruleScorer
	if url := config.GetString("risk.predictive.url"); url != "" {
		scorer = risk.NewFallbackScorer(
			risk.NewPredictiveScorer(url),
			ruleScorer,
			config.GetDuration("risk.predictive.timeout"),
		)
	}
	historyStore := risk.NewMemoryHistory(config.GetInt("risk.history_limit"))

	// Initialize the decision engine
	eng := engine.New(
		directory,
		policyStore,
		grantStore,
		scorer,
		historyStore,
		auditService,
		routingTable,
		engine.Options{
			RiskThreshold: config.GetFloat64("risk.threshold"),
			CacheTTL:      config.GetDuration("cache.ttl"),
			CacheWait:     config.GetDuration("cache.wait_timeout"),
			HistoryLimit:  config.GetInt("risk.history_limit"),
			HistoryWindow: config.GetDuration("risk.history_window"),
		},
	)

	// Initialize the partition router
	routingHistory := partition.NewHistory(config.GetInt("routing.history_capacity"))
	partitionRouter := partition.NewRouter(
		routingTable,
		policyStore,
		directory,
		routingHistory,
		auditService,
		partition.Options{
			DenyThreshold:    config.GetFloat64("routing.deny_threshold"),
			VolumeThreshold:  config.GetInt("routing.volume_threshold"),
			FailureThreshold: config.GetInt("routing.failure_threshold"),
			BusinessStart:    config.GetInt("risk.business_hours.start"),
			BusinessEnd:      config.GetInt("risk.business_hours.end"),
			Weights: partition.Weights{
				Tier: map[model.Tier]float64{
					model.TierPublic:     config.GetFloat64("routing.weights.tier.public"),
					model.TierInternal:   config.GetFloat64("routing.weights.tier.internal"),
					model.TierRestricted: config.GetFloat64("routing.weights.tier.restricted"),
					model.TierCritical:   config.GetFloat64("routing.weights.tier.critical"),
				},
				Read:     config.GetFloat64("routing.weights.read"),
				Write:    config.GetFloat64("routing.weights.write"),
				OffHours: config.GetFloat64("routing.weights.off_hours"),
				Volume:   config.GetFloat64("routing.weights.volume"),
				Failures: config.GetFloat64("routing.weights.failures"),
			},
		},
	)

	// Initialize services
	services := service.InitializeServices(
		eng,
		grantStore,
		grantMirror,
		partitionRouter,
		policyStore,
		routingTable,
		validationUtil,
		notificationService,
		eventBus,
		config.GetFloat64("risk.alert_threshold"),
	)

	// Hot reload the role and partition tables on config file changes.
	config.OnChange(func(e fsnotify.Event) {
		logger.Info("Config file changed; reloading policy tables", zap.String("file", e.Name))
		if _, err := services.PolicyAdmin.Reload(context.Background()); err != nil {
			logger.Error("Hot reload rejected; previous tables kept", zap.Error(err))
		}
	})

	// Initialize controllers and routes
	controllers := controller.InitializeControllers(services, auditService)
	gin.SetMode(gin.ReleaseMode)
	engineRouter := router.SetupRouter(
		controllers,
		config.GetInt("rate_limit.requests"),
		config.GetDuration("rate_limit.window"),
		[]string{config.GetString("auth.admin_group")},
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engineRouter,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Drain the audit queue before the process exits; decisions already
	// returned must not lose their trail.
	if err := auditService.Close(shutdownCtx); err != nil {
		logger.Error("Audit queue did not drain before shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
