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

	"go.uber.org/zap"

	"github.com/dev-rpatel/janus/audit"
	"github.com/dev-rpatel/janus/config"
	"github.com/dev-rpatel/janus/controller"
	"github.com/dev-rpatel/janus/db"
	logger "github.com/dev-rpatel/janus/logging"
	"github.com/dev-rpatel/janus/pep"
	"github.com/dev-rpatel/janus/policy"
	"github.com/dev-rpatel/janus/router"
	"github.com/dev-rpatel/janus/service"
	"github.com/dev-rpatel/janus/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Redis (only needed for rate limiting)
	rateLimitEnabled := config.GetBool("redis.enabled")
	if rateLimitEnabled {
		if err := db.InitRedis(); err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		defer db.CloseRedis()
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize the audit sink: Elasticsearch when configured, the
	// application logger otherwise.
	var auditRepository audit.Repository
	if esURL := config.GetString("elasticsearch.url"); esURL != "" {
		repo, err := audit.NewElasticsearchRepository(esURL)
		if err != nil {
			logger.Fatal("Failed to initialize Elasticsearch audit repository", zap.Error(err))
		}
		auditRepository = repo
	} else {
		auditRepository = audit.NewLoggerRepository()
	}
	auditService := audit.NewService(auditRepository)

	// Load the policy set. A document that does not parse prevents startup.
	policyStore, err := policy.NewStore(policy.FileSource(config.GetString("policy.file")))
	if err != nil {
		logger.Fatal("Failed to load policy document", zap.Error(err))
	}

	// Initialize the enforcement point and services
	enforcementPoint := pep.New(policyStore, auditService)
	decisionService := service.NewDecisionService(enforcementPoint, policyStore, eventBus)

	// Initialize controllers
	controllers := controller.InitializeControllers(decisionService, enforcementPoint)

	engine := router.SetupRouter(controllers, router.Options{
		JWTSecret:         []byte(config.GetString("auth.jwtSecret")),
		RateLimitEnabled:  rateLimitEnabled,
		RateLimitRequests: config.GetInt("ratelimit.requests"),
		RateLimitWindow:   parseWindow(config.GetString("ratelimit.window")),
	})

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// SIGHUP reloads the policy document; SIGINT/SIGTERM shut down.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range signals {
		if sig == syscall.SIGHUP {
			if err := decisionService.ReloadPolicies(ctx); err != nil {
				logger.Error("Policy reload failed, previous set kept", zap.Error(err))
			}
			continue
		}
		break
	}
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

// parseWindow falls back to one minute on a malformed duration so a bad
// config value degrades the rate limit instead of refusing to start.
func parseWindow(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return time.Minute
	}
	return duration
}
