package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/docaura/backend/internal/config"
	"github.com/docaura/backend/internal/handler"
	"github.com/docaura/backend/internal/llm"
	"github.com/docaura/backend/internal/middleware"
	"github.com/docaura/backend/internal/prompts"
	"github.com/docaura/backend/internal/repository/postgres"
	"github.com/docaura/backend/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("gateway starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	if cfg.AIGatewayKey == "" {
		// Fail closed per request: /analyze returns 500 until configured
		logger.Warn("AI gateway credential not set; analyze calls will fail")
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	keyRepo := postgres.NewAPIKeyRepository(repoConfig)
	usageRepo := postgres.NewUsageRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)

	// Load the embedded prompt registry
	promptRegistry, err := prompts.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load prompt registry: %v", err)
	}

	// Create services
	llmClient := llm.NewClient(cfg, logger)
	gatekeeper := service.NewGatekeeper(keyRepo, usageRepo, logger)
	analyzer := service.NewAnalysisService(llmClient, promptRegistry, logger)
	docService := service.NewDocumentService(docRepo, logger)

	// Create handlers
	analyzeHandler := handler.NewAnalyzeHandler(analyzer, logger)
	documentHandler := handler.NewDocumentHandler(docService, logger)

	logger.Info("services initialized")

	// Public API routes, admission-gated as a whole: validation,
	// authentication, plan/quota gates and the usage pre-charge run before
	// dispatch, including for unknown routes
	api := middleware.APIKeyAuth(gatekeeper, logger)(handler.NewRouter(analyzeHandler, documentHandler))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.HandleFunc("OPTIONS /", handler.AllowOptions)
	mux.Handle("/", api)

	// Build middleware chain (applied in reverse order - they wrap each other)
	// Order: CORS → Recovery → RequestLogger → Auth → Routes
	var root http.Handler = mux
	root = middleware.RequestLogger(logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - must be outermost to answer OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept", "x-client-info", "apikey", "x-api-key"},
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
