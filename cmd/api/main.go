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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/Vinni986/AI-interview-platform/pkg/validator"

	"github.com/Vinni986/AI-interview-platform/internal/adapter/handler"
	"github.com/Vinni986/AI-interview-platform/internal/adapter/repository"
	"github.com/Vinni986/AI-interview-platform/internal/infrastructure/cache"
	"github.com/Vinni986/AI-interview-platform/internal/infrastructure/database"
	"github.com/Vinni986/AI-interview-platform/internal/infrastructure/external/voice"
	"github.com/Vinni986/AI-interview-platform/internal/infrastructure/storage"
	"github.com/Vinni986/AI-interview-platform/internal/usecase/apply"
	"github.com/Vinni986/AI-interview-platform/internal/usecase/auth"
	"github.com/Vinni986/AI-interview-platform/internal/usecase/dashboard"
	"github.com/Vinni986/AI-interview-platform/internal/usecase/interview"
	"github.com/Vinni986/AI-interview-platform/pkg/config"
	"github.com/Vinni986/AI-interview-platform/pkg/jwt"
	"github.com/Vinni986/AI-interview-platform/pkg/workflow"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize auth service
	authService := auth.NewService(userRepo, sessionRepo, jwtManager, cache.NewTokenStore(redisClient), logger)
	authHandler := handler.NewAuth(authService, logger)

	// Initialize workflow client
	log.Println("🔗 Initializing workflow client...")
	workflowClient := workflow.NewClient(&cfg.Workflow)
	if !cfg.WorkflowConfigured() {
		log.Println("⚠️  Workflow engine not configured; workflow-backed views will fail until WORKFLOW_BASE_URL is set")
	}

	// Initialize CV archive (optional)
	var cvArchive *storage.CVArchive
	if cfg.StorageConfigured() {
		log.Println("🗄️  Initializing CV archive...")
		cvArchive, err = storage.NewCVArchive(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize CV archive: %v", err)
		}
	}

	// Initialize voice client
	log.Println("🎙️  Initializing voice client...")
	useMockVoice := cfg.Server.Environment == "development" && !cfg.VoiceConfigured()
	voiceClient, err := voice.NewClient(&cfg.Voice, useMockVoice)
	if err != nil {
		log.Fatalf("Failed to initialize voice client: %v", err)
	}
	voiceAgentID := cfg.Voice.AgentID
	if useMockVoice {
		// The mock transport ignores the agent ID, but the live manager
		// treats an empty one as unconfigured and refuses to start.
		voiceAgentID = "mock-agent"
		log.Println("⚠️  Voice running in MOCK mode (no real agent needed)")
	}

	// Initialize usecases
	interviewService := interview.NewService(workflowClient, cfg.Features, logger)
	liveManager := interview.NewManager(voiceClient, voiceAgentID, logger)
	// The archive pointer only becomes the interface when it is real, so
	// an unconfigured archive stays a plain nil inside the service.
	var dashboardArchive dashboard.CVArchive
	if cvArchive != nil {
		dashboardArchive = cvArchive
	}
	dashboardService := dashboard.NewService(workflowClient, dashboardArchive, logger)
	applyService := apply.NewService(workflowClient, cvArchive, logger)

	// Initialize handlers
	interviewHandler := handler.NewInterview(interviewService, liveManager, logger)
	dashboardHandler := handler.NewDashboard(dashboardService, logger)
	applyHandler := handler.NewApply(applyService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, authService, authHandler, interviewHandler, dashboardHandler, applyHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
