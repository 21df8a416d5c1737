package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"agent-platform/services/agent-api/internal/config"
	"agent-platform/services/agent-api/internal/domain/agent"
	"agent-platform/services/agent-api/internal/domain/chat"
	"agent-platform/services/agent-api/internal/infrastructure/database"
	"agent-platform/services/agent-api/internal/infrastructure/inference"
	"agent-platform/services/agent-api/internal/infrastructure/logger"
	"agent-platform/services/agent-api/internal/infrastructure/observability"
	"agent-platform/services/agent-api/internal/infrastructure/repository/agentrepo"
	"agent-platform/services/agent-api/internal/infrastructure/repository/messagerepo"
	"agent-platform/services/agent-api/internal/infrastructure/repository/sessionrepo"
	"agent-platform/services/agent-api/internal/interfaces/httpserver"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/handlers"
)

// @title Agent API
// @version 1.0
// @description Conversational agent platform with text and voice pipelines
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("migrate database")
		}
	}

	agentRepository := agentrepo.NewRepository(db)
	sessionRepository := sessionrepo.NewRepository(db)
	messageRepository := messagerepo.NewRepository(db)

	provider := inference.NewOpenAIClient(cfg, log)

	agentService := agent.NewService(agentRepository, log)
	chatService := chat.NewService(cfg, agentRepository, sessionRepository, messageRepository, provider, log)

	handlerProvider := handlers.NewProvider(cfg, agentService, chatService, log)
	httpServer := httpserver.New(cfg, log, handlerProvider)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
