//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agent-platform/services/agent-api/internal/config"
	"agent-platform/services/agent-api/internal/domain/agent"
	"agent-platform/services/agent-api/internal/domain/chat"
	"agent-platform/services/agent-api/internal/infrastructure/database"
	"agent-platform/services/agent-api/internal/infrastructure/inference"
	"agent-platform/services/agent-api/internal/infrastructure/logger"
	"agent-platform/services/agent-api/internal/infrastructure/repository/agentrepo"
	"agent-platform/services/agent-api/internal/infrastructure/repository/messagerepo"
	"agent-platform/services/agent-api/internal/infrastructure/repository/sessionrepo"
	"agent-platform/services/agent-api/internal/interfaces/httpserver"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/handlers"
)

var repositorySet = wire.NewSet(
	agentrepo.NewRepository,
	wire.Bind(new(agent.Repository), new(*agentrepo.Repository)),
	sessionrepo.NewRepository,
	wire.Bind(new(chat.SessionRepository), new(*sessionrepo.Repository)),
	messagerepo.NewRepository,
	wire.Bind(new(chat.MessageRepository), new(*messagerepo.Repository)),
)

var domainSet = wire.NewSet(
	inference.NewOpenAIClient,
	wire.Bind(new(chat.Capability), new(*inference.OpenAIClient)),
	agent.NewService,
	chat.NewService,
)

// BuildApplication assembles the agent API with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		newLogger,
		newGormDB,
		repositorySet,
		domainSet,
		handlers.NewProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

func newGormDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}
