package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the agent service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"agent-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"AGENT_API_PORT" envDefault:"8080"`
	MetricsPort     int           `env:"METRICS_PORT" envDefault:"9091"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database
	DatabaseURL    string        `env:"DATABASE_URL,notEmpty"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true"`

	// AI Provider (OpenAI-compatible)
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY,notEmpty"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL"`
	ChatModel       string        `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
	STTModel        string        `env:"STT_MODEL" envDefault:"whisper-1"`
	TTSModel        string        `env:"TTS_MODEL" envDefault:"tts-1"`
	TTSVoice        string        `env:"TTS_VOICE" envDefault:"alloy"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"120s"`

	// Uploads
	MaxAudioBytes int64 `env:"MAX_AUDIO_BYTES" envDefault:"26214400"`

	// Rate limits (requests per minute, per client)
	ReadRateLimit    float64 `env:"READ_RATE_LIMIT" envDefault:"60"`
	WriteRateLimit   float64 `env:"WRITE_RATE_LIMIT" envDefault:"30"`
	SessionRateLimit float64 `env:"SESSION_RATE_LIMIT" envDefault:"20"`
	VoiceRateLimit   float64 `env:"VOICE_RATE_LIMIT" envDefault:"10"`

	// Observability
	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Features
	EnableSwagger bool `env:"ENABLE_SWAGGER" envDefault:"true"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	cfg.OpenAIBaseURL = strings.TrimSpace(cfg.OpenAIBaseURL)
	if cfg.OpenAIBaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.OpenAIBaseURL); err != nil {
			return nil, fmt.Errorf("invalid OPENAI_BASE_URL: %w", err)
		}
	}
	if cfg.MaxAudioBytes <= 0 {
		cfg.MaxAudioBytes = 25 * 1024 * 1024
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MetricsAddr returns the Prometheus listen address.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

var Version = "1.0.0"
