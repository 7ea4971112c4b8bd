package config

import (
	"fmt"
	"time"
)

// Config is the full runtime configuration of the newster server.
type Config struct {
	Server    ServerConfig
	NewsAPI   NewsAPIConfig
	LLM       LLMConfig
	Breaker   BreakerConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	OTel      OTelConfig
}

type ServerConfig struct {
	Port            int           `env:"PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"45s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigins     []string      `env:"CORS_ALLOW_ORIGINS" default:"*"`
}

// NewsAPIConfig configures the upstream headline/search provider.
// APIKey may be empty; the news endpoints then answer with a configuration error.
type NewsAPIConfig struct {
	APIKey         string        `env:"NEWS_API_KEY"`
	BaseURL        string        `env:"NEWS_API_BASE_URL" default:"https://newsapi.org"`
	Country        string        `env:"NEWS_API_COUNTRY" default:"us"`
	SearchPageSize int           `env:"NEWS_SEARCH_PAGE_SIZE" default:"20"`
	Timeout        time.Duration `env:"NEWS_API_TIMEOUT" default:"10s"`
}

// LLMConfig configures the chat-completion provider used for summaries and analyses.
type LLMConfig struct {
	APIKey              string        `env:"GROQ_API_KEY"`
	BaseURL             string        `env:"GROQ_BASE_URL" default:"https://api.groq.com/openai"`
	Model               string        `env:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	Timeout             time.Duration `env:"GROQ_TIMEOUT" default:"30s"`
	AnalyzeContentLimit int           `env:"ANALYZE_CONTENT_LIMIT" default:"1000"`
	MaxTokens           int           `env:"GROQ_MAX_TOKENS" default:"512"`
}

type BreakerConfig struct {
	FailureThreshold int           `env:"BREAKER_FAILURE_THRESHOLD" default:"5"`
	SuccessThreshold int           `env:"BREAKER_SUCCESS_THRESHOLD" default:"2"`
	OpenTimeout      time.Duration `env:"BREAKER_OPEN_TIMEOUT" default:"30s"`
}

// RateLimitConfig limits inbound requests per client IP. It does not touch upstream quotas.
type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"INBOUND_RATE_LIMIT" default:"10"`
	Burst             int     `env:"INBOUND_RATE_BURST" default:"20"`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"json"`
}

type OTelConfig struct {
	Enabled        bool    `env:"OTEL_ENABLED" default:"false"`
	ServiceName    string  `env:"OTEL_SERVICE_NAME" default:"newster"`
	ServiceVersion string  `env:"SERVICE_VERSION" default:"0.0.0"`
	Environment    string  `env:"DEPLOYMENT_ENV" default:"development"`
	OTLPEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"http://localhost:4318"`
	SampleRatio    float64 `env:"OTEL_TRACE_SAMPLE_RATIO" default:"0.1"`
}

// NewConfig loads configuration from the environment and validates it.
func NewConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Address returns the listen address for the HTTP server.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
