package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig validates the loaded configuration values
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateNewsAPIConfig(&config.NewsAPI); err != nil {
		return fmt.Errorf("news api config validation failed: %w", err)
	}

	if err := validateLLMConfig(&config.LLM); err != nil {
		return fmt.Errorf("llm config validation failed: %w", err)
	}

	if err := validateBreakerConfig(&config.Breaker); err != nil {
		return fmt.Errorf("breaker config validation failed: %w", err)
	}

	if err := validateRateLimitConfig(&config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	if err := validateOTelConfig(&config.OTel); err != nil {
		return fmt.Errorf("otel config validation failed: %w", err)
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.ReadTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got ReadTimeout: %v", config.ReadTimeout)
	}

	if config.WriteTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got WriteTimeout: %v", config.WriteTimeout)
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got RequestTimeout: %v", config.RequestTimeout)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got ShutdownTimeout: %v", config.ShutdownTimeout)
	}

	return nil
}

func validateNewsAPIConfig(config *NewsAPIConfig) error {
	if err := validateBaseURL(config.BaseURL); err != nil {
		return err
	}

	if config.SearchPageSize < 1 || config.SearchPageSize > 100 {
		return fmt.Errorf("search page size must be between 1 and 100, got %d", config.SearchPageSize)
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", config.Timeout)
	}

	return nil
}

func validateLLMConfig(config *LLMConfig) error {
	if err := validateBaseURL(config.BaseURL); err != nil {
		return err
	}

	if strings.TrimSpace(config.Model) == "" {
		return fmt.Errorf("model must not be empty")
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", config.Timeout)
	}

	if config.AnalyzeContentLimit < 1 {
		return fmt.Errorf("analyze content limit must be at least 1, got %d", config.AnalyzeContentLimit)
	}

	if config.MaxTokens < 1 {
		return fmt.Errorf("max tokens must be at least 1, got %d", config.MaxTokens)
	}

	return nil
}

func validateBreakerConfig(config *BreakerConfig) error {
	if config.FailureThreshold < 1 {
		return fmt.Errorf("failure threshold must be at least 1, got %d", config.FailureThreshold)
	}

	if config.SuccessThreshold < 1 {
		return fmt.Errorf("success threshold must be at least 1, got %d", config.SuccessThreshold)
	}

	if config.OpenTimeout <= 0 {
		return fmt.Errorf("open timeout must be positive, got %v", config.OpenTimeout)
	}

	return nil
}

func validateRateLimitConfig(config *RateLimitConfig) error {
	if config.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %v", config.RequestsPerSecond)
	}

	if config.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got %d", config.Burst)
	}

	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[strings.ToLower(config.Level)] {
		return fmt.Errorf("invalid log level: %s, must be one of: debug, info, warn, error", config.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}

	if !validFormats[strings.ToLower(config.Format)] {
		return fmt.Errorf("invalid log format: %s, must be one of: json, text", config.Format)
	}

	return nil
}

func validateOTelConfig(config *OTelConfig) error {
	if config.SampleRatio < 0 || config.SampleRatio > 1 {
		return fmt.Errorf("sample ratio must be between 0 and 1, got %v", config.SampleRatio)
	}

	if config.Enabled && strings.TrimSpace(config.OTLPEndpoint) == "" {
		return fmt.Errorf("otlp endpoint is required when otel is enabled")
	}

	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base url must be an absolute URL, got %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}
