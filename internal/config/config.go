// Package config loads daemon configuration from environment variables,
// optionally overlaid by a YAML file named in PROFESSOR_CONFIG.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port  int
	Debug bool

	// Database. DatabaseURL selects the hosted postgres store; when it
	// is empty the daemon runs on a local sqlite file instead.
	DatabaseURL string
	SQLitePath  string

	// RabbitMQ. An empty URL disables the queue and side effects are
	// applied in process.
	RabbitMQURL string

	// LLM
	LLMProvider string // openai, ollama
	LLMAPIKey   string
	LLMModel    string
	OllamaURL   string

	// Code execution service
	ExecURL     string
	ExecAPIKey  string
	ExecAPIHost string
}

// Load reads configuration from environment variables, then applies the
// YAML overlay file if PROFESSOR_CONFIG is set.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		Debug:       getEnvBool("DEBUG", false),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "professor.db"),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		LLMProvider: getEnv("LLM_PROVIDER", "openai"),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMModel:    getEnv("LLM_MODEL", ""),
		OllamaURL:   getEnv("OLLAMA_URL", "http://localhost:11434"),
		ExecURL:     getEnv("EXEC_API_URL", "https://judge0-ce.p.rapidapi.com"),
		ExecAPIKey:  getEnv("EXEC_API_KEY", ""),
		ExecAPIHost: getEnv("EXEC_API_HOST", "judge0-ce.p.rapidapi.com"),
	}

	if path := os.Getenv("PROFESSOR_CONFIG"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, fmt.Errorf("apply config file: %w", err)
		}
	}

	if cfg.LLMProvider == "openai" && cfg.LLMAPIKey == "" && !cfg.Debug {
		return nil, fmt.Errorf("LLM_API_KEY must be set for the openai provider")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
