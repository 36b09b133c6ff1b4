// Package api wires the application together and serves the HTTP API.
package api

import (
	"context"
	"fmt"

	"github.com/mentor3d/professor/internal/config"
	"github.com/mentor3d/professor/internal/dashboard"
	"github.com/mentor3d/professor/internal/effects"
	"github.com/mentor3d/professor/internal/exec"
	"github.com/mentor3d/professor/internal/grading"
	"github.com/mentor3d/professor/internal/llm"
	"github.com/mentor3d/professor/internal/storage"
	"github.com/mentor3d/professor/internal/tutor"
)

// App holds all application dependencies
type App struct {
	Config    *config.Config
	Store     storage.Store
	LLM       *llm.Registry
	Tutor     *tutor.Service
	Grader    *grading.Grader
	Dashboard *dashboard.Service
	Effects   *effects.Dispatcher
	Worker    *effects.Worker
}

// AppConfig holds configuration for application initialization
type AppConfig struct {
	Config *config.Config
	Store  storage.Store
	// Publisher carries side-effect jobs to the queue. Nil when the
	// queue is unavailable; effects then apply in process.
	Publisher effects.Publisher
}

// NewApp creates a new application instance with all dependencies wired
func NewApp(ctx context.Context, cfg AppConfig) (*App, error) {
	app := &App{
		Config: cfg.Config,
		Store:  cfg.Store,
	}

	// Initialize LLM registry
	app.LLM = llm.NewRegistry()
	if err := initLLMProviders(app.LLM, cfg.Config); err != nil {
		return nil, fmt.Errorf("init LLM providers: %w", err)
	}
	provider, err := app.LLM.Default()
	if err != nil {
		return nil, fmt.Errorf("default LLM provider: %w", err)
	}
	resilient := llm.NewResilientProvider(provider, llm.DefaultResilientConfig())

	app.Tutor = tutor.NewService(resilient)

	// Initialize grading over the remote execution service
	execClient := exec.NewClient(exec.Config{
		BaseURL: cfg.Config.ExecURL,
		APIKey:  cfg.Config.ExecAPIKey,
		APIHost: cfg.Config.ExecAPIHost,
	})
	app.Grader = grading.NewGrader(execClient)

	app.Dashboard = dashboard.NewService(cfg.Store)

	// Side effects: queued when a publisher is present, in-process
	// otherwise. The worker also serves as the queue consumer handler.
	app.Worker = effects.NewWorker(cfg.Store)
	app.Effects = effects.NewDispatcher(cfg.Publisher, app.Worker)

	return app, nil
}

// initLLMProviders sets up LLM providers based on configuration
func initLLMProviders(registry *llm.Registry, cfg *config.Config) error {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.LLMAPIKey == "" {
			return fmt.Errorf("LLM_API_KEY required for openai provider")
		}
		registry.Register("openai", llm.NewOpenAIProvider(llm.OpenAIConfig{
			APIKey: cfg.LLMAPIKey,
			Model:  cfg.LLMModel,
		}))
		return registry.SetDefault("openai")

	case "ollama":
		registry.Register("ollama", llm.NewOllamaProvider(llm.OllamaConfig{
			BaseURL: cfg.OllamaURL,
			Model:   cfg.LLMModel,
		}))
		return registry.SetDefault("ollama")

	default:
		return fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
