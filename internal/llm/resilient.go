package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/ratelimit"
)

// ResilientProvider wraps a provider with concurrency limiting and rate
// limiting from fortify. Failed calls are never retried: a remote failure
// surfaces to the caller immediately, who either degrades locally or
// fails the request.
type ResilientProvider struct {
	provider  Provider
	bulkhead  bulkhead.Bulkhead[*Response]
	embedBulk bulkhead.Bulkhead[[]float64]
	rateLimit ratelimit.RateLimiter
	logger    *slog.Logger
	name      string
}

// ResilientConfig holds configuration for the resilient wrapper
type ResilientConfig struct {
	// MaxConcurrent bounds in-flight completion calls (default: 5)
	MaxConcurrent int

	// RatePerSecond caps outgoing calls per second (default: 2)
	RatePerSecond int

	// Logger for resilience events
	Logger *slog.Logger
}

// DefaultResilientConfig returns sensible defaults for LLM traffic
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		MaxConcurrent: 5,
		RatePerSecond: 2,
	}
}

// NewResilientProvider wraps a provider with bulkhead and rate limiting
func NewResilientProvider(provider Provider, cfg ResilientConfig) *ResilientProvider {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	rate := cfg.RatePerSecond
	if rate <= 0 {
		rate = 2
	}

	return &ResilientProvider{
		provider: provider,
		logger:   cfg.Logger,
		name:     provider.Name(),
		bulkhead: bulkhead.New[*Response](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
			MaxQueue:      maxConcurrent * 2,
			QueueTimeout:  30 * time.Second,
		}),
		embedBulk: bulkhead.New[[]float64](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
			MaxQueue:      maxConcurrent * 2,
			QueueTimeout:  30 * time.Second,
		}),
		rateLimit: ratelimit.New(&ratelimit.Config{
			Rate:     rate,
			Burst:    rate * 3,
			Interval: time.Second,
		}),
	}
}

func (p *ResilientProvider) Name() string {
	return p.provider.Name()
}

func (p *ResilientProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	if !p.rateLimit.Allow(ctx, p.name) {
		if p.logger != nil {
			p.logger.Warn("llm rate limit exceeded", "provider", p.name)
		}
		return nil, fmt.Errorf("rate limit exceeded for provider %s", p.name)
	}

	return p.bulkhead.Execute(ctx, func(ctx context.Context) (*Response, error) {
		return p.provider.Generate(ctx, req)
	})
}

func (p *ResilientProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if !p.rateLimit.Allow(ctx, p.name) {
		return nil, fmt.Errorf("rate limit exceeded for provider %s", p.name)
	}

	return p.embedBulk.Execute(ctx, func(ctx context.Context) ([]float64, error) {
		return p.provider.Embed(ctx, text)
	})
}

// Close releases resources held by the resilient provider
func (p *ResilientProvider) Close() error {
	if p.rateLimit != nil {
		return p.rateLimit.Close()
	}
	return nil
}
