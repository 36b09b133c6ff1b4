package llm

import (
	"context"
	"errors"
	"testing"
)

// stubProvider is a minimal Provider for registry tests
type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	return &Response{Content: "stub"}, nil
}

func (s *stubProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	return []float64{0.1, 0.2}, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register("openai", &stubProvider{name: "openai"})

	p, err := r.Get("openai")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Name() = %s; want openai", p.Name())
	}

	if _, err := r.Get("missing"); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("Get(missing) error = %v; want ErrProviderNotFound", err)
	}
}

func TestRegistry_Default(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Default(); !errors.Is(err, ErrNoDefaultProvider) {
		t.Errorf("Default() on empty registry error = %v; want ErrNoDefaultProvider", err)
	}

	r.Register("openai", &stubProvider{name: "openai"})
	r.Register("ollama", &stubProvider{name: "ollama"})

	if err := r.SetDefault("ollama"); err != nil {
		t.Fatalf("SetDefault() error = %v", err)
	}

	p, err := r.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Default().Name() = %s; want ollama", p.Name())
	}
}

func TestRegistry_SetDefaultUnknown(t *testing.T) {
	r := NewRegistry()
	if err := r.SetDefault("ghost"); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("SetDefault(ghost) error = %v; want ErrProviderNotFound", err)
	}
}

func TestRegistry_AutoDefault(t *testing.T) {
	r := NewRegistry()
	r.Register("only", &stubProvider{name: "only"})

	p, err := r.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if p.Name() != "only" {
		t.Errorf("Default().Name() = %s; want only", p.Name())
	}
}
