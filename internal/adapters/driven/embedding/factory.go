// Package embedding provides factory functions for creating embedding
// service adapters from configuration.
package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/techdex-labs/techdex-cli/internal/adapters/driven/embedding/ollama"
	"github.com/techdex-labs/techdex-cli/internal/adapters/driven/embedding/openai"
	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Provider names accepted in the embedding.provider config key.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// NewFromConfig creates the embedding service named by configuration.
// Returns (nil, nil) when no provider is configured; search then runs
// without the vector signal.
func NewFromConfig(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := cfg.GetString("embedding.provider")

	switch provider {
	case "", ProviderNone:
		return nil, nil

	case ProviderOllama:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		}), nil

	case ProviderOpenAI:
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.GetString("embedding.api_key"),
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}

// NewValidatedFromConfig creates the configured embedding service and
// validates connectivity with a short ping. A configured but unreachable
// provider returns domain.ErrEmbeddingUnavailable so callers can degrade
// to non-vector search with a warning.
func NewValidatedFromConfig(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	svc, err := NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}
