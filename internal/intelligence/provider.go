// Package intelligence wires a configured AI provider behind the gateway
// contract.
package intelligence

import (
	"context"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/intelligence/claude"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/intelligence/gateway"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/intelligence/gemini"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
)

// Provider names accepted in intelligence.provider.
const (
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
)

// NewGateway builds the gateway for the configured provider.
func NewGateway(ctx context.Context, cfg config.IntelligenceConfig, logger logging.Logger) (gateway.Gateway, error) {
	switch cfg.Provider {
	case ProviderClaude:
		return claude.New(cfg, logger)
	case ProviderGemini:
		return gemini.New(ctx, cfg, logger)
	default:
		return nil, errors.Newf(errors.CodeAIProviderDisabled, "unknown intelligence provider %q", cfg.Provider)
	}
}
