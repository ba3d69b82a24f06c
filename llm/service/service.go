// Package service builds the completion backend for the configured provider.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsavvyinc/webtoapk/config"
	"github.com/getsavvyinc/webtoapk/llm"
	"github.com/getsavvyinc/webtoapk/slice"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
)

var ErrUnsupportedProvider = errors.New("unsupported provider")

// New returns a Completer for cfg.Provider.
func New(ctx context.Context, cfg *config.Config) (llm.Completer, error) {
	if !slice.Has(config.Providers, cfg.Provider) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return newOpenAI(cfg), nil

	case config.ProviderGoogleAI:
		m, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai model: %w", err)
		}
		return newLangchain(m), nil

	case config.ProviderAnthropic:
		opts := []anthropic.Option{
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		m, err := anthropic.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}
		return newLangchain(m), nil

	case config.ProviderOllama:
		m, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithFormat("json"),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return newLangchain(m), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
}
