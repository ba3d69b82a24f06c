// Package client turns a generation request into guide steps using a
// schema constrained completion.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/llm"
	"github.com/getsavvyinc/webtoapk/model"
)

type Client interface {
	Generate(ctx context.Context, req model.GenerationRequest) ([]guide.Step, error)
}

type client struct {
	completer llm.Completer
	model     string
	logger    *slog.Logger
}

var _ Client = (*client)(nil)

type Option func(*client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *client) {
		c.logger = logger
	}
}

func New(completer llm.Completer, modelName string, opts ...Option) Client {
	c := &client{
		completer: completer,
		model:     modelName,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loggerKey struct{}

// ContextWithLogger makes Generate log with logger, typically one carrying
// the request id, instead of the client's own logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Generate makes exactly one completion call. It returns all the steps or
// an error, never a partial result. A well formed empty array is
// returned as an empty guide.
func (c *client) Generate(ctx context.Context, req model.GenerationRequest) ([]guide.Step, error) {
	logger := c.logger
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		logger = l
	}

	prompt, err := llm.StepsPrompt(req)
	if err != nil {
		logger.Error("could not build prompt", "error", err)
		return nil, &serviceError{cause: err}
	}

	logger = logger.With("repository", req.RepositoryURL, "platform", req.PlatformVersion, "model", c.model)
	logger.Debug("requesting steps")

	text, err := c.completer.Complete(ctx, llm.Request{
		Model:  c.model,
		Prompt: prompt,
		Schema: &llm.StepsSchema,
	})
	if err != nil {
		logger.Error("completion failed", "error", err)
		return nil, &serviceError{cause: err}
	}

	if strings.TrimSpace(text) == "" {
		logger.Error("empty completion")
		return nil, ErrEmptyResponse
	}

	steps, err := guide.DecodeSteps([]byte(text))
	if err != nil {
		logger.Debug("unparseable completion", "text", text)
		logger.Error("malformed completion", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(steps) == 0 {
		logger.Warn("completion has no steps")
	}

	logger.Info("generated steps", "steps", len(steps))
	return steps, nil
}
