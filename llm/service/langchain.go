package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getsavvyinc/webtoapk/llm"
	"github.com/tmc/langchaingo/llms"
)

// langchainCompleter adapts a langchaingo model. The schema travels in the
// prompt and the model is asked for JSON output.
type langchainCompleter struct {
	llm llms.Model
}

func newLangchain(m llms.Model) *langchainCompleter {
	return &langchainCompleter{llm: m}
}

func (l *langchainCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	prompt := req.Prompt
	if req.Schema != nil {
		bs, err := json.MarshalIndent(req.Schema, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal schema: %w", err)
		}
		prompt += "\n\nRespond with JSON only, matching this JSON schema:\n" + string(bs)
	}

	opts := []llms.CallOption{llms.WithJSONMode()}
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}
	return llms.GenerateFromSinglePrompt(ctx, l.llm, prompt, opts...)
}
