package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getsavvyinc/webtoapk/config"
	"github.com/getsavvyinc/webtoapk/llm"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const responseSchemaName = "guide_steps"

type openaiCompleter struct {
	cl *openai.Client
}

func newOpenAI(cfg *config.Config) *openaiCompleter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: newVersionRoundTripper(config.Version()),
	}

	return &openaiCompleter{cl: openai.NewClientWithConfig(clientConfig)}
}

// Structured outputs only accept an object at the root, so array schemas
// are wrapped in {"items": [...]} and unwrapped again on the way out.
type wrappedItems struct {
	Items json.RawMessage `json:"items"`
}

func wrapSchema(s *jsonschema.Definition) *jsonschema.Definition {
	if s == nil || s.Type != jsonschema.Array {
		return s
	}
	return &jsonschema.Definition{
		Type:       jsonschema.Object,
		Properties: map[string]jsonschema.Definition{"items": *s},
		Required:   []string{"items"},
	}
}

func unwrap(s *jsonschema.Definition, msg string) string {
	if s == nil || s.Type != jsonschema.Array {
		return msg
	}
	var w wrappedItems
	if err := json.Unmarshal([]byte(msg), &w); err != nil || len(w.Items) == 0 {
		return msg
	}
	return string(w.Items)
}

func (c *openaiCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if schema := wrapSchema(req.Schema); schema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   responseSchemaName,
				Schema: schema,
				Strict: false,
			},
		}
	}

	resp, err := c.cl.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) != 1 {
		return "", fmt.Errorf("completion error: len(choices): %v", len(resp.Choices))
	}
	return unwrap(req.Schema, resp.Choices[0].Message.Content), nil
}
