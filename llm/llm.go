package llm

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Request is a single schema constrained completion.
type Request struct {
	Model  string
	Prompt string
	// Schema is the JSON schema the response text must follow.
	Schema *jsonschema.Definition
}

// Completer returns the raw text produced for a request.
// Implementations make exactly one call to the backing service.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
