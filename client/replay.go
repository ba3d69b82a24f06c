package client

import (
	"context"
	"slices"

	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/model"
)

type replay struct {
	steps []guide.Step
}

// NewReplay returns a Client that answers every request with steps.
func NewReplay(steps []guide.Step) Client {
	return &replay{steps: slices.Clone(steps)}
}

func (r *replay) Generate(ctx context.Context, _ model.GenerationRequest) ([]guide.Step, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(r.steps) == 0 {
		return nil, ErrEmptyResponse
	}
	return slices.Clone(r.steps), nil
}
