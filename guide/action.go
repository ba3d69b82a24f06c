package guide

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type ActionKind string

const (
	// ActionCommand copies Value to the clipboard.
	ActionCommand ActionKind = "command"
	// ActionLink opens Value in the browser.
	ActionLink ActionKind = "link"
)

// Action is a single button on a step.
// Group is only used to cluster actions when they are displayed.
type Action struct {
	Label string     `json:"label" yaml:"label"`
	Kind  ActionKind `json:"type" yaml:"type"`
	Value string     `json:"value" yaml:"value"`
	Group string     `json:"group,omitempty" yaml:"group,omitempty"`
}

var ErrInvalidAction = errors.New("invalid action")

// Validate reports whether the action can be activated.
// Generated content is not validated on arrival, so callers check before acting.
func (a Action) Validate() error {
	if strings.TrimSpace(a.Label) == "" {
		return fmt.Errorf("%w: missing label", ErrInvalidAction)
	}
	if strings.TrimSpace(a.Value) == "" {
		return fmt.Errorf("%w: %q has no value", ErrInvalidAction, a.Label)
	}

	switch a.Kind {
	case ActionCommand:
		return nil
	case ActionLink:
		u, err := url.Parse(a.Value)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidAction, a.Label, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q is not a web url", ErrInvalidAction, a.Value)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAction, a.Kind)
	}
}
