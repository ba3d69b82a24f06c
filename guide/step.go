package guide

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Step is one page of a generated guide.
//
// Body holds exactly one content representation: Flat for ordinary steps,
// OSBranching for steps whose instructions depend on the user's OS.
// A nil Body is treated as an empty Flat.
type Step struct {
	Title       string
	Explanation string
	Body        Body
}

// Body is implemented by Flat and OSBranching only.
type Body interface {
	isBody()
}

// Flat is the content of a step that is the same on every OS.
// An empty Command means the step has no command.
type Flat struct {
	Command string
	Details string
	Actions []Action
}

func (Flat) isBody() {}

// Content is the OS specific part of an OSBranching step.
type Content struct {
	Explanation string   `json:"explanation" yaml:"explanation"`
	Details     string   `json:"details,omitempty" yaml:"details,omitempty"`
	Actions     []Action `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// OSBranching is the content of a step with one set of instructions per OS.
type OSBranching struct {
	MacOSLinux Content
	Windows    Content
}

func (OSBranching) isBody() {}

// For returns the content for os. ok is false when os is unspecified.
func (b OSBranching) For(os OS) (c Content, ok bool) {
	switch os {
	case OSMacOSLinux:
		return b.MacOSLinux, true
	case OSWindows:
		return b.Windows, true
	default:
		return Content{}, false
	}
}

func (s Step) Flat() (Flat, bool) {
	switch b := s.Body.(type) {
	case Flat:
		return b, true
	case nil:
		return Flat{}, true
	default:
		return Flat{}, false
	}
}

func (s Step) Branching() (OSBranching, bool) {
	b, ok := s.Body.(OSBranching)
	return b, ok
}

func (s Step) IsOSSpecific() bool {
	_, ok := s.Branching()
	return ok
}

// wireStep is the shape produced by the generation service.
type wireStep struct {
	Title          string              `json:"title" yaml:"title"`
	Explanation    string              `json:"explanation" yaml:"explanation"`
	Command        string              `json:"command,omitempty" yaml:"command,omitempty"`
	Details        string              `json:"details,omitempty" yaml:"details,omitempty"`
	Actions        []Action            `json:"actions,omitempty" yaml:"actions,omitempty"`
	IsOSSpecific   bool                `json:"isOsSpecific,omitempty" yaml:"isOsSpecific,omitempty"`
	OSInstructions *wireOSInstructions `json:"osInstructions,omitempty" yaml:"osInstructions,omitempty"`
}

type wireOSInstructions struct {
	MacOSLinux *Content `json:"macos_linux,omitempty" yaml:"macos_linux,omitempty"`
	Windows    *Content `json:"windows,omitempty" yaml:"windows,omitempty"`
}

// fromWire picks the representation. A step is only OS specific when it
// says so and actually carries OS instructions.
func fromWire(w wireStep) Step {
	s := Step{
		Title:       w.Title,
		Explanation: w.Explanation,
	}

	if w.IsOSSpecific && w.OSInstructions != nil {
		var b OSBranching
		if w.OSInstructions.MacOSLinux != nil {
			b.MacOSLinux = *w.OSInstructions.MacOSLinux
		}
		if w.OSInstructions.Windows != nil {
			b.Windows = *w.OSInstructions.Windows
		}
		s.Body = b
		return s
	}

	s.Body = Flat{
		Command: w.Command,
		Details: w.Details,
		Actions: w.Actions,
	}
	return s
}

func (s Step) toWire() wireStep {
	w := wireStep{
		Title:       s.Title,
		Explanation: s.Explanation,
	}

	switch b := s.Body.(type) {
	case OSBranching:
		macOSLinux, windows := b.MacOSLinux, b.Windows
		w.IsOSSpecific = true
		w.OSInstructions = &wireOSInstructions{
			MacOSLinux: &macOSLinux,
			Windows:    &windows,
		}
	case Flat:
		w.Command = b.Command
		w.Details = b.Details
		w.Actions = b.Actions
	}
	return w
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toWire())
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var w wireStep
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = fromWire(w)
	return nil
}

func (s Step) MarshalYAML() (interface{}, error) {
	return s.toWire(), nil
}

func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	var w wireStep
	if err := value.Decode(&w); err != nil {
		return err
	}
	*s = fromWire(w)
	return nil
}

var ErrNotAnArray = errors.New("expected a JSON array of steps")

// DecodeSteps parses a JSON array of steps.
// Missing optional fields are left at their zero values.
func DecodeSteps(data []byte) ([]Step, error) {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("decode steps: %w", err)
	}
	// json null decodes without error into a nil slice
	if steps == nil {
		return nil, fmt.Errorf("decode steps: %w", ErrNotAnArray)
	}
	return steps, nil
}
