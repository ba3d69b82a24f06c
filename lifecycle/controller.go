// Package lifecycle holds the state machine behind a single guide request:
// input validation, the cosmetic status phases, the one generation call and
// its outcome.
//
// The status phases are not a progress estimate. They advance on a fixed
// interval and the generation call is only dispatched once they run out.
package lifecycle

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/getsavvyinc/webtoapk/client"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/idgen"
	"github.com/getsavvyinc/webtoapk/model"
)

type State int

const (
	Idle State = iota
	Validating
	InputInvalid
	InProgress
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case InputInvalid:
		return "input_invalid"
	case InProgress:
		return "in_progress"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// AcceptsInput reports whether a new request can be submitted.
func (s State) AcceptsInput() bool {
	return s == Idle || s == InputInvalid
}

type TickResult int

const (
	TickIgnored TickResult = iota
	TickAdvanced
	// TickDispatch means the phases ran out and the generation call must
	// be made now. It is returned once per request.
	TickDispatch
)

var (
	ErrBusy    = errors.New("a guide is already being generated")
	ErrNotIdle = errors.New("reset before starting a new guide")
)

const DefaultHostMarker = "github.com"

var DefaultPhases = []string{
	"Connecting to the GitHub repository...",
	"Analyzing the project structure...",
	"Generating the conversion script with AI...",
	"Compiling the build instructions...",
	"Finishing your interactive guide...",
}

type Controller struct {
	phases     []string
	hostMarker string
	logger     *slog.Logger

	state      State
	os         guide.OS
	request    model.GenerationRequest
	activeID   string
	phase      int
	dispatched bool
	steps      []guide.Step
	err        string
}

type Option func(*Controller)

func WithPhases(phases []string) Option {
	return func(c *Controller) {
		c.phases = slices.Clone(phases)
	}
}

func WithHostMarker(marker string) Option {
	return func(c *Controller) {
		c.hostMarker = marker
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(opts ...Option) *Controller {
	c := &Controller{
		phases:     slices.Clone(DefaultPhases),
		hostMarker: DefaultHostMarker,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State                     { return c.state }
func (c *Controller) OS() guide.OS                     { return c.os }
func (c *Controller) Phase() int                       { return c.phase }
func (c *Controller) Phases() []string                 { return c.phases }
func (c *Controller) Steps() []guide.Step              { return c.steps }
func (c *Controller) Error() string                    { return c.err }
func (c *Controller) ActiveID() string                 { return c.activeID }
func (c *Controller) Request() model.GenerationRequest { return c.request }

// SelectOS records the user's operating system. It is only allowed while
// collecting input.
func (c *Controller) SelectOS(os guide.OS) error {
	if c.state == InProgress {
		return ErrBusy
	}
	if !c.state.AcceptsInput() {
		return ErrNotIdle
	}
	c.os = os
	return nil
}

// Submit validates the repository URL and starts a request. It returns the
// id that Tick, Resolve and Reject must be called with. Invalid input leaves
// the controller in InputInvalid with the error set and returns
// client.ErrInvalidInput.
func (c *Controller) Submit(repositoryURL, platformVersion string) (string, error) {
	switch {
	case c.state == InProgress:
		return "", ErrBusy
	case !c.state.AcceptsInput():
		return "", ErrNotIdle
	}

	c.state = Validating
	repositoryURL = strings.TrimSpace(repositoryURL)
	if repositoryURL == "" || !strings.Contains(repositoryURL, c.hostMarker) {
		c.state = InputInvalid
		c.err = client.ErrInvalidInput.Error()
		c.logger.Debug("rejected repository url", "url", repositoryURL)
		return "", client.ErrInvalidInput
	}
	if platformVersion == "" {
		platformVersion = model.DefaultPlatformVersion
	}

	c.request = model.GenerationRequest{
		RepositoryURL:   repositoryURL,
		PlatformVersion: platformVersion,
		OS:              c.os,
	}
	c.err = ""
	c.steps = nil
	c.phase = 0
	c.dispatched = false
	c.activeID = idgen.New(idgen.RequestPrefix)
	c.state = InProgress
	c.logger.Info("request started", "id", c.activeID, "url", repositoryURL, "platform", platformVersion, "os", c.os)
	return c.activeID, nil
}

func (c *Controller) isActive(id string) bool {
	return c.state == InProgress && id != "" && id == c.activeID
}

// Tick advances the status phase of request id.
func (c *Controller) Tick(id string) TickResult {
	if !c.isActive(id) || c.dispatched {
		return TickIgnored
	}
	if c.phase < len(c.phases) {
		c.phase++
	}
	if c.phase < len(c.phases) {
		return TickAdvanced
	}
	c.dispatched = true
	c.logger.Debug("dispatching generation", "id", id)
	return TickDispatch
}

// Dispatched reports whether the generation call of the active request has
// been triggered.
func (c *Controller) Dispatched() bool { return c.dispatched }

// Resolve stores the steps of request id. It returns false when the request
// is no longer active, in which case nothing changes.
func (c *Controller) Resolve(id string, steps []guide.Step) bool {
	if !c.isActive(id) {
		c.logger.Debug("dropping stale result", "id", id)
		return false
	}
	c.steps = steps
	c.state = Ready
	c.logger.Info("request ready", "id", id, "steps", len(steps))
	return true
}

// Reject stores the error message of request id verbatim.
func (c *Controller) Reject(id string, err error) bool {
	if !c.isActive(id) {
		c.logger.Debug("dropping stale error", "id", id, "error", err)
		return false
	}
	if err == nil {
		err = client.ErrServiceFailure
	}
	c.err = err.Error()
	c.state = Failed
	c.logger.Error("request failed", "id", id, "kind", client.KindOf(err), "error", err)
	return true
}

// Reset returns to Idle from any state. Results of a request that is still
// in flight are dropped when they arrive.
func (c *Controller) Reset() {
	c.state = Idle
	c.os = guide.OSUnspecified
	c.request = model.GenerationRequest{}
	c.activeID = ""
	c.phase = 0
	c.dispatched = false
	c.steps = nil
	c.err = ""
}
