package client

import "errors"

// Kind classifies a generation failure.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidInput
	KindEmptyResponse
	KindMalformedResponse
	KindServiceFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid_input"
	case KindEmptyResponse:
		return "empty_response"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "service_failure"
	}
}

// The error texts are shown to the user as is.
var (
	ErrInvalidInput      = errors.New("please enter a valid GitHub repository URL")
	ErrEmptyResponse     = errors.New("the AI returned an empty response or one in an unexpected format")
	ErrMalformedResponse = errors.New("the AI returned a badly formatted response (invalid JSON)")
	ErrServiceFailure    = errors.New("could not get a structured response from the AI. The project may be too complex or the service is currently unavailable")
)

// serviceError hides the transport cause from the user facing message
// while keeping it reachable with errors.Is and errors.As.
type serviceError struct {
	cause error
}

func (e *serviceError) Error() string   { return ErrServiceFailure.Error() }
func (e *serviceError) Unwrap() []error { return []error{ErrServiceFailure, e.cause} }

// Cause returns the underlying error of a service failure, or err itself.
func Cause(err error) error {
	var se *serviceError
	if errors.As(err, &se) {
		return se.cause
	}
	return err
}

// KindOf maps err onto the failure taxonomy. Errors that are not one of
// the known sentinels are service failures.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrEmptyResponse):
		return KindEmptyResponse
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	default:
		return KindServiceFailure
	}
}
