package adapter

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a missing credential. It is fatal for the call, not for the process.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// InvalidArgumentError reports a malformed or missing tool parameter
type InvalidArgumentError struct {
	Param  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing required parameter %q", e.Param)
	}
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

// TransportError wraps a network failure, timeout or non-2xx response
type TransportError struct {
	Service string
	Cause   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s API request failed: %v", e.Service, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ApplicationError is a business-level failure reported inside a successful response
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return "Unknown error"
	}
	return e.Message
}

// Kind tags an Outcome
type Kind int

const (
	KindSuccess Kind = iota
	KindApplicationFailure
	KindTransportFailure
	KindConfigurationFailure
	KindInvalidArgument
)

// String returns the metric-friendly name of the kind
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindApplicationFailure:
		return "application_error"
	case KindTransportFailure:
		return "transport_error"
	case KindConfigurationFailure:
		return "configuration_error"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Classify maps an error to the outcome kind it produces.
// Errors outside the taxonomy count as transport failures.
func Classify(err error) Kind {
	if err == nil {
		return KindSuccess
	}

	var configErr *ConfigurationError
	var argErr *InvalidArgumentError
	var appErr *ApplicationError

	switch {
	case errors.As(err, &configErr):
		return KindConfigurationFailure
	case errors.As(err, &argErr):
		return KindInvalidArgument
	case errors.As(err, &appErr):
		return KindApplicationFailure
	default:
		return KindTransportFailure
	}
}
