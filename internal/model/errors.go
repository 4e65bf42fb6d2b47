package model

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is wrapped by ConfigurationError when no API key is set.
var ErrMissingCredential = errors.New("no API credential available")

// ConfigurationError reports a setting the process cannot run without.
// It is never retried.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration %s: %v", e.Setting, e.Err)
	}
	return "configuration " + e.Setting
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ExternalServiceError wraps a failed call to the language-model service:
// network errors, timeouts, non-2xx statuses and malformed responses.
// StatusCode is zero when no HTTP response was received.
type ExternalServiceError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ExternalServiceError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": external service error"
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
