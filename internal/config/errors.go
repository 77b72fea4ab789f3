package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a missing or invalid configuration field.
type ConfigurationError struct {
	Source string // File the value came from, empty for in-memory configs
	Field  string
	Reason string
	Err    error // Underlying parse or lookup error, if any
}

func (e *ConfigurationError) Error() string {
	msg := "config: "
	if e.Source != "" {
		msg += e.Source + ": "
	}
	if e.Field != "" {
		msg += e.Field + ": "
	}
	msg += e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is makes errors.Is(err, ErrConfiguration) true for any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func invalid(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}
