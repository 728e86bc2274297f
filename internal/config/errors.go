package config

import (
	"errors"
	"fmt"
)

// Configuration error kinds. Every resolution failure wraps exactly one of
// these sentinels so callers can distinguish failure classes with errors.Is.
var (
	// ErrMissingRequiredSetting is returned when a setting declared as
	// required is supplied by no source and has no default.
	ErrMissingRequiredSetting = errors.New("missing required setting")

	// ErrTypeCoercion is returned when a raw value cannot be converted to
	// the setting's declared kind (e.g. a non-numeric string for an
	// integer setting).
	ErrTypeCoercion = errors.New("cannot coerce setting value")

	// ErrValidation is returned when a coerced value fails the setting's
	// validator, or when the assembled Config fails struct validation.
	ErrValidation = errors.New("setting validation failed")
)

// ConfigurationError describes a single setting that could not be resolved.
// It carries the setting name and the failure kind so startup code can
// surface an actionable message to the operator.
type ConfigurationError struct {
	Setting string // declared setting name (e.g. "port")
	Kind    error  // one of the sentinel kinds above
	Reason  string // human-readable detail, never includes secret values
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration error for %q: %v: %s", e.Setting, e.Kind, e.Reason)
	}
	return fmt.Sprintf("configuration error for %q: %v", e.Setting, e.Kind)
}

// Unwrap returns the error kind so errors.Is matches the sentinels.
func (e *ConfigurationError) Unwrap() error {
	return e.Kind
}

// newConfigurationError creates a ConfigurationError for the given setting.
func newConfigurationError(setting string, kind error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Setting: setting,
		Kind:    kind,
		Reason:  fmt.Sprintf(format, args...),
	}
}
