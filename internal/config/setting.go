package config

import (
	"fmt"
	"time"
)

// Kind identifies the Go type a setting's raw string value is coerced to.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindDuration
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindDuration:
		return "duration"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Setting declares a single named, typed configuration value.
//
// A setting is either required (resolution fails when no source supplies a
// value) or carries a Default in raw string form. The optional Validate
// predicate runs against the coerced value and turns a rejection into a
// ConfigurationError of kind ErrValidation.
type Setting struct {
	// Name is the canonical setting name used in errors and lookups
	// (e.g. "port", "pool_size").
	Name string

	// EnvVar is the environment-variable alias for this setting
	// (e.g. "DB_PORT"). Sources are consulted under this alias first,
	// then under Name.
	EnvVar string

	// Kind selects the coercion applied to raw values.
	Kind Kind

	// Default is the raw value used when no source supplies one.
	// Ignored when Required is set.
	Default string

	// Required marks the setting as having no default: if every source
	// omits it, resolution fails with ErrMissingRequiredSetting.
	Required bool

	// Validate, if non-nil, is applied to the coerced value.
	Validate func(v any) error
}

// IntBetween returns a validator that accepts integers in [min, max].
func IntBetween(min, max int) func(v any) error {
	return func(v any) error {
		n, ok := v.(int)
		if !ok {
			return fmt.Errorf("expected int, got %T", v)
		}
		if n < min || n > max {
			return fmt.Errorf("%d is outside the range %d-%d", n, min, max)
		}
		return nil
	}
}

// OneOf returns a validator that accepts only the listed string values.
func OneOf(allowed ...string) func(v any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fmt.Errorf("%q is not one of %v", s, allowed)
	}
}

// NonEmpty returns a validator that rejects empty strings.
func NonEmpty() func(v any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		if s == "" {
			return fmt.Errorf("value must not be empty")
		}
		return nil
	}
}

// MinDuration returns a validator that rejects durations below min.
func MinDuration(min time.Duration) func(v any) error {
	return func(v any) error {
		d, ok := v.(time.Duration)
		if !ok {
			return fmt.Errorf("expected duration, got %T", v)
		}
		if d < min {
			return fmt.Errorf("%s is below the minimum of %s", d, min)
		}
		return nil
	}
}
