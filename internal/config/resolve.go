package config

import (
	"strconv"
	"time"
)

// Resolved holds the final value for every declared setting after a
// successful Resolve call. It is a read-only snapshot: accessors return
// copies of primitive values and nothing mutates the map after construction.
type Resolved struct {
	values map[string]any
}

// String returns the resolved string value for the named setting.
// Resolve guarantees every declared setting is populated, so the zero value
// is only returned for names absent from the schema.
func (r *Resolved) String(name string) string {
	v, _ := r.values[name].(string)
	return v
}

// Int returns the resolved int value for the named setting.
func (r *Resolved) Int(name string) int {
	v, _ := r.values[name].(int)
	return v
}

// Bool returns the resolved bool value for the named setting.
func (r *Resolved) Bool(name string) bool {
	v, _ := r.values[name].(bool)
	return v
}

// Duration returns the resolved duration value for the named setting.
func (r *Resolved) Duration(name string) time.Duration {
	v, _ := r.values[name].(time.Duration)
	return v
}

// Resolve merges the ordered sources into a final value for every setting in
// the schema. Sources are scanned in the given order and the last value
// found wins, so callers list sources lowest-precedence-first (e.g. base
// file, environment-specific file, process environment).
//
// For each setting the winning raw value is coerced to the declared kind and
// passed through the setting's validator when one is declared. Resolution
// fails with a ConfigurationError on the first setting that is required but
// unsupplied, uncoercible, or invalid. Resolve reads only from the provided
// sources and is safe for concurrent use.
func Resolve(schema []Setting, sources []Source) (*Resolved, error) {
	values := make(map[string]any, len(schema))

	for _, s := range schema {
		raw, supplied := lastValue(s, sources)
		if !supplied {
			if s.Required {
				return nil, newConfigurationError(s.Name, ErrMissingRequiredSetting,
					"no source supplies %s and no default is declared", s.EnvVar)
			}
			raw = s.Default
		}

		v, err := coerce(s, raw)
		if err != nil {
			return nil, err
		}

		if s.Validate != nil {
			if err := s.Validate(v); err != nil {
				return nil, newConfigurationError(s.Name, ErrValidation, "%v", err)
			}
		}

		values[s.Name] = v
	}

	return &Resolved{values: values}, nil
}

// lastValue scans sources in precedence order and returns the value from the
// highest-precedence source that supplies the setting, under either its
// environment alias or its canonical name.
func lastValue(s Setting, sources []Source) (string, bool) {
	var raw string
	var supplied bool
	for _, src := range sources {
		if v, ok := src.Lookup(s.EnvVar); ok {
			raw, supplied = v, true
			continue
		}
		if v, ok := src.Lookup(s.Name); ok {
			raw, supplied = v, true
		}
	}
	return raw, supplied
}

// coerce converts a raw string value to the setting's declared kind.
func coerce(s Setting, raw string) (any, error) {
	switch s.Kind {
	case KindString:
		return raw, nil

	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, newConfigurationError(s.Name, ErrTypeCoercion,
				"%q is not a valid integer", raw)
		}
		return n, nil

	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, newConfigurationError(s.Name, ErrTypeCoercion,
				"%q is not a valid boolean", raw)
		}
		return b, nil

	case KindDuration:
		if d, err := time.ParseDuration(raw); err == nil {
			return d, nil
		}
		// Bare integers are accepted as seconds for compatibility with
		// settings files that predate duration suffixes.
		if n, err := strconv.Atoi(raw); err == nil {
			return time.Duration(n) * time.Second, nil
		}
		return nil, newConfigurationError(s.Name, ErrTypeCoercion,
			"%q is not a valid duration", raw)

	default:
		return nil, newConfigurationError(s.Name, ErrTypeCoercion,
			"unsupported setting kind %s", s.Kind)
	}
}
