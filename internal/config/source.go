package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Source is a provider of raw string values keyed by setting name or
// environment alias. Sources never mutate anything; a Source built from the
// process environment is a snapshot taken at construction time.
type Source interface {
	// Name identifies the source in logs and error messages
	// (e.g. "defaults", "file:.env", "environment").
	Name() string

	// Lookup returns the raw value for the given key and whether the
	// source supplies it at all.
	Lookup(key string) (string, bool)
}

// mapSource is an in-memory source backed by a plain map. It backs the
// compiled-in defaults and the fake sources used by tests.
type mapSource struct {
	name   string
	values map[string]string
}

// NewMapSource creates a Source from an explicit key/value map.
func NewMapSource(name string, values map[string]string) Source {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &mapSource{name: name, values: copied}
}

func (s *mapSource) Name() string { return s.name }

func (s *mapSource) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// NewEnvSource creates a Source from an environment snapshot in the
// "KEY=value" form produced by os.Environ. Passing the snapshot explicitly
// keeps the process environment an input rather than an implicit global.
func NewEnvSource(environ []string) Source {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			continue
		}
		values[key] = value
	}
	return &mapSource{name: "environment", values: values}
}

// NewFileSource loads a dotenv-format override file into a Source. A missing
// file is not an error: it yields an empty source so optional environment
// files can be listed unconditionally. Any other read or parse failure is
// surfaced to the caller.
func NewFileSource(path string) (Source, error) {
	name := "file:" + path

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &mapSource{name: name}, nil
		}
		return nil, fmt.Errorf("stat config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("dotenv")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	// viper normalizes keys to lower case; restore the upper-case aliases
	// that dotenv files conventionally use.
	values := make(map[string]string)
	for _, key := range v.AllKeys() {
		values[strings.ToUpper(key)] = v.GetString(key)
	}
	return &mapSource{name: name, values: values}, nil
}
