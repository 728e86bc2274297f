package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default file names for the layered override chain.
const (
	// DefaultBaseFile is the base dotenv override file.
	DefaultBaseFile = ".env"

	// envFilePattern names the environment-specific override file,
	// e.g. ".env.test" when APP_ENV=test.
	envFilePattern = ".env.%s"
)

// Config holds all application configuration.
// It is constructed once by Load, validated, and treated as read-only by
// every consumer for the lifetime of the process.
type Config struct {
	Server   ServerConfig   `validate:"required"`
	Database DatabaseConfig `validate:"required"`
}

// ServerConfig contains all HTTP-server-related configuration settings.
type ServerConfig struct {
	Port             int      `validate:"required,gt=0,lt=65536"`
	LogLevel         string   `validate:"required,oneof=debug info warn error"`
	Environment      string   `validate:"required"`
	CORSOrigins      []string `validate:"required,min=1"`
	AdminTokenSecret string   `validate:"required,min=32"`
}

// DatabaseConfig contains all database-related configuration settings plus
// the connection strings derived from them. The derived values are computed
// eagerly at load time from the resolved fields and are never independently
// overridable.
type DatabaseConfig struct {
	Host         string        `validate:"required"`
	Port         int           `validate:"required,gt=0,lt=65536"`
	Name         string        `validate:"required"`
	User         string        `validate:"required"`
	Password     string        `validate:"required"`
	PoolSize     int           `validate:"required,gte=1"`
	MaxOverflow  int           `validate:"gte=0"`
	PoolTimeout  time.Duration `validate:"required"`
	Echo         bool
	EchoPool     bool
	MigrationDir string `validate:"required"`

	dsn      string
	asyncDSN string
}

// DSN returns the synchronous PostgreSQL connection string in the form
// postgresql://{user}:{password}@{host}:{port}/{name}.
func (c DatabaseConfig) DSN() string { return c.dsn }

// AsyncDSN returns the asyncpg-dialect connection string in the form
// postgresql+asyncpg://{user}:{password}@{host}:{port}/{name}, kept
// bit-exact for compatibility with clients that expect that dialect prefix.
func (c DatabaseConfig) AsyncDSN() string { return c.asyncDSN }

// Schema returns the full declared setting schema for the application.
// The env aliases are the component's external interface and must stay
// stable across releases.
func Schema() []Setting {
	return []Setting{
		// Server settings
		{Name: "server_port", EnvVar: "SERVER_PORT", Kind: KindInt, Default: "8000", Validate: IntBetween(1, 65535)},
		{Name: "log_level", EnvVar: "LOG_LEVEL", Kind: KindString, Default: "info", Validate: OneOf("debug", "info", "warn", "error")},
		{Name: "environment", EnvVar: "APP_ENV", Kind: KindString, Default: "development", Validate: NonEmpty()},
		{Name: "cors_origins", EnvVar: "CORS_ORIGINS", Kind: KindString, Default: "*", Validate: NonEmpty()},
		{Name: "admin_token_secret", EnvVar: "ADMIN_TOKEN_SECRET", Kind: KindString, Required: true},

		// Database settings
		{Name: "host", EnvVar: "DB_HOST", Kind: KindString, Default: "localhost", Validate: NonEmpty()},
		{Name: "port", EnvVar: "DB_PORT", Kind: KindInt, Default: "5432", Validate: IntBetween(1, 65535)},
		{Name: "database", EnvVar: "DB_NAME", Kind: KindString, Default: "ai_knowledge_agent", Validate: NonEmpty()},
		{Name: "username", EnvVar: "DB_USER", Kind: KindString, Default: "postgres", Validate: NonEmpty()},
		{Name: "password", EnvVar: "DB_PASSWORD", Kind: KindString, Default: "postgres"},
		{Name: "pool_size", EnvVar: "DB_POOL_SIZE", Kind: KindInt, Default: "5", Validate: IntBetween(1, 100)},
		{Name: "max_overflow", EnvVar: "DB_MAX_OVERFLOW", Kind: KindInt, Default: "10", Validate: IntBetween(0, 100)},
		{Name: "pool_timeout", EnvVar: "DB_POOL_TIMEOUT", Kind: KindDuration, Default: "30s", Validate: MinDuration(time.Second)},
		{Name: "echo", EnvVar: "DB_ECHO", Kind: KindBool, Default: "false"},
		{Name: "echo_pool", EnvVar: "DB_ECHO_POOL", Kind: KindBool, Default: "false"},
		{Name: "migration_dir", EnvVar: "DB_MIGRATION_DIR", Kind: KindString, Default: "migrations", Validate: NonEmpty()},
	}
}

// LoadOptions controls how Load builds the source chain. The zero value
// loads ".env", then ".env.<environment>", then the current process
// environment.
type LoadOptions struct {
	// BaseFile overrides the base dotenv file path. Defaults to ".env".
	BaseFile string

	// EnvFile overrides the environment-specific dotenv file path.
	// Defaults to ".env.<environment>" where the environment is taken
	// from APP_ENV in the process snapshot.
	EnvFile string

	// Environ is the process environment snapshot in os.Environ form.
	// When nil, os.Environ() is captured at load time.
	Environ []string
}

// Load assembles the application Config from the default layered chain:
// compiled-in defaults, the base dotenv file, the environment-specific
// dotenv file, and finally the process environment, with later sources
// winning. Missing override files are skipped. The returned Config is fully
// validated; no partially resolved configuration ever escapes.
//
// Callers needing a different precedence order can build their own source
// list and call Resolve directly.
func Load(opts LoadOptions) (*Config, error) {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	envSource := NewEnvSource(environ)

	baseFile := opts.BaseFile
	if baseFile == "" {
		baseFile = DefaultBaseFile
	}

	// The environment-specific file name depends on APP_ENV, which may
	// itself come from the process environment or the base file.
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = fmt.Sprintf(envFilePattern, peekEnvironment(envSource, baseFile))
	}

	sources := make([]Source, 0, 2)
	for _, path := range []string{baseFile, envFile} {
		src, err := NewFileSource(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	sources = append(sources, envSource)

	return Build(Schema(), sources)
}

// Build resolves the given schema against the ordered sources and maps the
// result into a validated Config. It is the typed layer above Resolve and is
// what tests inject fake sources into.
func Build(schema []Setting, sources []Source) (*Config, error) {
	resolved, err := Resolve(schema, sources)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:             resolved.Int("server_port"),
			LogLevel:         resolved.String("log_level"),
			Environment:      resolved.String("environment"),
			CORSOrigins:      splitOrigins(resolved.String("cors_origins")),
			AdminTokenSecret: resolved.String("admin_token_secret"),
		},
		Database: DatabaseConfig{
			Host:         resolved.String("host"),
			Port:         resolved.Int("port"),
			Name:         resolved.String("database"),
			User:         resolved.String("username"),
			Password:     resolved.String("password"),
			PoolSize:     resolved.Int("pool_size"),
			MaxOverflow:  resolved.Int("max_overflow"),
			PoolTimeout:  resolved.Duration("pool_timeout"),
			Echo:         resolved.Bool("echo"),
			EchoPool:     resolved.Bool("echo_pool"),
			MigrationDir: resolved.String("migration_dir"),
		},
	}

	// Derived fields: pure functions of the resolved primitives, computed
	// once here so they can never drift from their inputs.
	cfg.Database.dsn = fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	cfg.Database.asyncDSN = fmt.Sprintf("postgresql+asyncpg://%s:%s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateConfig runs struct-level validation over the assembled Config and
// maps the first failure into the configuration error taxonomy.
func validateConfig(cfg *Config) error {
	validate := validator.New()
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if ok := errors.As(err, &verrs); ok && len(verrs) > 0 {
		first := verrs[0]
		return newConfigurationError(strings.ToLower(first.Field()), ErrValidation,
			"failed on the %q constraint", first.Tag())
	}
	return newConfigurationError("config", ErrValidation, "%v", err)
}

// peekEnvironment determines the active environment name before full
// resolution, consulting the process snapshot first and the base file second.
func peekEnvironment(envSource Source, baseFile string) string {
	if v, ok := envSource.Lookup("APP_ENV"); ok && v != "" {
		return v
	}
	if base, err := NewFileSource(baseFile); err == nil {
		if v, ok := base.Lookup("APP_ENV"); ok && v != "" {
			return v
		}
	}
	return "development"
}

// splitOrigins parses the comma-separated CORS origin list.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
