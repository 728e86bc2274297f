package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSchema returns a small schema exercising every kind.
func testSchema() []Setting {
	return []Setting{
		{Name: "host", EnvVar: "DB_HOST", Kind: KindString, Default: "localhost"},
		{Name: "port", EnvVar: "DB_PORT", Kind: KindInt, Default: "5432", Validate: IntBetween(1, 65535)},
		{Name: "echo", EnvVar: "DB_ECHO", Kind: KindBool, Default: "false"},
		{Name: "pool_timeout", EnvVar: "DB_POOL_TIMEOUT", Kind: KindDuration, Default: "30s"},
		{Name: "secret", EnvVar: "APP_SECRET", Kind: KindString, Required: true},
	}
}

// sourcesWithSecret appends a source supplying the one required setting so
// tests can focus on the settings under test.
func sourcesWithSecret(extra ...Source) []Source {
	base := []Source{NewMapSource("test-secret", map[string]string{"APP_SECRET": "s3cret"})}
	return append(base, extra...)
}

func TestResolveDefaults(t *testing.T) {
	resolved, err := Resolve(testSchema(), sourcesWithSecret())

	require.NoError(t, err, "Resolve should succeed when every non-required setting has a default")
	assert.Equal(t, "localhost", resolved.String("host"))
	assert.Equal(t, 5432, resolved.Int("port"))
	assert.False(t, resolved.Bool("echo"))
	assert.Equal(t, 30*time.Second, resolved.Duration("pool_timeout"))
}

func TestResolveLastSourceWins(t *testing.T) {
	low := NewMapSource("base-file", map[string]string{"DB_HOST": "base-host", "DB_PORT": "5433"})
	high := NewMapSource("environment", map[string]string{"DB_HOST": "env-host"})

	resolved, err := Resolve(testSchema(), sourcesWithSecret(low, high))

	require.NoError(t, err)
	assert.Equal(t, "env-host", resolved.String("host"),
		"the later source should win for settings it supplies")
	assert.Equal(t, 5433, resolved.Int("port"),
		"settings absent from later sources should keep the earlier override")
}

func TestResolveEnvOverridesFilesRegardlessOfFileOrder(t *testing.T) {
	fileA := NewMapSource("file:a", map[string]string{"DB_HOST": "a-host"})
	fileB := NewMapSource("file:b", map[string]string{"DB_HOST": "b-host"})
	env := NewMapSource("environment", map[string]string{"DB_HOST": "env-host"})

	for name, files := range map[string][]Source{
		"a-then-b": {fileA, fileB},
		"b-then-a": {fileB, fileA},
	} {
		t.Run(name, func(t *testing.T) {
			sources := sourcesWithSecret(append(files, env)...)
			resolved, err := Resolve(testSchema(), sources)
			require.NoError(t, err)
			assert.Equal(t, "env-host", resolved.String("host"))
		})
	}
}

func TestResolveLookupFallsBackToSettingName(t *testing.T) {
	// Sources may key values by canonical name instead of the env alias.
	byName := NewMapSource("overrides", map[string]string{"port": "6543"})

	resolved, err := Resolve(testSchema(), sourcesWithSecret(byName))

	require.NoError(t, err)
	assert.Equal(t, 6543, resolved.Int("port"))
}

func TestResolveMissingRequiredSetting(t *testing.T) {
	_, err := Resolve(testSchema(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredSetting)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "secret", cfgErr.Setting, "the error should name the offending setting")
}

func TestResolveTypeCoercionErrors(t *testing.T) {
	testCases := []struct {
		name    string
		values  map[string]string
		setting string
	}{
		{
			name:    "non-numeric int",
			values:  map[string]string{"DB_PORT": "notanumber"},
			setting: "port",
		},
		{
			name:    "non-boolean bool",
			values:  map[string]string{"DB_ECHO": "maybe"},
			setting: "echo",
		},
		{
			name:    "garbage duration",
			values:  map[string]string{"DB_POOL_TIMEOUT": "soon"},
			setting: "pool_timeout",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(testSchema(), sourcesWithSecret(NewMapSource("bad", tc.values)))

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTypeCoercion)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.setting, cfgErr.Setting)
		})
	}
}

func TestResolveValidationError(t *testing.T) {
	bad := NewMapSource("bad", map[string]string{"DB_PORT": "70000"})

	_, err := Resolve(testSchema(), sourcesWithSecret(bad))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "port", cfgErr.Setting)
}

func TestResolveDurationAcceptsBareSeconds(t *testing.T) {
	src := NewMapSource("overrides", map[string]string{"DB_POOL_TIMEOUT": "45"})

	resolved, err := Resolve(testSchema(), sourcesWithSecret(src))

	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, resolved.Duration("pool_timeout"),
		"bare integers should be read as seconds")
}

func TestResolveIsIdempotent(t *testing.T) {
	sources := sourcesWithSecret(NewMapSource("overrides", map[string]string{
		"DB_HOST": "db.internal",
		"DB_PORT": "5444",
	}))

	first, err := Resolve(testSchema(), sources)
	require.NoError(t, err)
	second, err := Resolve(testSchema(), sources)
	require.NoError(t, err)

	assert.NotSame(t, first, second, "each call should return an independent snapshot")
	assert.Equal(t, first.values, second.values,
		"identical sources must resolve to field-wise equal results")
}

func TestResolveDoesNotMutateSources(t *testing.T) {
	values := map[string]string{"DB_HOST": "db.internal"}
	src := NewMapSource("overrides", values)

	_, err := Resolve(testSchema(), sourcesWithSecret(src))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DB_HOST": "db.internal"}, values)
}
