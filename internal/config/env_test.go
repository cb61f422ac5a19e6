package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadSettingsDefaults(t *testing.T) {
	for _, key := range []string{EnvFormat, EnvLogLevel, EnvAddr, EnvStartingYear} {
		unsetenv(t, key)
	}

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsFromEnvFile(t *testing.T) {
	for _, key := range []string{EnvFormat, EnvAddr, EnvStartingYear} {
		unsetenv(t, key)
	}
	t.Setenv(EnvLogLevel, "warn")

	path := filepath.Join(t.TempDir(), ".env")
	content := "ASSETPROJ_FORMAT=json\nASSETPROJ_ADDR=:9090\nASSETPROJ_STARTING_YEAR=2030\nASSETPROJ_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, ":9090", s.Addr)
	assert.Equal(t, 2030, s.StartingYear)
	// Existing environment wins over the file.
	assert.Equal(t, "warn", s.LogLevel)
}
