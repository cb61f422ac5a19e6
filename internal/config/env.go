package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadSettings.
const (
	EnvFormat       = "ASSETPROJ_FORMAT"
	EnvLogLevel     = "ASSETPROJ_LOG_LEVEL"
	EnvAddr         = "ASSETPROJ_ADDR"
	EnvStartingYear = "ASSETPROJ_STARTING_YEAR"
)

// Settings are process-level defaults for the CLI and server. Flags
// override them.
type Settings struct {
	Format       string
	LogLevel     string
	Addr         string
	StartingYear int // default startingYear for entities without one; 0 means the current year
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Format:   "console",
		LogLevel: "info",
		Addr:     ":8080",
	}
}

// LoadSettings loads the given .env files (".env" when none are given),
// ignoring missing ones, then reads ASSETPROJ_* variables over the defaults.
func LoadSettings(envFiles ...string) (Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, err
		}
	}

	s := DefaultSettings()
	if v := os.Getenv(EnvFormat); v != "" {
		s.Format = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		s.Addr = v
	}
	if v := os.Getenv(EnvStartingYear); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			s.StartingYear = year
		}
	}
	return s, nil
}
