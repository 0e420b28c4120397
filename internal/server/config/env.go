package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv loads dotenvFile (if it exists) into the process environment
// without overriding variables that are already set, then overlays every
// Config field whose env variable is present. Fields with unset variables
// keep their current value.
func parseEnv(config *Config, dotenvFile string) {
	if dotenvFile != "" {
		if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
