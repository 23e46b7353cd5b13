package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file read by the CLI when --env-file is not
// given.
const DefaultEnvFile = ".env"

// LoadEnvFile exports the KEY=VALUE pairs in path into the process
// environment so that ANCHOR_* overrides can live next to the config file.
// Variables already set in the environment win. A missing file is an error
// only when required is true.
func LoadEnvFile(path string, required bool) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !required && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %q: %w", path, err)
}
