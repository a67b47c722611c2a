package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
)

// envVarPattern matches ${VAR_NAME} patterns in manifest values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw manifest value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// LoadDotEnv loads .env and .env.local from dir. Variables already present
// in the environment are not overwritten.
func LoadDotEnv(dir string) []string {
	var loaded []string

	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(dir, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			// Log warning but don't fail
			slog.Warn(fmt.Sprintf("failed to load %s", envFile), "error", err)
			continue
		}
		loaded = append(loaded, envFile)
	}

	return loaded
}
