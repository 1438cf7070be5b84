// Package config resolves glimt's runtime configuration from the
// environment, an optional .env file, and built-in defaults. Command-line
// flags override whatever is resolved here.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultModel is the image model used when none is configured.
const DefaultModel = "imagen-4.0-generate-001"

// Config holds everything the application needs at startup.
type Config struct {
	// APIKey is the Gemini API credential. Empty means generation is
	// refused with a user-facing message before any network call.
	APIKey string
	// Model is the image-generation model identifier.
	Model string
	// HistoryPath is the JSON file holding the generation history.
	HistoryPath string
	// OutputDir is where downloaded images are written ("" = cwd).
	OutputDir string
}

// Load resolves configuration. A .env file in the working directory is
// honored if present; a missing one is not an error.
func Load() *Config {
	_ = godotenv.Load()

	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	}

	model := strings.TrimSpace(os.Getenv("GLIMT_MODEL"))
	if model == "" {
		model = DefaultModel
	}

	return &Config{
		APIKey:      key,
		Model:       model,
		HistoryPath: defaultHistoryPath(),
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "glimt-history.json"
	}
	return filepath.Join(home, ".glimt", "history.json")
}
