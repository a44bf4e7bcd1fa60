package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Settings are the process-level inputs of the harness: which environment to test and where
// its configuration sources live. Command-line flags can override each of them.
type Settings struct {
	// Environment is the raw environment name from ENV; it is normalized by the Resolver.
	Environment string
	// ConfigDir is the directory searched for config.<environment>.properties and
	// config.properties.
	ConfigDir string
	// LoginTimeout bounds each call to the login endpoint.
	LoginTimeout time.Duration
	// TimeLimitScale multiplies every response-time limit of the endpoint tests.
	TimeLimitScale float64
}

// LoadSettings reads Settings from environment variables, after loading the nearest .env file
// if there is one.
func LoadSettings() Settings {
	loadDotEnv()

	return Settings{
		Environment:    env.GetString("ENV", DefaultEnvironment),
		ConfigDir:      env.GetString("CONFIG_DIR", "config"),
		LoginTimeout:   env.GetDuration("LOGIN_TIMEOUT_SECONDS", 30, time.Second),
		TimeLimitScale: env.GetFloat64("TIME_LIMIT_SCALE", 1),
	}
}

// loadDotEnv searches for a .env file from the current directory up to the root directory and
// loads the first one it finds. Variables that are already set are not overridden.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
