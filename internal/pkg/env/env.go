// Package env is the configuration access layer: a .env file read once at
// startup, with the process environment as fallback so containerized
// deployments work without a file on disk.
package env

import (
	"os"

	"github.com/joho/godotenv"
)

var values map[string]string

// envFileCandidates covers the places a binary runs from: the repo root,
// and the cmd/<binary> directories during `go run`.
var envFileCandidates = []string{
	".env",
	"../../.env",
	"../../../.env",
}

// GetEnv returns the configured value for key. The loaded .env file wins
// over the process environment; def is the last resort.
func GetEnv(key, def string) string {
	if val, ok := values[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first .env file found among the known locations.
// Deployments are expected to ship one; refusing to start beats running
// with silently empty credentials.
func SetupEnvFile() {
	for _, candidate := range envFileCandidates {
		parsed, err := godotenv.Read(candidate)
		if err == nil {
			values = parsed
			return
		}
	}

	panic("no .env file found in the working directory or project root")
}

// IsDev reports whether the service runs with APP_ENV=dev.
func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
