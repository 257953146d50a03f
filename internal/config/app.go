package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Load pulls a .env file into the environment when one exists. Missing files
// are fine; deployed environments configure through real env variables.
func Load() {
	_ = godotenv.Load()
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port returns the listen address, ":8080" unless APP_PORT says otherwise.
func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}
