package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var config Config

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port                  int
	Timeout               int
	MaxConcurrentRequests int
	LogLevel              string
	CORS                  CORSConfig
}

type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
}

type DatabaseConfig struct {
	// Path is the location of the DuckDB store on disk. The store is
	// produced by the ingest command and opened read-only when serving.
	Path string
}

// InitializeConfig loads the configuration
// returns an error if there was a problem loading the configuration.
func InitializeConfig() error {
	return loadConfig()
}

// loadConfig reads the configuration from the environment. A .env file in
// the working directory is picked up when present so local setups don't
// have to export anything.
func loadConfig() error {
	godotenv.Load()

	config.Database.Path = envString("DUCKDB_PATH", "./road_network.duckdb")

	port, err := envInt("PORT", 8000)
	if err != nil {
		return err
	}
	timeout, err := envInt("SERVER_TIMEOUT", 30)
	if err != nil {
		return err
	}
	maxConcurrent, err := envInt("MAX_CONCURRENT_REQUESTS", 100)
	if err != nil {
		return err
	}

	config.Server = ServerConfig{
		Port:                  port,
		Timeout:               timeout,
		MaxConcurrentRequests: maxConcurrent,
		LogLevel:              envString("LOG_LEVEL", "info"),
		CORS: CORSConfig{
			AllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),
			AllowMethods: envList("CORS_ALLOW_METHODS", []string{"GET", "OPTIONS"}),
			AllowHeaders: envList("CORS_ALLOW_HEADERS", []string{"Accept", "Content-Type"}),
		},
	}

	return nil
}

// GetConfig returns the current configuration.
func GetConfig() Config {
	return config
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", key, v)
	}
	return n, nil
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
