package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	DiscogsBaseURL   string
	DiscogsToken     string
	DiscogsUserAgent string
	DiscogsUsername  string
	DiscogsTimeoutMs int
	PerPage          int

	SleepBetweenCallsMs int
	IncludeFullRelease  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "collection.duckdb")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		DiscogsBaseURL:   getEnv("DISCOGS_BASE_URL", "https://api.discogs.com"),
		DiscogsToken:     getEnv("DISCOGS_TOKEN", ""),
		DiscogsUserAgent: getEnv("DISCOGS_USER_AGENT", "discosync/1.0"),
		DiscogsUsername:  getEnv("DISCOGS_USERNAME", ""),
		DiscogsTimeoutMs: getEnvInt("DISCOGS_TIMEOUT_MS", 30000),
		PerPage:          getEnvInt("DISCOGS_PER_PAGE", 100),

		// Fetching the full release doubles the call count; disable for speed.
		SleepBetweenCallsMs: getEnvInt("SLEEP_BETWEEN_CALLS_MS", 250),
		IncludeFullRelease:  getEnvBool("INCLUDE_FULL_RELEASE", true),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
