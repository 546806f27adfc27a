package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultActorID = "automateitplease~free-basic-google-maps-scraper"
	DefaultBaseURL = "https://api.apify.com/v2"
)

// Config holds everything read from the environment.
type Config struct {
	Apify ApifyConfig

	HTTPAddr      string
	PreviewLimit  int
	WatchInterval time.Duration

	LogFormat string // "json" or "text"
	LogLevel  string
}

type ApifyConfig struct {
	// Token may be empty; the client then degrades per operation instead of failing.
	Token   string
	ActorID string
	BaseURL string
	Timeout time.Duration
}

// Load reads an optional .env file, then the process environment.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load env file %s: %w", envFilePath, err)
		}
	}

	cfg := &Config{
		Apify: ApifyConfig{
			Token:   getEnv("APIFY_TOKEN", ""),
			ActorID: getEnv("APIFY_ACTOR_ID", DefaultActorID),
			BaseURL: getEnv("APIFY_BASE_URL", DefaultBaseURL),
			Timeout: getEnvAsDuration("APIFY_TIMEOUT", 30*time.Second),
		},
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		PreviewLimit:  getEnvAsInt("PREVIEW_LIMIT", 10),
		WatchInterval: getEnvAsDuration("WATCH_INTERVAL", 5*time.Second),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.PreviewLimit <= 0 {
		cfg.PreviewLimit = 10
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
