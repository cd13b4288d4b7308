package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kapu/osu-scraper-go/internal/constants"
)

type Config struct {
	Osu     OsuConfig
	Pool    PoolConfig
	Output  OutputConfig
	Storage StorageConfig
	Logging LoggingConfig
}

type OsuConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
}

type PoolConfig struct {
	MaxWorkers int
}

type OutputConfig struct {
	Directory string
}

type StorageConfig struct {
	SnapshotDB string
}

type LoggingConfig struct {
	Level string
	File  string
}

// Load reads the environment (and .env). It does not validate; callers apply
// their overrides first and then call Validate.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Osu: OsuConfig{
			BaseURL:        strings.TrimRight(getEnv("OSU_BASE_URL", constants.ScraperConfig.DefaultBaseURL), "/"),
			UserAgent:      getEnv("OSU_USER_AGENT", constants.ScraperConfig.DefaultUserAgent),
			RequestTimeout: time.Duration(getEnvInt("OSU_REQUEST_TIMEOUT_SECONDS", int(constants.ScraperConfig.RequestTimeout/time.Second))) * time.Second,
		},
		Pool: PoolConfig{
			MaxWorkers: getEnvInt("OSU_MAX_WORKERS", constants.PoolConfig.DefaultWorkers),
		},
		Output: OutputConfig{
			Directory: getEnv("OSU_OUTPUT_DIR", ""),
		},
		Storage: StorageConfig{
			SnapshotDB: getEnv("OSU_SNAPSHOT_DB", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Osu.BaseURL == "" {
		return fmt.Errorf("OSU_BASE_URL is required")
	}
	if !strings.HasPrefix(c.Osu.BaseURL, "http://") && !strings.HasPrefix(c.Osu.BaseURL, "https://") {
		return fmt.Errorf("OSU_BASE_URL must be an http(s) URL, got %q", c.Osu.BaseURL)
	}
	if c.Osu.RequestTimeout <= 0 {
		return fmt.Errorf("OSU_REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.Pool.MaxWorkers < 1 || c.Pool.MaxWorkers > constants.PoolConfig.MaxWorkers {
		return fmt.Errorf("OSU_MAX_WORKERS must be between 1 and %d, got %d",
			constants.PoolConfig.MaxWorkers, c.Pool.MaxWorkers)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
