package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageSQLite = "sqlite"
	StorageMongo  = "mongo"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Config struct {
	Port            int           `env:"PORT" envDefault:"5000"`
	StorageDriver   string        `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	DBPath          string        `env:"DB_PATH" envDefault:"data/cycletracker.db"`
	MongoURI        string        `env:"MONGO_URI"`
	MongoDatabase   string        `env:"MONGO_DATABASE" envDefault:"cycletracker"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	CORSOrigins     string        `env:"CORS_ORIGINS" envDefault:"*"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	LogFile         string        `env:"LOG_FILE"`
	LogMaxSizeMB    int           `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	LogMaxBackups   int           `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads ENV_FILE (default .env) when it exists, then parses the
// environment. Variables already set in the process win over the file.
func Load() (Config, error) {
	envFile := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageSQLite:
		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("DB_PATH is required for the sqlite storage driver")
		}
	case StorageMongo:
		if strings.TrimSpace(cfg.MongoURI) == "" {
			return errors.New("MONGO_URI is required for the mongo storage driver")
		}
		if strings.TrimSpace(cfg.MongoDatabase) == "" {
			return errors.New("MONGO_DATABASE is required for the mongo storage driver")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	switch cfg.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", cfg.LogFormat)
	}

	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (cfg Config) ListenAddress() string {
	return fmt.Sprintf(":%d", cfg.Port)
}

// AllowedOrigins returns the trimmed, comma separated CORS_ORIGINS entries.
func (cfg Config) AllowedOrigins() string {
	parts := strings.Split(cfg.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
