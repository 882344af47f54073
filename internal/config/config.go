package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the station configuration. Values come from the YAML file,
// overridden by environment variables.
type Config struct {
	APIPort     int    `yaml:"api_port" env:"OUTILLAGE_API_PORT" env-default:"8080"`
	MetricsPort int    `yaml:"metrics_port" env:"OUTILLAGE_METRICS_PORT" env-default:"9090"`
	DBPath      string `yaml:"db_path" env:"OUTILLAGE_DB_PATH" env-default:"outillage.db"`
	CatalogPath string `yaml:"catalog_path" env:"OUTILLAGE_CATALOG_PATH" env-default:"configs/catalog.yaml"`
	DBLogMode   bool   `yaml:"db_log_mode" env:"OUTILLAGE_DB_LOG_MODE" env-default:"false"`
}

// Load reads configuration from a YAML file and environment variables.
// When the file does not exist, configuration comes from the environment
// and the defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.APIPort <= 0 || cfg.MetricsPort <= 0 {
		return nil, fmt.Errorf("config: ports must be positive, got api=%d metrics=%d", cfg.APIPort, cfg.MetricsPort)
	}

	return &cfg, nil
}
