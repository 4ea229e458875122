package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig holds flag defaults that can be set from the environment.
// Explicit flags always win.
type envConfig struct {
	Seed          int64  `env:"DEBTSIM_SEED" envDefault:"42"`
	LogLevel      string `env:"DEBTSIM_LOG_LEVEL" envDefault:"warn"`
	ScenariosFile string `env:"DEBTSIM_SCENARIOS_FILE" envDefault:"scenarios.yaml"`
}

// parseEnv loads envConfig from the process environment.
func parseEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
