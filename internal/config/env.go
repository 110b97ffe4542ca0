// Package config defines environment configuration structs and loaders.
package config

import (
	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	ScoringEnvConfig
	ServerEnvConfig
	StoreEnvConfig
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ScoringEnvConfig holds the scoring method defaults.
type ScoringEnvConfig struct {
	Method        string `env:"SCORE_METHOD" envDefault:"summed_up"`
	Normalization string `env:"SCORE_NORMALIZATION" envDefault:"standard"`
	RBODepth      int    `env:"SCORE_RBO_DEPTH" envDefault:"100"`
	Ranked        bool   `env:"SCORE_RANKED" envDefault:"false"`
	Workers       int    `env:"SCORE_WORKERS" envDefault:"0"`
}

// ServerEnvConfig configures the scoring API server.
type ServerEnvConfig struct {
	Address       string `env:"SERVER_ADDRESS" envDefault:"127.0.0.1"`
	Port          int    `env:"SERVER_PORT" envDefault:"8080"`
	BodySizeLimit int    `env:"SERVER_BODY_LIMIT" envDefault:"33554432"`
}

// StoreEnvConfig configures result outputs.
type StoreEnvConfig struct {
	DBPath  string `env:"RESULTS_DB"`
	CSVPath string `env:"RESULTS_CSV"`
}
