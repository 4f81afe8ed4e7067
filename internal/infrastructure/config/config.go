package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration. CLI flags may override
// individual fields after loading.
type Config struct {
	// Engine
	Workers int `env:"PAYENGINE_WORKERS" envDefault:"0"` // 0 means GOMAXPROCS

	// Dispute policy switches
	LockedAcceptsDisputes bool `env:"PAYENGINE_LOCKED_ACCEPTS_DISPUTES" envDefault:"false"`
	WithdrawalDisputes    bool `env:"PAYENGINE_WITHDRAWAL_DISPUTES"     envDefault:"true"`

	// Diagnostics
	EventBuffer int `env:"PAYENGINE_EVENT_BUFFER" envDefault:"1024"`

	// Logging
	LogLevel  string `env:"PAYENGINE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"PAYENGINE_LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
