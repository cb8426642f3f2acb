// Package config loads the ATM process configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config 為 ATM 服務的全部設定，全部來自環境變數（ATM_ 前綴）。
type Config struct {
	HTTPAddr     string `env:"ATM_HTTP_ADDR" envDefault:":8080"`
	FixturesPath string `env:"ATM_FIXTURES" envDefault:"fixtures.json"`
	// FeePercent is the withdrawal fee as a percentage of the amount.
	FeePercent   decimal.Decimal `env:"ATM_FEE_PERCENT" envDefault:"1"`
	OperatorCard string          `env:"ATM_OPERATOR_CARD"`

	Manufacturer string `env:"ATM_MANUFACTURER" envDefault:"Simulated ATM Co."`
	SerialNumber string `env:"ATM_SERIAL_NUMBER" envDefault:"SIM-0001"`

	LogLevel       string `env:"ATM_LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"ATM_LOG_DEVELOPMENT" envDefault:"false"`
}

// Load reads .env files and parses the environment. A missing .env file is
// ignored; an unreadable or malformed one is an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects a negative fee percentage and an empty listen address.
func (c Config) Validate() error {
	if c.FeePercent.IsNegative() {
		return errors.New("ATM_FEE_PERCENT must not be negative")
	}
	if c.HTTPAddr == "" {
		return errors.New("ATM_HTTP_ADDR must not be empty")
	}
	return nil
}
