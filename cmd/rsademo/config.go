package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/smallyu/go-rsa-demo/pkg/rsa"
)

const (
	defaultBits    = 512
	defaultRounds  = 5
	defaultMessage = "Hello, RSA!"
)

// Config carries the demo defaults that can be overridden by a TOML file.
type Config struct {
	Bits    int    `toml:"bits"`
	Rounds  int    `toml:"rounds"`
	Message string `toml:"message"`
}

// loadConfig reads the TOML file at path, or returns the built-in defaults
// when path is empty.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{
		Bits:    defaultBits,
		Rounds:  defaultRounds,
		Message: defaultMessage,
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Bits < rsa.MinBits {
		return nil, fmt.Errorf("config: bits must be at least %d, got %d", rsa.MinBits, cfg.Bits)
	}
	if cfg.Rounds < 1 {
		return nil, fmt.Errorf("config: rounds must be at least 1, got %d", cfg.Rounds)
	}
	return cfg, nil
}
