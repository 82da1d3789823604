package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration: which server to talk to and how the
// session behaves. Values come from an optional YAML file overridden by
// environment variables.
type Config struct {
	ServerAddr    string        `yaml:"server_addr"`
	PlayerName    string        `yaml:"player_name"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	LogLevel      string        `yaml:"log_level"`
}

// Default returns the local-development configuration.
func Default() Config {
	return Config{
		ServerAddr:    "ws://localhost:8080/ws",
		RetryInterval: 3 * time.Second,
		LogLevel:      "info",
	}
}

// Load reads the config file at path, if it exists, and applies environment
// overrides on top. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file is fine; env and defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %v", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file: %v", err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("MODERNART_SERVER_ADDR"); v != "" {
		c.ServerAddr = v
	}
	if v := os.Getenv("MODERNART_PLAYER_NAME"); v != "" {
		c.PlayerName = v
	}
	if v := os.Getenv("MODERNART_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MODERNART_RETRY_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("failed to parse MODERNART_RETRY_INTERVAL: %v", err)
		}
		c.RetryInterval = d
	}
	return nil
}
