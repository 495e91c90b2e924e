package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig selects where the dataset comes from. Source is a CSV path or
// an http(s) URL; when Catalog is set, Dataset is loaded from the SQLite
// catalog at that path instead.
type DataConfig struct {
	Source  string `yaml:"source"`
	Catalog string `yaml:"catalog"`
	Dataset string `yaml:"dataset"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TransportConfig selects how the MCP surface is exposed: "http" mounts it
// on the dashboard server, "stdio" serves it over stdin/stdout.
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Data: DataConfig{
			Source:  "data/day.csv",
			Dataset: "day",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
	}

	if path := os.Getenv("BIKEPULSE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("BIKEPULSE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("BIKEPULSE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BIKEPULSE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if source := os.Getenv("BIKEPULSE_DATA_SOURCE"); source != "" {
		cfg.Data.Source = source
	}
	if catalog := os.Getenv("BIKEPULSE_DATA_CATALOG"); catalog != "" {
		cfg.Data.Catalog = catalog
	}
	if name := os.Getenv("BIKEPULSE_DATA_DATASET"); name != "" {
		cfg.Data.Dataset = name
	}
	if level := os.Getenv("BIKEPULSE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mode := os.Getenv("BIKEPULSE_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}

	if cfg.Transport.Mode != "http" && cfg.Transport.Mode != "stdio" {
		return Config{}, fmt.Errorf("invalid transport mode %q (use: http, stdio)", cfg.Transport.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
