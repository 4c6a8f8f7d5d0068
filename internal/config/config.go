/*
Package config manages TOML config for lexiserve services.

InitConfig handles automatic config file creation and loading with fallback to defaults.
LoadConfig and SaveConfig provide direct fs for runtime changes.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server and wire-protocol related options.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	MaxLimit        int    `toml:"max_limit"`
	MinQueryLen     int    `toml:"min_query_len"`
	MaxQueryLen     int    `toml:"max_query_len"`
	ResultCacheSize int    `toml:"result_cache_size"`
}

// StoreConfig holds the String Store's sizing options.
type StoreConfig struct {
	InitialCapacity int `toml:"initial_capacity"`
	MaxEntryLength  int `toml:"max_entry_length"`
}

// CliConfig holds CLI interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            7700,
			MaxLimit:        64,
			MinQueryLen:     1,
			MaxQueryLen:     50,
			ResultCacheSize: 512,
		},
		Store: StoreConfig{
			InitialCapacity: 4096,
			MaxEntryLength:  50,
		},
		CLI: CliConfig{
			DefaultLimit: 15,
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: ( %s )", configPath)
		return cfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Errorf("Failed to decode config file: %v", err)
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("Failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(cfg)
}
