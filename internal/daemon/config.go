// Package daemon manages the FlexBreak daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Engine    EngineConfig    `toml:"engine"`
	Areas     AreasConfig     `toml:"areas"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// EngineConfig controls gamification defaults.
type EngineConfig struct {
	BoostMultiplier float64 `toml:"boost_multiplier"`
	BoostHours      int     `toml:"boost_hours"`
}

// AreasConfig overlays the built-in area synonym table. The canonical area
// set is configuration, not code — the historical synonym list is only
// partially consistent with the labels used elsewhere.
type AreasConfig struct {
	Synonyms map[string]string `toml:"synonyms"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := flexbreakHome()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7421,
		},
		Engine: EngineConfig{
			BoostMultiplier: 2.0,
			BoostHours:      24,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "flexbreak.log"),
		},
	}
}

// LoadConfig reads config from ~/.flexbreak/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(flexbreakHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Engine.BoostMultiplier <= 1 {
		cfg.Engine.BoostMultiplier = 2.0
	}
	if cfg.Engine.BoostHours <= 0 {
		cfg.Engine.BoostHours = 24
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.flexbreak/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(flexbreakHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// flexbreakHome returns the FlexBreak data directory.
func flexbreakHome() string {
	if env := os.Getenv("FLEXBREAK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".flexbreak")
}

// FlexbreakHome is exported for use by other packages.
func FlexbreakHome() string {
	return flexbreakHome()
}
