package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Sim holds the settings of the duelsim driver.
type Sim struct {
	DataDir  string `yaml:"data_dir" env:"DUELSIM_DATA_DIR"`
	Out      string `yaml:"out" env:"DUELSIM_OUT"`
	LogLevel string `yaml:"log_level" env:"DUELSIM_LOG_LEVEL"`

	Player1 SideConfig `yaml:"player1" envPrefix:"DUELSIM_P1_"`
	Player2 SideConfig `yaml:"player2" envPrefix:"DUELSIM_P2_"`
	Stage   string     `yaml:"stage" env:"DUELSIM_STAGE"`

	Seed     int64 `yaml:"seed" env:"DUELSIM_SEED"`
	Runs     int   `yaml:"runs" env:"DUELSIM_RUNS"`
	Workers  int   `yaml:"workers" env:"DUELSIM_WORKERS"`
	MaxTurns int   `yaml:"max_turns" env:"DUELSIM_MAX_TURNS"`
	SaveLog  bool  `yaml:"save_log" env:"DUELSIM_SAVE_LOG"`
}

// SideConfig picks a character and a CPU policy for one player.
type SideConfig struct {
	Character string `yaml:"character" env:"CHARACTER"`
	Policy    string `yaml:"policy" env:"POLICY"`
	// Item is stocked at battle start; empty means none.
	Item string `yaml:"item" env:"ITEM"`
}

// DefaultSim returns the settings used when no file is present.
func DefaultSim() Sim {
	return Sim{
		DataDir:  "assets",
		Out:      "out.json",
		LogLevel: "info",
		Player1:  SideConfig{Character: "yusuke", Policy: "aggressive"},
		Player2:  SideConfig{Character: "kuwabara", Policy: "balanced"},
		Stage:    "forest",
		Seed:     12345,
		Runs:     1,
		Workers:  8,
		MaxTurns: 200,
		SaveLog:  true,
	}
}

// LoadSim reads the sim config from a YAML file and applies environment
// overrides. A missing file yields defaults.
func LoadSim(path string) (Sim, error) {
	cfg := DefaultSim()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
