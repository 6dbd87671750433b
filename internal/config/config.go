package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Versifine/strider/internal/camera"
	"github.com/Versifine/strider/internal/motion"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Motion  motion.Tuning `yaml:"motion"`
	Camera  camera.Tuning `yaml:"camera"`
	World   WorldConfig   `yaml:"world"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type WorldConfig struct {
	Spawn [3]float64  `yaml:"spawn"`
	Boxes []BoxConfig `yaml:"boxes"`
}

type BoxConfig struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Motion: motion.DefaultTuning(),
		Camera: camera.DefaultTuning(),
		World: WorldConfig{
			Spawn: [3]float64{0, 0.5, 0},
			Boxes: []BoxConfig{
				{Min: [3]float64{-20, -1, -20}, Max: [3]float64{20, 0, 20}},
			},
		},
	}
}

// Load reads a yaml file over the defaults. Out-of-range tuning values are
// clamped rather than rejected, so a hand-edited file cannot brick the sim.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Motion.Clamp()
	cfg.Camera.Clamp()
	return cfg, nil
}
