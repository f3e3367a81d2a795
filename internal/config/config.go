package config

import (
	"fmt"
	"os"

	"github.com/san-kum/gearsim/internal/gear"
	"github.com/san-kum/gearsim/internal/motion"
	"github.com/san-kum/gearsim/internal/scene"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS       = 60
	DefaultGearCount = 4
	DefaultDataDir   = ".gearsim"
)

type Config struct {
	BaseSpeed            float64 `yaml:"base_speed"`
	DampenFactor         float64 `yaml:"dampen_factor"`
	MouseInfluenceFactor float64 `yaml:"mouse_influence_factor"`
	IDPrefix             string  `yaml:"id_prefix"`
	Teeth                []int   `yaml:"teeth,omitempty"`
	Scene                string  `yaml:"scene,omitempty"`
	Gears                int     `yaml:"gears"`
	FPS                  int     `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseSpeed:            motion.DefaultBaseSpeed,
		DampenFactor:         motion.DefaultDampenFactor,
		MouseInfluenceFactor: motion.DefaultMouseInfluenceFactor,
		IDPrefix:             scene.DefaultPrefix,
		Gears:                DefaultGearCount,
		FPS:                  DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() motion.Params {
	return motion.Params{
		BaseSpeed:            c.BaseSpeed,
		DampenFactor:         c.DampenFactor,
		MouseInfluenceFactor: c.MouseInfluenceFactor,
	}
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	for i, n := range c.Teeth {
		if n == 0 {
			return fmt.Errorf("teeth[%d]: %w", i, gear.ErrInvalidToothCount)
		}
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Scene == "" && c.Teeth == nil && c.Gears <= 0 {
		return fmt.Errorf("gears must be positive without a scene, got %d", c.Gears)
	}
	return nil
}

// LoadScene returns the configured scene file, or a generated gear train
// when none is set.
func (c *Config) LoadScene() (*scene.Scene, error) {
	if c.Scene != "" {
		return scene.Load(c.Scene)
	}
	if c.Teeth != nil {
		return scene.Train(c.IDPrefix, c.Teeth, scene.DefaultModule*2), nil
	}
	teeth := make([]int, c.Gears)
	for i := range teeth {
		teeth[i] = scene.AlternatingTeeth(i + 1)
	}
	return scene.Train(c.IDPrefix, teeth, scene.DefaultModule*4), nil
}
