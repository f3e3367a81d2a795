package config

import "sort"

var Presets = map[string]*Config{
	"default": {
		BaseSpeed: 0.3, DampenFactor: 0.05, MouseInfluenceFactor: 0.005,
		Gears: 4, FPS: 60,
	},
	"snappy": {
		BaseSpeed: 0.3, DampenFactor: 0.3, MouseInfluenceFactor: 0.01,
		Gears: 4, FPS: 60,
	},
	"freewheel": {
		BaseSpeed: 0.3, DampenFactor: 0.005, MouseInfluenceFactor: 0.02,
		Gears: 4, FPS: 60,
	},
	"reverse": {
		BaseSpeed: -0.3, DampenFactor: 0.05, MouseInfluenceFactor: 0.005,
		Gears: 4, FPS: 60,
	},
	"clockwork": {
		BaseSpeed: 0.6, DampenFactor: 0.05, MouseInfluenceFactor: 0.005,
		Teeth: []int{12, -24, 12, -36, 18}, FPS: 60,
	},
	"heavy": {
		BaseSpeed: 0.1, DampenFactor: 0.02, MouseInfluenceFactor: 0.001,
		Teeth: []int{40, -20, 10}, FPS: 60,
	},
}

// GetPreset returns a copy of the named preset with the default prefix.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = DefaultConfig().IDPrefix
	}
	if p.Teeth != nil {
		cfg.Teeth = append([]int(nil), p.Teeth...)
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
