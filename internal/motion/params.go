package motion

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultBaseSpeed            = 0.3   // deg/ms
	DefaultDampenFactor         = 0.05  // per tick
	DefaultMouseInfluenceFactor = 0.005 // per pointer sample
)

// ErrParameterBounds indicates a motion parameter outside its valid range.
var ErrParameterBounds = errors.New("motion: parameter out of valid bounds")

type Params struct {
	BaseSpeed            float64 `yaml:"base_speed" json:"base_speed"`
	DampenFactor         float64 `yaml:"dampen_factor" json:"dampen_factor"`
	MouseInfluenceFactor float64 `yaml:"mouse_influence_factor" json:"mouse_influence_factor"`
}

func DefaultParams() Params {
	return Params{
		BaseSpeed:            DefaultBaseSpeed,
		DampenFactor:         DefaultDampenFactor,
		MouseInfluenceFactor: DefaultMouseInfluenceFactor,
	}
}

func (p Params) Validate() error {
	if math.IsNaN(p.BaseSpeed) || math.IsInf(p.BaseSpeed, 0) {
		return fmt.Errorf("%w: base_speed must be finite, got %v", ErrParameterBounds, p.BaseSpeed)
	}
	if !unit(p.DampenFactor) {
		return fmt.Errorf("%w: dampen_factor must be in [0,1], got %v", ErrParameterBounds, p.DampenFactor)
	}
	if !unit(p.MouseInfluenceFactor) {
		return fmt.Errorf("%w: mouse_influence_factor must be in [0,1], got %v", ErrParameterBounds, p.MouseInfluenceFactor)
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
