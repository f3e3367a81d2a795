package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/gearsim/internal/assembly"
	"github.com/san-kum/gearsim/internal/metrics"
	"github.com/san-kum/gearsim/internal/motion"
)

// ParameterSweep reruns a scenario across a range of one motion parameter.
type ParameterSweep struct {
	Param    string
	Min, Max float64
	Steps    int
}

type SweepResult struct {
	Value   float64
	Metrics map[string]float64
}

// Builder creates a fresh assembly for one sweep point.
type Builder func(p motion.Params) (*assembly.Assembly, error)

func (sw *ParameterSweep) apply(p motion.Params, v float64) (motion.Params, error) {
	switch sw.Param {
	case "base_speed":
		p.BaseSpeed = v
	case "dampen_factor":
		p.DampenFactor = v
	case "mouse_influence_factor":
		p.MouseInfluenceFactor = v
	default:
		return p, fmt.Errorf("unknown sweep parameter %q", sw.Param)
	}
	return p, nil
}

func RunSweep(ctx context.Context, sw *ParameterSweep, sc *Scenario, base motion.Params, build Builder) ([]SweepResult, error) {
	if sw.Steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sw.Steps)
	}
	results := make([]SweepResult, 0, sw.Steps)
	step := (sw.Max - sw.Min) / float64(sw.Steps-1)

	for i := 0; i < sw.Steps; i++ {
		v := sw.Min + float64(i)*step
		p, err := sw.apply(base, v)
		if err != nil {
			return nil, err
		}
		a, err := build(p)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%.4f: %w", sw.Param, v, err)
		}
		frames, err := Run(ctx, sc, a)
		if err != nil {
			return results, err
		}
		results = append(results, SweepResult{
			Value:   v,
			Metrics: metrics.Evaluate(frames, metrics.Standard(p.BaseSpeed)...),
		})
	}
	return results, nil
}
