package metrics

import (
	"math"

	"github.com/san-kum/gearsim/internal/assembly"
)

type Metric interface {
	Name() string
	Observe(f assembly.Frame)
	Value() float64
	Reset()
}

// Evaluate resets each metric, replays frames into it and collects the values.
func Evaluate(frames []assembly.Frame, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, f := range frames {
			m.Observe(f)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Standard returns the metrics recorded with every run.
func Standard(baseSpeed float64) []Metric {
	return []Metric{
		NewPeakSpeed(),
		NewRecovery(baseSpeed, 0.01),
		NewFlips(),
		NewMeanSpeed(),
	}
}

type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(f assembly.Frame) {
	p.peak = math.Max(p.peak, math.Abs(f.Speed))
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }

// Recovery measures the last time |speed| left the tolerance band around
// |base|. It is 0 for a run that never left the band and -1 for one that
// ended outside it.
type Recovery struct {
	base      float64
	tolerance float64
	lastOut   float64
	inside    bool
	samples   int
}

func NewRecovery(base, tolerance float64) *Recovery {
	return &Recovery{base: math.Abs(base), tolerance: tolerance}
}

func (r *Recovery) Name() string { return "recovery_ms" }

func (r *Recovery) Observe(f assembly.Frame) {
	r.samples++
	band := r.tolerance * r.base
	if band == 0 {
		band = r.tolerance
	}
	r.inside = math.Abs(math.Abs(f.Speed)-r.base) <= band
	if !r.inside {
		r.lastOut = f.Time
	}
}

func (r *Recovery) Value() float64 {
	if r.samples > 0 && !r.inside {
		return -1
	}
	return r.lastOut
}

func (r *Recovery) Reset() {
	r.lastOut = 0
	r.inside = false
	r.samples = 0
}

// Flips counts direction reversals of the mesh speed.
type Flips struct {
	count int
	last  float64
}

func NewFlips() *Flips { return &Flips{} }

func (fl *Flips) Name() string { return "direction_flips" }

func (fl *Flips) Observe(f assembly.Frame) {
	if f.Speed == 0 {
		return
	}
	if fl.last != 0 && math.Signbit(f.Speed) != math.Signbit(fl.last) {
		fl.count++
	}
	fl.last = f.Speed
}

func (fl *Flips) Value() float64 { return float64(fl.count) }

func (fl *Flips) Reset() {
	fl.count = 0
	fl.last = 0
}

type MeanSpeed struct {
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(f assembly.Frame) {
	m.sum += f.Speed
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}
