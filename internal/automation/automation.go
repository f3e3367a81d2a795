package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/san-kum/gearsim/internal/assembly"
	"github.com/san-kum/gearsim/internal/gear"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration  = 5000.0 // ms
	DefaultFPS       = 60
	DefaultPointerHz = 120
	DefaultGrip      = 0.6
)

var ErrUnknownGear = errors.New("automation: unknown gear")

// Scenario scripts a headless run: clock ticks at FPS and pointer drags.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Duration    float64 `yaml:"duration_ms"`
	FPS         int     `yaml:"fps"`
	PointerHz   int     `yaml:"pointer_hz"`
	Drags       []Drag  `yaml:"drags"`
}

// Drag moves the pointer around a gear center on a circle of Grip*radius,
// covering Turns revolutions (positive is clockwise on screen) between
// Start and End.
type Drag struct {
	Gear       string  `yaml:"gear"`
	Start      float64 `yaml:"start_ms"`
	End        float64 `yaml:"end_ms"`
	Turns      float64 `yaml:"turns"`
	Grip       float64 `yaml:"grip"`
	StartAngle float64 `yaml:"start_angle"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) applyDefaults() {
	if s.Duration == 0 {
		s.Duration = DefaultDuration
	}
	if s.FPS == 0 {
		s.FPS = DefaultFPS
	}
	if s.PointerHz == 0 {
		s.PointerHz = DefaultPointerHz
	}
	for i := range s.Drags {
		if s.Drags[i].Grip == 0 {
			s.Drags[i].Grip = DefaultGrip
		}
	}
}

func (s *Scenario) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", s.Duration)
	}
	if s.FPS <= 0 || s.PointerHz <= 0 {
		return fmt.Errorf("fps and pointer_hz must be positive")
	}
	for i, d := range s.Drags {
		if d.End <= d.Start {
			return fmt.Errorf("drag %d: end must be after start", i+1)
		}
		if d.Grip <= 0 || d.Grip >= 1 {
			return fmt.Errorf("drag %d: grip must be in (0,1), got %f", i+1, d.Grip)
		}
	}
	return nil
}

type eventKind int

const (
	tickEvent eventKind = iota
	pointerEvent
)

type event struct {
	kind  eventKind
	time  float64
	point gear.Point
}

// events expands the scenario into a time-ordered stream. Ticks sort before
// pointer samples with the same timestamp.
func (s *Scenario) events(a *assembly.Assembly) ([]event, error) {
	frameDt := 1000 / float64(s.FPS)
	frames := int(math.Floor(s.Duration/frameDt)) + 1
	events := make([]event, 0, frames)
	for i := 0; i < frames; i++ {
		events = append(events, event{kind: tickEvent, time: float64(i) * frameDt})
	}

	sampleDt := 1000 / float64(s.PointerHz)
	for i, d := range s.Drags {
		m, ok := a.Lookup(d.Gear)
		if !ok {
			return nil, fmt.Errorf("drag %d: %w: %s", i+1, ErrUnknownGear, d.Gear)
		}
		g, _ := a.Set.Get(m.Handle)
		r := g.Radius * d.Grip
		span := d.End - d.Start
		for t := d.Start; t <= d.End; t += sampleDt {
			theta := d.StartAngle + 2*math.Pi*d.Turns*(t-d.Start)/span
			events = append(events, event{
				kind:  pointerEvent,
				time:  t,
				point: gear.Point{X: g.Center.X + r*math.Cos(theta), Y: g.Center.Y + r*math.Sin(theta)},
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].time != events[j].time {
			return events[i].time < events[j].time
		}
		return events[i].kind < events[j].kind
	})
	return events, nil
}

// Run replays the scenario against a and returns one frame per tick.
func Run(ctx context.Context, s *Scenario, a *assembly.Assembly) ([]assembly.Frame, error) {
	events, err := s.events(a)
	if err != nil {
		return nil, err
	}

	frames := make([]assembly.Frame, 0, len(events))
	for i, ev := range events {
		if i%256 == 0 {
			select {
			case <-ctx.Done():
				return frames, ctx.Err()
			default:
			}
		}
		switch ev.kind {
		case tickEvent:
			a.Tick(ev.time)
			frames = append(frames, a.Frame(ev.time))
		case pointerEvent:
			a.Pointer(ev.point, ev.time)
		}
	}
	return frames, nil
}
