package motion

import (
	"github.com/san-kum/gearsim/internal/gear"
)

// dragState tracks the previous pointer sample. It is engaged while the same
// gear stays under the pointer across consecutive samples.
type dragState struct {
	hovered gear.Handle
	prev    gear.Point
	engaged bool
}

type Engine struct {
	gears  *gear.Set
	params Params

	speed float64
	angle float64

	lastTick    float64
	ticked      bool
	lastPointer float64
	pointed     bool

	drag dragState
}

// Snapshot is a read-only view of the engine state.
type Snapshot struct {
	Speed   float64
	Angle   float64
	Hovered gear.Handle
	Engaged bool
}

// New validates p and returns an engine at base speed with a zero angle.
func New(gears *gear.Set, p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if gears == nil {
		gears = gear.NewSet()
	}
	return &Engine{
		gears:  gears,
		params: p,
		speed:  p.BaseSpeed,
		drag:   dragState{hovered: gear.NoGear},
	}, nil
}

func (e *Engine) Params() Params       { return e.params }
func (e *Engine) Gears() *gear.Set     { return e.gears }
func (e *Engine) Speed() float64       { return e.speed }
func (e *Engine) Angle() float64       { return e.angle }
func (e *Engine) Hovered() gear.Handle { return e.drag.hovered }

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Speed:   e.speed,
		Angle:   e.angle,
		Hovered: e.drag.hovered,
		Engaged: e.drag.engaged,
	}
}

// OnClockTick advances the assembly to timestamp ms. The first tick only seeds
// the clock. A non-positive elapsed time skips dampening and integration.
// Every tick writes the current rotation to all gears.
func (e *Engine) OnClockTick(ms float64) {
	if e.ticked {
		dt := ms - e.lastTick
		if dt > 0 {
			e.speed = Dampen(e.speed, e.params.BaseSpeed, e.params.DampenFactor)
			e.angle += dt * e.speed
		}
	}
	e.lastTick = ms
	e.ticked = true

	e.render()
}

func (e *Engine) render() {
	e.gears.Each(func(_ gear.Handle, g gear.Gear) {
		g.Item.Rotate(g.RenderedAngle(e.angle))
	})
}

// OnPointerSample feeds a pointer position in local coordinates at timestamp
// ms. Influence is applied only when the previous sample hovered the same gear
// and time moved forward; the first sample ever only seeds the drag state.
func (e *Engine) OnPointerSample(p gear.Point, ms float64) {
	hovered := e.gears.HitTest(p)

	dt := ms - e.lastPointer
	first := !e.pointed
	e.lastPointer = ms
	e.pointed = true

	engaged := !first && dt > 0 && hovered.Valid() && hovered == e.drag.hovered
	if engaged {
		if g, ok := e.gears.Get(hovered); ok {
			influence := DragInfluence(g.AngleOf(e.drag.prev), g.AngleOf(p), dt, g.Teeth)
			e.speed = Blend(e.speed, influence, e.params.MouseInfluenceFactor)
		}
	}

	e.drag = dragState{hovered: hovered, prev: p, engaged: engaged}
}
