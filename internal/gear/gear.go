package gear

import (
	"fmt"
	"math"
)

type Point struct {
	X, Y float64
}

// Box is an axis-aligned bounding box in the model's local coordinate space.
type Box struct {
	X, Y, Width, Height float64
}

// Renderable is the sink a gear writes its rotation into. Rotate receives a
// signed angle in degrees to be applied about the element's own center.
type Renderable interface {
	BBox() Box
	Rotate(deg float64)
}

// Pivoter is implemented by renderables whose rotation origin can be moved.
// Register centers the pivot once when it is available.
type Pivoter interface {
	SetPivot(p Point)
}

// Handle indexes a registered gear. NoGear marks the absence of one.
type Handle int

const NoGear Handle = -1

func (h Handle) Valid() bool { return h >= 0 }

type Gear struct {
	Teeth         int
	Center        Point
	Radius        float64
	RadiusSquared float64
	Item          Renderable
}

// Contains reports whether p lies strictly inside the gear's circle.
func (g *Gear) Contains(p Point) bool {
	dx := p.X - g.Center.X
	dy := p.Y - g.Center.Y
	return dx*dx+dy*dy < g.RadiusSquared
}

// AngleOf returns the polar angle of p around the gear center, in radians.
func (g *Gear) AngleOf(p Point) float64 {
	return math.Atan2(p.Y-g.Center.Y, p.X-g.Center.X)
}

// RenderedAngle maps the shared accumulated angle onto this gear.
func (g *Gear) RenderedAngle(accumulated float64) float64 {
	return RenderedAngle(accumulated, g.Teeth)
}

// RenderedAngle returns (accumulated / teeth) mod 360 using truncated modulo,
// so the result keeps the sign of the quotient and lies in (-360, 360).
// Gears with teeth t and -t get exactly opposite angles.
func RenderedAngle(accumulated float64, teeth int) float64 {
	return math.Mod(accumulated/float64(teeth), 360)
}

type Set struct {
	gears []Gear
}

func NewSet() *Set {
	return &Set{gears: make([]Gear, 0)}
}

// Register reads the renderable's bounding box once and stores a new gear.
// The radius is half the box width and the center is offset by the radius on
// both axes. A failed registration leaves the set unchanged.
func (s *Set) Register(item Renderable, teeth int) (Handle, error) {
	if teeth == 0 {
		return NoGear, &RegistrationError{Teeth: teeth, Wrapped: ErrInvalidToothCount}
	}
	if item == nil {
		return NoGear, &RegistrationError{Teeth: teeth, Wrapped: fmt.Errorf("%w: nil renderable", ErrInvalidGeometry)}
	}

	box := item.BBox()
	if !(box.Width > 0) || math.IsInf(box.Width, 0) {
		return NoGear, &RegistrationError{Teeth: teeth, Wrapped: ErrInvalidGeometry}
	}

	radius := box.Width / 2
	center := Point{X: box.X + radius, Y: box.Y + radius}
	if p, ok := item.(Pivoter); ok {
		p.SetPivot(center)
	}

	s.gears = append(s.gears, Gear{
		Teeth:         teeth,
		Center:        center,
		Radius:        radius,
		RadiusSquared: radius * radius,
		Item:          item,
	})
	return Handle(len(s.gears) - 1), nil
}

// HitTest returns the first gear in registration order that contains p.
// Overlapping gears resolve to the earliest registered one.
func (s *Set) HitTest(p Point) Handle {
	for i := range s.gears {
		if s.gears[i].Contains(p) {
			return Handle(i)
		}
	}
	return NoGear
}

func (s *Set) Count() int { return len(s.gears) }

// Get returns a copy of the gear behind h.
func (s *Set) Get(h Handle) (Gear, bool) {
	if !h.Valid() || int(h) >= len(s.gears) {
		return Gear{}, false
	}
	return s.gears[h], true
}

// Each calls fn for every gear in registration order.
func (s *Set) Each(fn func(h Handle, g Gear)) {
	for i, g := range s.gears {
		fn(Handle(i), g)
	}
}
