package scene

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/gearsim/internal/gear"
	"gopkg.in/yaml.v3"
)

const DefaultPrefix = "gear"

// ErrElementNotFound indicates an id that the scene does not contain.
var ErrElementNotFound = errors.New("scene: element not found")

// Element is a named shape in the scene. It records the rotation written to it
// and the pivot it rotates about, which default to zero and the box center.
type Element struct {
	ID     string  `yaml:"id"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color,omitempty"`

	rotation float64
	pivot    gear.Point
	pivotSet bool
}

func (e *Element) BBox() gear.Box {
	return gear.Box{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

func (e *Element) Rotate(deg float64) { e.rotation = deg }

func (e *Element) SetPivot(p gear.Point) {
	e.pivot = p
	e.pivotSet = true
}

func (e *Element) Rotation() float64 { return e.rotation }

func (e *Element) Pivot() gear.Point {
	if e.pivotSet {
		return e.pivot
	}
	return gear.Point{X: e.X + e.Width/2, Y: e.Y + e.Height/2}
}

type Scene struct {
	Name     string     `yaml:"name"`
	Elements []*Element `yaml:"elements"`
}

func New(name string, elems ...*Element) *Scene {
	return &Scene{Name: name, Elements: elems}
}

func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(s.Elements))
	for i, e := range s.Elements {
		if e == nil || e.ID == "" {
			return nil, fmt.Errorf("scene: element %d has no id", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("scene: duplicate element id %q", e.ID)
		}
		seen[e.ID] = true
	}
	return &s, nil
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Save(path string, s *Scene) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scene) Lookup(id string) (*Element, bool) {
	for _, e := range s.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Bounds returns the union of all element boxes.
func (s *Scene) Bounds() gear.Box {
	if len(s.Elements) == 0 {
		return gear.Box{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, e := range s.Elements {
		minX = math.Min(minX, e.X)
		minY = math.Min(minY, e.Y)
		maxX = math.Max(maxX, e.X+e.Width)
		maxY = math.Max(maxY, e.Y+e.Height)
	}
	return gear.Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
