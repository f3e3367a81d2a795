package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/gearsim/internal/gear"
	"github.com/san-kum/gearsim/internal/shape"
)

func (a *App) drawGears() {
	hovered := a.Asm.Engine.Hovered()
	for _, m := range a.Asm.Gears {
		g, ok := a.Asm.Set.Get(m.Handle)
		if !ok {
			continue
		}
		col := ColAccent
		thick := float32(2)
		if m.Handle == hovered {
			col, thick = ColSelect, 3
		}

		rot := m.Element.Rotation()
		pts := a.screenPoints(shape.Outline(g.Center, g.Radius, g.Teeth, rot))
		for i := 1; i < len(pts); i++ {
			rl.DrawLineEx(pts[i-1], pts[i], thick, col)
		}

		c := a.screen(g.Center)
		rl.DrawLineEx(c, a.screen(shape.Spoke(g.Center, g.Radius*0.6, rot)), thick, col)
		rl.DrawCircleV(c, 4, col)
	}
}

func (a *App) screen(p gear.Point) rl.Vector2 {
	x, y := a.View.ToCanvas(p)
	return rl.NewVector2(float32(x), float32(y))
}

func (a *App) screenPoints(pts []gear.Point) []rl.Vector2 {
	out := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		out[i] = a.screen(p)
	}
	return out
}

// telemetryPoints normalizes values into a line strip filling the given rect.
func telemetryPoints(values []float64, x, y, w, h float32) []rl.Vector2 {
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, val := range values {
		px := x + (float32(i)/float32(len(values)))*w
		norm := (val - minVal) / (maxVal - minVal)
		py := y + h - float32(norm)*h
		points[i] = rl.NewVector2(px, py)
	}
	return points
}
