package viz

import (
	"math"

	"github.com/san-kum/gearsim/internal/gear"
)

// View is a uniform scale plus offset from scene coordinates to canvas
// sub-pixels. Braille sub-pixels are close to square, so one scale serves
// both axes.
type View struct {
	Scale      float64
	OffX, OffY float64
}

// Fit centers box inside a w x h sub-pixel area with margin on each side.
func Fit(box gear.Box, w, h int, margin float64) View {
	availW := float64(w) - 2*margin
	availH := float64(h) - 2*margin
	if box.Width <= 0 || box.Height <= 0 || availW <= 0 || availH <= 0 {
		return View{Scale: 1}
	}
	scale := math.Min(availW/box.Width, availH/box.Height)
	return View{
		Scale: scale,
		OffX:  (float64(w)-box.Width*scale)/2 - box.X*scale,
		OffY:  (float64(h)-box.Height*scale)/2 - box.Y*scale,
	}
}

func (v View) ToCanvas(p gear.Point) (int, int) {
	return int(math.Round(p.X*v.Scale + v.OffX)), int(math.Round(p.Y*v.Scale + v.OffY))
}

func (v View) ToLocal(x, y float64) gear.Point {
	return gear.Point{X: (x - v.OffX) / v.Scale, Y: (y - v.OffY) / v.Scale}
}

// CellToLocal maps a terminal cell to the scene point under its center.
func (v View) CellToLocal(col, row int) gear.Point {
	return v.ToLocal(float64(col*2)+1, float64(row*4)+2)
}
