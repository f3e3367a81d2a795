// Package shape builds the toothed outlines used to draw gears.
package shape

import (
	"math"

	"github.com/san-kum/gearsim/internal/gear"
)

const (
	// ToothDepth is the tooth height as a fraction of the outer radius.
	ToothDepth = 0.18
	// MinTeeth keeps tiny tooth counts drawable.
	MinTeeth = 3
)

// Outline returns a closed polygon for a gear of outer radius r with the
// given number of teeth, rotated by deg about c. Rotation is clockwise for
// positive angles in y-down coordinates. Each tooth contributes four points:
// rising flank, tip, falling flank and root.
func Outline(c gear.Point, r float64, teeth int, deg float64) []gear.Point {
	n := teeth
	if n < 0 {
		n = -n
	}
	if n < MinTeeth {
		n = MinTeeth
	}

	rot := deg * math.Pi / 180
	root := r * (1 - ToothDepth)
	pitch := 2 * math.Pi / float64(n)
	pts := make([]gear.Point, 0, 4*n+1)
	for i := 0; i < n; i++ {
		a := rot + float64(i)*pitch
		pts = append(pts,
			polar(c, root, a),
			polar(c, r, a+pitch*0.15),
			polar(c, r, a+pitch*0.45),
			polar(c, root, a+pitch*0.6),
		)
	}
	return append(pts, pts[0])
}

// Spoke returns the end point of a radial marker at angle deg, used to make
// rotation visible on low-resolution surfaces.
func Spoke(c gear.Point, r float64, deg float64) gear.Point {
	return polar(c, r, deg*math.Pi/180)
}

func polar(c gear.Point, r, a float64) gear.Point {
	return gear.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
}
