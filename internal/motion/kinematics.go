package motion

import "math"

// Dampen pulls the magnitude of speed toward |base| by factor while keeping
// its sign. A zero speed stays zero.
func Dampen(speed, base, factor float64) float64 {
	return (math.Abs(speed)*(1-factor) + math.Abs(base)*factor) * sign(speed)
}

// UnwrapDelta returns cur-prev taken along the shortest path, so a pointer
// crossing the ±π seam yields a small delta instead of one close to 2π.
func UnwrapDelta(prev, cur float64) float64 {
	delta := cur - prev
	if delta > math.Pi {
		prev += 2 * math.Pi
	} else if delta < -math.Pi {
		prev -= 2 * math.Pi
	}
	return cur - prev
}

// DragInfluence converts a pointer's angular travel around a gear into a
// mesh-baseline speed in deg/ms. Scaling by teeth undoes the per-gear ratio
// applied when rendering.
func DragInfluence(prevAngle, curAngle, dt float64, teeth int) float64 {
	return RadToDeg(UnwrapDelta(prevAngle, curAngle)/dt) * float64(teeth)
}

// Blend mixes an observed value into current with weight factor.
func Blend(current, observed, factor float64) float64 {
	return current*(1-factor) + observed*factor
}

func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
