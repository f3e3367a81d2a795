package scene

import (
	"math"
	"strconv"
)

// DefaultModule is the pitch radius per tooth used by Train.
const DefaultModule = 4.0

// Train lays out one gear per tooth count in a horizontal row, each pitch
// circle touching its neighbour. Radii are proportional to |teeth| so the
// rendered ratios match the motion ratios.
func Train(prefix string, teeth []int, module float64) *Scene {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if module <= 0 {
		module = DefaultModule
	}

	s := New("train")
	x := 0.0
	for i, n := range teeth {
		r := module * math.Abs(float64(n)) / 2
		if r == 0 {
			r = module
		}
		s.Elements = append(s.Elements, &Element{
			ID:     prefix + strconv.Itoa(i+1),
			X:      x,
			Y:      -r,
			Width:  2 * r,
			Height: 2 * r,
		})
		x += 2 * r
	}
	return s
}

// DefaultTrain is count gears with the alternating default teeth.
func DefaultTrain(count int) *Scene {
	teeth := make([]int, count)
	for i := range teeth {
		teeth[i] = AlternatingTeeth(i + 1)
	}
	return Train(DefaultPrefix, teeth, DefaultModule*4)
}
